package graphics

import (
	"github.com/gogpu/gputypes"

	"github.com/rpavlik/OpenXR-CTS/xr"
)

// Per-backend maps from native swapchain format codes to gputypes
// formats. Only the formats the conformance scenarios exercise are
// listed; unknown codes are reported, not rejected.

// Vulkan VkFormat values.
var vulkanFormats = map[int64]gputypes.TextureFormat{
	9:   gputypes.TextureFormatR8Unorm,             // VK_FORMAT_R8_UNORM
	37:  gputypes.TextureFormatRGBA8Unorm,          // VK_FORMAT_R8G8B8A8_UNORM
	44:  gputypes.TextureFormatBGRA8Unorm,          // VK_FORMAT_B8G8R8A8_UNORM
	129: gputypes.TextureFormatDepth24PlusStencil8, // VK_FORMAT_D24_UNORM_S8_UINT
}

// OpenGL sized internal format enums.
var openGLFormats = map[int64]gputypes.TextureFormat{
	0x8229: gputypes.TextureFormatR8Unorm,             // GL_R8
	0x8058: gputypes.TextureFormatRGBA8Unorm,          // GL_RGBA8
	0x88F0: gputypes.TextureFormatDepth24PlusStencil8, // GL_DEPTH24_STENCIL8
}

// DXGI_FORMAT values.
var d3d12Formats = map[int64]gputypes.TextureFormat{
	61: gputypes.TextureFormatR8Unorm,             // DXGI_FORMAT_R8_UNORM
	28: gputypes.TextureFormatRGBA8Unorm,          // DXGI_FORMAT_R8G8B8A8_UNORM
	87: gputypes.TextureFormatBGRA8Unorm,          // DXGI_FORMAT_B8G8R8A8_UNORM
	45: gputypes.TextureFormatDepth24PlusStencil8, // DXGI_FORMAT_D24_UNORM_S8_UINT
}

func isDepthFormat(f gputypes.TextureFormat) bool {
	return f == gputypes.TextureFormatDepth24PlusStencil8
}

// usageToTexture maps swapchain usage bits onto the gputypes usage
// vocabulary. Bits with no texture-usage analogue (unordered access,
// mutable format) are validated separately.
func usageToTexture(flags xr.SwapchainUsageFlags) gputypes.TextureUsage {
	var usage gputypes.TextureUsage
	if flags&(xr.SwapchainUsageColorAttachment|xr.SwapchainUsageDepthStencilAttachment) != 0 {
		usage |= gputypes.TextureUsageRenderAttachment
	}
	if flags&xr.SwapchainUsageTransferSrc != 0 {
		usage |= gputypes.TextureUsageCopySrc
	}
	if flags&xr.SwapchainUsageTransferDst != 0 {
		usage |= gputypes.TextureUsageCopyDst
	}
	if flags&xr.SwapchainUsageSampled != 0 {
		usage |= gputypes.TextureUsageTextureBinding
	}
	return usage
}
