package graphics

import (
	"github.com/gogpu/gputypes"

	"github.com/rpavlik/OpenXR-CTS/diag"
	"github.com/rpavlik/OpenXR-CTS/xr"
)

func init() {
	Register(xr.GraphicsVulkan, func() Validator {
		return &backendValidator{name: "Vulkan", formats: vulkanFormats}
	})
	Register(xr.GraphicsOpenGL, func() Validator {
		return &backendValidator{name: "OpenGL", formats: openGLFormats}
	})
	Register(xr.GraphicsD3D12, func() Validator {
		return &backendValidator{name: "D3D12", formats: d3d12Formats}
	})
	Register(xr.GraphicsHeadless, func() Validator {
		return nopValidator{}
	})
}

// backendValidator audits image structs and usage flags against one
// backend's native format vocabulary.
type backendValidator struct {
	name    string
	formats map[int64]gputypes.TextureFormat
}

func (v *backendValidator) Name() string { return v.name }

func (v *backendValidator) ValidateImageStructs(rep *diag.Reporter, format int64, images []xr.SwapchainImage) {
	const op = "xrEnumerateSwapchainImages"

	created, known := v.formats[format]
	if !known {
		rep.Advisory(diag.CodeImageStructInvalid, op,
			"%s: swapchain format %d not in the validated format set", v.name, format)
	}

	for i, img := range images {
		if img.Image == 0 {
			rep.Nonconformant(diag.CodeImageStructInvalid, op,
				"%s: image %d has a null texture", v.name, i)
			continue
		}
		if img.Format != format {
			rep.Nonconformant(diag.CodeImageStructInvalid, op,
				"%s: image %d has format %d, swapchain was created with %d",
				v.name, i, img.Format, format)
		}
	}

	if known && created == gputypes.TextureFormatUndefined {
		rep.Nonconformant(diag.CodeImageStructInvalid, op,
			"%s: swapchain format %d maps to an undefined texture format", v.name, format)
	}
}

func (v *backendValidator) ValidateUsageFlags(rep *diag.Reporter, flags xr.SwapchainUsageFlags, images []xr.SwapchainImage) {
	const op = "xrEnumerateSwapchainImages"

	if flags == 0 {
		rep.Warn(diag.CodeUsageFlagsInvalid, op,
			"%s: swapchain created with no usage flags", v.name)
		return
	}

	if flags&xr.SwapchainUsageColorAttachment != 0 && flags&xr.SwapchainUsageDepthStencilAttachment != 0 {
		rep.Warn(diag.CodeUsageFlagsInvalid, op,
			"%s: color and depth/stencil attachment usage on the same swapchain", v.name)
	}

	if usage := usageToTexture(flags); usage&gputypes.TextureUsageRenderAttachment != 0 {
		for i, img := range images {
			if f, ok := v.formats[img.Format]; ok && isDepthFormat(f) &&
				flags&xr.SwapchainUsageDepthStencilAttachment == 0 {
				rep.Nonconformant(diag.CodeUsageFlagsInvalid, op,
					"%s: image %d has a depth format but depth/stencil usage was not requested",
					v.name, i)
			}
		}
	}
}

// nopValidator is used for headless sessions, which have no swapchain
// images to check.
type nopValidator struct{}

func (nopValidator) Name() string { return "Headless" }

func (nopValidator) ValidateImageStructs(*diag.Reporter, int64, []xr.SwapchainImage) {}

func (nopValidator) ValidateUsageFlags(*diag.Reporter, xr.SwapchainUsageFlags, []xr.SwapchainImage) {
}
