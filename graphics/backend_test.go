package graphics

import (
	"testing"

	"github.com/rpavlik/OpenXR-CTS/diag"
	"github.com/rpavlik/OpenXR-CTS/xr"
)

func TestGet_RegisteredBackends(t *testing.T) {
	for _, api := range []xr.GraphicsAPI{
		xr.GraphicsVulkan, xr.GraphicsOpenGL, xr.GraphicsD3D12, xr.GraphicsHeadless,
	} {
		if Get(api) == nil {
			t.Errorf("no validator registered for %v", api)
		}
	}
	if Get(xr.GraphicsMetal) != nil {
		t.Error("Metal should not have a registered validator")
	}
	if len(Available()) != 4 {
		t.Errorf("Available() = %d backends, want 4", len(Available()))
	}
}

func TestValidateImageStructs_Conforming(t *testing.T) {
	v := Get(xr.GraphicsVulkan)
	rep := diag.NewReporter()

	images := []xr.SwapchainImage{
		{Image: 0x100, Format: 37},
		{Image: 0x101, Format: 37},
	}
	v.ValidateImageStructs(rep, 37, images)

	if rep.Failed() {
		t.Fatalf("conforming images reported: %v", rep.Reports())
	}
}

func TestValidateImageStructs_NullTexture(t *testing.T) {
	v := Get(xr.GraphicsVulkan)
	rep := diag.NewReporter()

	v.ValidateImageStructs(rep, 37, []xr.SwapchainImage{{Image: 0, Format: 37}})

	if got := len(rep.ReportsByCode(diag.CodeImageStructInvalid)); got != 1 {
		t.Fatalf("expected 1 ImageStructInvalid, got %d", got)
	}
	if !rep.Failed() {
		t.Fatal("null texture must fail the run")
	}
}

func TestValidateImageStructs_FormatMismatch(t *testing.T) {
	v := Get(xr.GraphicsD3D12)
	rep := diag.NewReporter()

	images := []xr.SwapchainImage{
		{Image: 0x100, Format: 28},
		{Image: 0x101, Format: 87}, // differs from creation format
	}
	v.ValidateImageStructs(rep, 28, images)

	if got := len(rep.ReportsByCode(diag.CodeImageStructInvalid)); got != 1 {
		t.Fatalf("expected 1 ImageStructInvalid, got %d", got)
	}
}

func TestValidateImageStructs_UnknownFormatAdvisory(t *testing.T) {
	v := Get(xr.GraphicsOpenGL)
	rep := diag.NewReporter()

	v.ValidateImageStructs(rep, 0xBEEF, []xr.SwapchainImage{{Image: 0x1, Format: 0xBEEF}})

	if rep.Failed() {
		t.Fatal("unknown format is advisory, not an error")
	}
	if rep.Len() != 1 {
		t.Fatalf("expected 1 advisory, got %d", rep.Len())
	}
}

func TestValidateUsageFlags(t *testing.T) {
	v := Get(xr.GraphicsVulkan)

	t.Run("zero flags warns", func(t *testing.T) {
		rep := diag.NewReporter()
		v.ValidateUsageFlags(rep, 0, nil)
		if got := len(rep.ReportsByCode(diag.CodeUsageFlagsInvalid)); got != 1 {
			t.Fatalf("expected 1 UsageFlagsInvalid, got %d", got)
		}
		if rep.Failed() {
			t.Fatal("zero flags is a warning, not an error")
		}
	})

	t.Run("color plus depth warns", func(t *testing.T) {
		rep := diag.NewReporter()
		flags := xr.SwapchainUsageColorAttachment | xr.SwapchainUsageDepthStencilAttachment
		v.ValidateUsageFlags(rep, flags, nil)
		if rep.Len() == 0 {
			t.Fatal("expected a warning for mixed attachment usage")
		}
	})

	t.Run("depth format without depth usage", func(t *testing.T) {
		rep := diag.NewReporter()
		images := []xr.SwapchainImage{{Image: 0x1, Format: 129}} // VK_FORMAT_D24_UNORM_S8_UINT
		v.ValidateUsageFlags(rep, xr.SwapchainUsageColorAttachment, images)
		if !rep.Failed() {
			t.Fatal("depth image without depth usage must fail")
		}
	})

	t.Run("sampled color is clean", func(t *testing.T) {
		rep := diag.NewReporter()
		images := []xr.SwapchainImage{{Image: 0x1, Format: 37}}
		v.ValidateUsageFlags(rep, xr.SwapchainUsageColorAttachment|xr.SwapchainUsageSampled, images)
		if rep.Len() != 0 {
			t.Fatalf("conforming usage reported: %v", rep.Reports())
		}
	})
}

func TestHeadlessValidatorIsSilent(t *testing.T) {
	v := Get(xr.GraphicsHeadless)
	rep := diag.NewReporter()

	v.ValidateImageStructs(rep, 0, []xr.SwapchainImage{{Image: 0, Format: 99}})
	v.ValidateUsageFlags(rep, 0, nil)

	if rep.Len() != 0 {
		t.Fatalf("headless validator should report nothing, got %d", rep.Len())
	}
}
