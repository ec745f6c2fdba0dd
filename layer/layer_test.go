package layer

import (
	"testing"

	"github.com/rpavlik/OpenXR-CTS/config"
	"github.com/rpavlik/OpenXR-CTS/diag"
	"github.com/rpavlik/OpenXR-CTS/fakert"
	"github.com/rpavlik/OpenXR-CTS/registry"
	"github.com/rpavlik/OpenXR-CTS/xr"
)

// newTestLayer wraps a fresh fake runtime and registers an instance.
func newTestLayer(t *testing.T, options ...Option) (*Layer, *fakert.Fake, xr.Instance) {
	t.Helper()
	fake := fakert.New()
	options = append([]Option{WithOptions(config.Default())}, options...)
	l := New(fake, options...)
	instance := fake.CreateInstance()
	if err := l.RegisterInstance(instance); err != nil {
		t.Fatalf("RegisterInstance: %v", err)
	}
	return l, fake, instance
}

func newTestSession(t *testing.T, l *Layer, instance xr.Instance) xr.Session {
	t.Helper()
	var session xr.Session
	res := l.CreateSession(instance, &xr.SessionCreateInfo{
		SystemID:        1,
		GraphicsBinding: xr.GraphicsVulkan,
	}, &session)
	if res != xr.Success {
		t.Fatalf("CreateSession: %s", res)
	}
	return session
}

func newTestSwapchain(t *testing.T, l *Layer, session xr.Session, flags xr.SwapchainCreateFlags) xr.Swapchain {
	t.Helper()
	var swapchain xr.Swapchain
	res := l.CreateSwapchain(session, &xr.SwapchainCreateInfo{
		CreateFlags: flags,
		UsageFlags:  xr.SwapchainUsageColorAttachment,
		Format:      37,
		SampleCount: 1,
		Width:       1024,
		Height:      1024,
		FaceCount:   1,
		ArraySize:   1,
		MipCount:    1,
	}, &swapchain)
	if res != xr.Success {
		t.Fatalf("CreateSwapchain: %s", res)
	}
	return swapchain
}

// enumerateImages runs the conforming two-call sequence and returns
// the image array.
func enumerateImages(t *testing.T, l *Layer, swapchain xr.Swapchain) []xr.SwapchainImage {
	t.Helper()
	var count uint32
	if res := l.EnumerateSwapchainImages(swapchain, 0, &count, nil); res != xr.Success {
		t.Fatalf("EnumerateSwapchainImages size query: %s", res)
	}
	images := make([]xr.SwapchainImage, count)
	if res := l.EnumerateSwapchainImages(swapchain, count, &count, images); res != xr.Success {
		t.Fatalf("EnumerateSwapchainImages fill: %s", res)
	}
	return images[:count]
}

// swapchainCustom fetches the layer's per-swapchain bookkeeping.
func swapchainCustom(t *testing.T, l *Layer, swapchain xr.Swapchain) *swapchainState {
	t.Helper()
	st, err := l.reg.Lookup(swapchainKey(swapchain))
	if err != nil {
		t.Fatalf("swapchain not in registry: %v", err)
	}
	sc, ok := registry.Custom[*swapchainState](st)
	if !ok {
		t.Fatal("swapchain has no custom state")
	}
	return sc
}

func wantCode(t *testing.T, rep *diag.Reporter, code diag.Code, n int) {
	t.Helper()
	if got := len(rep.ReportsByCode(code)); got != n {
		t.Fatalf("expected %d %s findings, got %d; all: %v", n, code, got, rep.Reports())
	}
}

func wantClean(t *testing.T, rep *diag.Reporter) {
	t.Helper()
	if rep.Len() != 0 {
		t.Fatalf("expected no findings, got: %v", rep.Reports())
	}
}
