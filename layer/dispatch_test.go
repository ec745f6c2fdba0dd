package layer

import (
	"reflect"
	"testing"

	"github.com/rpavlik/OpenXR-CTS/config"
	"github.com/rpavlik/OpenXR-CTS/xr"
)

func TestDispatch_CoversRuntimeInterface(t *testing.T) {
	l, _, _ := newTestLayer(t)

	rt := reflect.TypeOf((*xr.Runtime)(nil)).Elem()
	if got := len(l.Entrypoints()); got != rt.NumMethod() {
		t.Fatalf("dispatch has %d entrypoints, interface has %d methods", got, rt.NumMethod())
	}
	for i := 0; i < rt.NumMethod(); i++ {
		name := "xr" + rt.Method(i).Name
		if _, ok := l.Entrypoint(name); !ok {
			t.Errorf("no entrypoint for %s", name)
		}
	}
}

func TestDispatch_UnknownName(t *testing.T) {
	l, _, _ := newTestLayer(t)
	if _, ok := l.Entrypoint("xrGetInstanceProcAddr"); ok {
		t.Fatal("unintercepted entrypoints must not resolve")
	}
}

func TestDispatch_ResolvedSlotForwards(t *testing.T) {
	l, _, instance := newTestLayer(t)
	session := newTestSession(t, l, instance)

	fn, ok := l.Entrypoint("xrEnumerateSwapchainFormats")
	if !ok {
		t.Fatal("xrEnumerateSwapchainFormats not bound")
	}
	enumerate, ok := fn.(func(xr.Session, uint32, *uint32, []int64) xr.Result)
	if !ok {
		t.Fatalf("slot has unexpected type %T", fn)
	}

	var count uint32
	if res := enumerate(session, 0, &count, nil); res != xr.Success {
		t.Fatalf("call through dispatch: %s", res)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}

func TestDispatch_AbortStopsForwarding(t *testing.T) {
	opts := config.Default()
	opts.ContinueOnError = false
	l, fake, instance := newTestLayer(t, WithOptions(opts))
	session := newTestSession(t, l, instance)
	swapchain := newTestSwapchain(t, l, session, 0)
	enumerateImages(t, l, swapchain)

	// First violation arms the abort.
	l.WaitSwapchainImage(swapchain, &xr.SwapchainImageWaitInfo{Timeout: xr.InfiniteDuration})
	if !l.Reporter().Aborted() {
		t.Fatal("run should be aborted after the first error")
	}

	// Later calls must fail locally, leaving the runtime untouched.
	fake.QueueResult("xrDestroySession", xr.ErrorSessionNotRunning)
	if res := l.DestroySession(session); res != xr.ErrorValidationFailure {
		t.Fatalf("post-abort call returned %s, want ErrorValidationFailure", res)
	}
	var count uint32
	if res := l.EnumerateSwapchainFormats(session, 0, &count, nil); res != xr.ErrorValidationFailure {
		t.Fatalf("post-abort enumerate returned %s, want ErrorValidationFailure", res)
	}
}
