package main

import (
	"fmt"

	"github.com/rpavlik/OpenXR-CTS/config"
	"github.com/rpavlik/OpenXR-CTS/fakert"
	"github.com/rpavlik/OpenXR-CTS/layer"
	"github.com/rpavlik/OpenXR-CTS/xr"
)

// scenario is one scripted interaction sequence run against the fake
// runtime through the conformance layer.
type scenario struct {
	name string
	desc string
	run  func(h *harness) error
}

// harness bundles the per-run plumbing a scenario drives.
type harness struct {
	layer    *layer.Layer
	fake     *fakert.Fake
	instance xr.Instance
}

func newHarness(opts *config.Options) (*harness, error) {
	fake := fakert.New()
	l := layer.New(fake, layer.WithOptions(opts))
	instance := fake.CreateInstance()
	if err := l.RegisterInstance(instance); err != nil {
		return nil, fmt.Errorf("register instance: %w", err)
	}
	return &harness{layer: l, fake: fake, instance: instance}, nil
}

func (h *harness) session() (xr.Session, error) {
	var session xr.Session
	res := h.layer.CreateSession(h.instance, &xr.SessionCreateInfo{
		SystemID:        1,
		GraphicsBinding: xr.GraphicsVulkan,
	}, &session)
	if res != xr.Success {
		return 0, fmt.Errorf("create session: %s", res)
	}
	return session, nil
}

func (h *harness) swapchain(session xr.Session, flags xr.SwapchainCreateFlags) (xr.Swapchain, error) {
	var swapchain xr.Swapchain
	res := h.layer.CreateSwapchain(session, &xr.SwapchainCreateInfo{
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
		return 0, fmt.Errorf("create swapchain: %s", res)
	}
	return swapchain, nil
}

func (h *harness) enumerateImages(swapchain xr.Swapchain) error {
	var count uint32
	if res := h.layer.EnumerateSwapchainImages(swapchain, 0, &count, nil); res != xr.Success {
		return fmt.Errorf("image size query: %s", res)
	}
	images := make([]xr.SwapchainImage, count)
	if res := h.layer.EnumerateSwapchainImages(swapchain, count, &count, images); res != xr.Success {
		return fmt.Errorf("image fill: %s", res)
	}
	return nil
}

func (h *harness) drainEvents() {
	for {
		var buf xr.EventDataBuffer
		if h.layer.PollEvent(h.instance, &buf) != xr.Success {
			return
		}
	}
}

var infiniteWait = &xr.SwapchainImageWaitInfo{Timeout: xr.InfiniteDuration}

// scenarios is the seed suite. A conforming runtime passes clean-cycle
// only by behaving; the others script a specific misbehavior and exist
// to demonstrate the finding each one provokes.
var scenarios = []scenario{
	{
		name: "clean-cycle",
		desc: "three acquire/wait/release cycles on a conforming runtime",
		run: func(h *harness) error {
			session, err := h.session()
			if err != nil {
				return err
			}
			swapchain, err := h.swapchain(session, 0)
			if err != nil {
				return err
			}
			if err := h.enumerateImages(swapchain); err != nil {
				return err
			}
			h.fake.ScriptAcquire(swapchain, 0, 1, 2)
			for i := 0; i < 3; i++ {
				var index uint32
				h.layer.AcquireSwapchainImage(swapchain, &index)
				h.layer.WaitSwapchainImage(swapchain, infiniteWait)
				h.layer.ReleaseSwapchainImage(swapchain)
			}
			return nil
		},
	},
	{
		name: "wait-without-acquire",
		desc: "wait succeeds with no outstanding acquisition",
		run: func(h *harness) error {
			session, err := h.session()
			if err != nil {
				return err
			}
			swapchain, err := h.swapchain(session, 0)
			if err != nil {
				return err
			}
			if err := h.enumerateImages(swapchain); err != nil {
				return err
			}
			h.layer.WaitSwapchainImage(swapchain, infiniteWait)
			return nil
		},
	},
	{
		name: "release-without-wait",
		desc: "release succeeds while the head image is still only acquired",
		run: func(h *harness) error {
			session, err := h.session()
			if err != nil {
				return err
			}
			swapchain, err := h.swapchain(session, 0)
			if err != nil {
				return err
			}
			if err := h.enumerateImages(swapchain); err != nil {
				return err
			}
			var index uint32
			h.layer.AcquireSwapchainImage(swapchain, &index)
			h.layer.ReleaseSwapchainImage(swapchain)
			return nil
		},
	},
	{
		name: "static-reacquire",
		desc: "a static swapchain's single image is acquired a second time",
		run: func(h *harness) error {
			session, err := h.session()
			if err != nil {
				return err
			}
			swapchain, err := h.swapchain(session, xr.SwapchainCreateStaticImage)
			if err != nil {
				return err
			}
			if err := h.enumerateImages(swapchain); err != nil {
				return err
			}
			var index uint32
			h.layer.AcquireSwapchainImage(swapchain, &index)
			h.layer.WaitSwapchainImage(swapchain, infiniteWait)
			h.layer.ReleaseSwapchainImage(swapchain)
			h.layer.AcquireSwapchainImage(swapchain, &index)
			return nil
		},
	},
	{
		name: "nil-count-enumeration",
		desc: "format enumeration succeeds without writing the count output",
		run: func(h *harness) error {
			session, err := h.session()
			if err != nil {
				return err
			}
			h.layer.EnumerateSwapchainFormats(session, 0, nil, nil)
			return nil
		},
	},
	{
		name: "illegal-session-transition",
		desc: "session jumps from Idle straight to Focused",
		run: func(h *harness) error {
			session, err := h.session()
			if err != nil {
				return err
			}
			h.fake.PushEvent(xr.EventDataBuffer{
				Type: xr.StructureTypeEventDataSessionStateChanged,
				SessionStateChanged: &xr.EventDataSessionStateChanged{
					Session: session,
					State:   xr.SessionStateIdle,
				},
			})
			h.fake.PushEvent(xr.EventDataBuffer{
				Type: xr.StructureTypeEventDataSessionStateChanged,
				SessionStateChanged: &xr.EventDataSessionStateChanged{
					Session: session,
					State:   xr.SessionStateFocused,
				},
			})
			h.drainEvents()
			return nil
		},
	},
	{
		name: "short-wait",
		desc: "wait times out before the requested timeout elapsed",
		run: func(h *harness) error {
			h.fake.Faults.ShortWait = true
			session, err := h.session()
			if err != nil {
				return err
			}
			swapchain, err := h.swapchain(session, 0)
			if err != nil {
				return err
			}
			if err := h.enumerateImages(swapchain); err != nil {
				return err
			}
			var index uint32
			h.layer.AcquireSwapchainImage(swapchain, &index)
			h.layer.WaitSwapchainImage(swapchain, &xr.SwapchainImageWaitInfo{Timeout: 100_000_000})
			return nil
		},
	},
	{
		name: "handle-reuse",
		desc: "runtime mints a live handle value for a new session",
		run: func(h *harness) error {
			session, err := h.session()
			if err != nil {
				return err
			}
			h.fake.Faults.ReuseHandle = uint64(session)
			_, err = h.session()
			return err
		},
	},
}

func findScenario(name string) (scenario, bool) {
	for _, s := range scenarios {
		if s.name == name {
			return s, true
		}
	}
	return scenario{}, false
}
