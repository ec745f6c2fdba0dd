// Package fakert is a scriptable in-process OpenXR runtime used to
// exercise the conformance layer. By default it behaves conformantly;
// tests inject faults (forced results, short waits, misreported
// sizes, reused handles) to provoke specific findings.
package fakert

import (
	"sync"

	"github.com/rpavlik/OpenXR-CTS/xr"
)

// Faults are the nonconforming behaviors the fake can exhibit.
type Faults struct {
	// ShortWait makes WaitSwapchainImage return TimeoutExpired
	// immediately regardless of the requested timeout.
	ShortWait bool
	// WrongRequiredSize, when nonzero, is written as the count output
	// on XR_ERROR_SIZE_INSUFFICIENT instead of the true size.
	WrongRequiredSize uint32
	// ReuseHandle, when nonzero, is used as the next minted handle
	// value instead of a fresh one.
	ReuseHandle uint64
}

// Fake implements xr.Runtime.
type Fake struct {
	mu         sync.Mutex
	nextHandle uint64

	Faults Faults

	// Conforming enumeration payloads.
	ViewConfigs []xr.ViewConfigurationType
	BlendModes  []xr.EnvironmentBlendMode
	Formats     []int64
	RefSpaces   []xr.ReferenceSpaceType

	swapchains map[xr.Swapchain]*fakeSwapchain
	events     []xr.EventDataBuffer
	forced     map[string][]xr.Result
	frameCount int64
}

type fakeSwapchain struct {
	createInfo xr.SwapchainCreateInfo
	imageCount uint32
	// scripted acquire indices; when exhausted, acquire falls back to
	// a rotating counter.
	acquireScript []uint32
	acquireNext   uint32
}

var _ xr.Runtime = (*Fake)(nil)

// New creates a conforming fake with stereo views, opaque blending,
// and a small Vulkan-style format list.
func New() *Fake {
	return &Fake{
		nextHandle:  1,
		ViewConfigs: []xr.ViewConfigurationType{xr.ViewConfigurationPrimaryStereo},
		BlendModes:  []xr.EnvironmentBlendMode{xr.BlendModeOpaque},
		Formats:     []int64{37, 44},
		RefSpaces: []xr.ReferenceSpaceType{
			xr.ReferenceSpaceView, xr.ReferenceSpaceLocal, xr.ReferenceSpaceStage,
		},
		swapchains: make(map[xr.Swapchain]*fakeSwapchain),
		forced:     make(map[string][]xr.Result),
	}
}

// QueueResult forces the next call to op to return r instead of the
// conforming behavior.
func (f *Fake) QueueResult(op string, r xr.Result) {
	f.mu.Lock()
	f.forced[op] = append(f.forced[op], r)
	f.mu.Unlock()
}

// PushEvent queues an event for the next successful PollEvent.
func (f *Fake) PushEvent(ev xr.EventDataBuffer) {
	f.mu.Lock()
	f.events = append(f.events, ev)
	f.mu.Unlock()
}

// ScriptAcquire fixes the indices the swapchain's next acquires
// return, in order.
func (f *Fake) ScriptAcquire(swapchain xr.Swapchain, indices ...uint32) {
	f.mu.Lock()
	if sc, ok := f.swapchains[swapchain]; ok {
		sc.acquireScript = append(sc.acquireScript, indices...)
	}
	f.mu.Unlock()
}

// SetImageCount overrides the image count reported for a swapchain.
func (f *Fake) SetImageCount(swapchain xr.Swapchain, n uint32) {
	f.mu.Lock()
	if sc, ok := f.swapchains[swapchain]; ok {
		sc.imageCount = n
	}
	f.mu.Unlock()
}

func (f *Fake) takeForced(op string) (xr.Result, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q := f.forced[op]
	if len(q) == 0 {
		return xr.Success, false
	}
	r := q[0]
	f.forced[op] = q[1:]
	return r, true
}

func (f *Fake) mint() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Faults.ReuseHandle != 0 {
		h := f.Faults.ReuseHandle
		f.Faults.ReuseHandle = 0
		return h
	}
	h := f.nextHandle
	f.nextHandle++
	return h
}

// enumerate implements the conforming two-call behavior for a list of
// n elements, calling fill to write them when capacity suffices.
func (f *Fake) enumerate(n uint32, capacity uint32, count *uint32, fill func(uint32)) xr.Result {
	if capacity == 0 {
		if count != nil {
			*count = n
		}
		return xr.Success
	}
	if capacity < n {
		if count != nil {
			if f.Faults.WrongRequiredSize != 0 {
				*count = f.Faults.WrongRequiredSize
			} else {
				*count = n
			}
		}
		return xr.ErrorSizeInsufficient
	}
	if count != nil {
		*count = n
	}
	for i := uint32(0); i < n; i++ {
		fill(i)
	}
	return xr.Success
}
