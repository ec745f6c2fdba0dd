package layer

import (
	"github.com/rpavlik/OpenXR-CTS/xr"
)

// imageState is the per-image phase of the swapchain lifecycle.
type imageState uint8

const (
	imageCreated imageState = iota
	imageAcquired
	imageWaited
	imageReleased
)

func (s imageState) String() string {
	switch s {
	case imageCreated:
		return "Created"
	case imageAcquired:
		return "Acquired"
	case imageWaited:
		return "Waited"
	case imageReleased:
		return "Released"
	default:
		return "unknown"
	}
}

// swapchainState is the custom payload attached to swapchain handles.
// Guarded by the owning registry.State mutex.
type swapchainState struct {
	createInfo xr.SwapchainCreateInfo
	isStatic   bool
	graphics   xr.GraphicsAPI

	// imageStates is sized on the first successful enumeration.
	imageStates []imageState

	// acquired is the FIFO of indices in the Acquired-or-Waited
	// region; wait and release always target the head.
	acquired []uint32
}

func newSwapchainState(createInfo *xr.SwapchainCreateInfo, graphics xr.GraphicsAPI) *swapchainState {
	return &swapchainState{
		createInfo: *createInfo,
		isStatic:   createInfo.CreateFlags&xr.SwapchainCreateStaticImage != 0,
		graphics:   graphics,
	}
}

// sessionState is the custom payload attached to session handles.
// Guarded by the owning registry.State mutex.
type sessionState struct {
	graphics xr.GraphicsAPI

	running    bool
	frameBegun bool

	// lastPredictedDisplayTime anchors the future check on
	// reference-space change events.
	lastPredictedDisplayTime xr.Time
}
