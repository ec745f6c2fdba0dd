package xr

import "fmt"

// NullHandle is the invalid value for every handle type.
const NullHandle = 0

// Handle types. Distinct types may reuse the same integer value; the
// (value, ObjectType) pair is what identifies an object.
type (
	Instance  uint64
	Session   uint64
	Swapchain uint64
	Space     uint64
	ActionSet uint64
	Action    uint64
)

// SystemID identifies a system (form factor) on an instance.
type SystemID uint64

// Path is an interned semantic path (e.g. /user/hand/left).
type Path uint64

// ObjectType tags the kind of object a handle refers to.
type ObjectType uint32

const (
	ObjectTypeUnknown ObjectType = iota
	ObjectTypeInstance
	ObjectTypeSession
	ObjectTypeSwapchain
	ObjectTypeSpace
	ObjectTypeActionSet
	ObjectTypeAction
)

func (t ObjectType) String() string {
	switch t {
	case ObjectTypeInstance:
		return "XR_OBJECT_TYPE_INSTANCE"
	case ObjectTypeSession:
		return "XR_OBJECT_TYPE_SESSION"
	case ObjectTypeSwapchain:
		return "XR_OBJECT_TYPE_SWAPCHAIN"
	case ObjectTypeSpace:
		return "XR_OBJECT_TYPE_SPACE"
	case ObjectTypeActionSet:
		return "XR_OBJECT_TYPE_ACTION_SET"
	case ObjectTypeAction:
		return "XR_OBJECT_TYPE_ACTION"
	default:
		return fmt.Sprintf("XR_OBJECT_TYPE_UNKNOWN(%d)", uint32(t))
	}
}

// Time is an absolute timestamp in runtime nanoseconds.
type Time int64

// Duration is a span in nanoseconds.
type Duration int64

// InfiniteDuration never times out.
const InfiniteDuration Duration = 0x7fffffffffffffff

// GraphicsAPI tags the graphics binding a session was created with.
type GraphicsAPI uint32

const (
	GraphicsUnknown GraphicsAPI = iota
	GraphicsVulkan
	GraphicsOpenGL
	GraphicsD3D12
	GraphicsMetal
	GraphicsHeadless
)

func (g GraphicsAPI) String() string {
	switch g {
	case GraphicsVulkan:
		return "Vulkan"
	case GraphicsOpenGL:
		return "OpenGL"
	case GraphicsD3D12:
		return "D3D12"
	case GraphicsMetal:
		return "Metal"
	case GraphicsHeadless:
		return "Headless"
	default:
		return "Unknown"
	}
}

// ViewConfigurationType selects a view arrangement (mono, stereo, ...).
type ViewConfigurationType uint32

const (
	ViewConfigurationPrimaryMono   ViewConfigurationType = 1
	ViewConfigurationPrimaryStereo ViewConfigurationType = 2
)

// EnvironmentBlendMode selects how layers composite with the
// user's environment.
type EnvironmentBlendMode uint32

const (
	BlendModeOpaque     EnvironmentBlendMode = 1
	BlendModeAdditive   EnvironmentBlendMode = 2
	BlendModeAlphaBlend EnvironmentBlendMode = 3
)

// ReferenceSpaceType identifies a well-known tracking origin.
type ReferenceSpaceType uint32

const (
	ReferenceSpaceView  ReferenceSpaceType = 1
	ReferenceSpaceLocal ReferenceSpaceType = 2
	ReferenceSpaceStage ReferenceSpaceType = 3
)

// SwapchainCreateFlags modify swapchain creation.
type SwapchainCreateFlags uint64

const (
	// SwapchainCreateProtectedContent requests protected memory.
	SwapchainCreateProtectedContent SwapchainCreateFlags = 1 << 0
	// SwapchainCreateStaticImage creates a single-image swapchain that
	// may only be acquired once.
	SwapchainCreateStaticImage SwapchainCreateFlags = 1 << 1
)

// SwapchainUsageFlags declare how swapchain images will be used.
type SwapchainUsageFlags uint64

const (
	SwapchainUsageColorAttachment        SwapchainUsageFlags = 1 << 0
	SwapchainUsageDepthStencilAttachment SwapchainUsageFlags = 1 << 1
	SwapchainUsageUnorderedAccess        SwapchainUsageFlags = 1 << 2
	SwapchainUsageTransferSrc            SwapchainUsageFlags = 1 << 3
	SwapchainUsageTransferDst            SwapchainUsageFlags = 1 << 4
	SwapchainUsageSampled                SwapchainUsageFlags = 1 << 5
	SwapchainUsageMutableFormat          SwapchainUsageFlags = 1 << 6
)

// SwapchainCreateInfo are the creation parameters for a swapchain.
type SwapchainCreateInfo struct {
	CreateFlags SwapchainCreateFlags
	UsageFlags  SwapchainUsageFlags
	Format      int64
	SampleCount uint32
	Width       uint32
	Height      uint32
	FaceCount   uint32
	ArraySize   uint32
	MipCount    uint32
}

// SwapchainImage is one element of the image array returned by
// EnumerateSwapchainImages. Image is the backend-specific texture
// identity; Format echoes the texture's backend format so validators
// can cross-check it against the creation format.
type SwapchainImage struct {
	Image  uint64
	Format int64
}

// SessionCreateInfo are the creation parameters for a session.
type SessionCreateInfo struct {
	SystemID        SystemID
	GraphicsBinding GraphicsAPI
}

// SessionBeginInfo selects the view configuration to run.
type SessionBeginInfo struct {
	PrimaryViewConfiguration ViewConfigurationType
}

// ReferenceSpaceCreateInfo creates a space at a well-known origin.
type ReferenceSpaceCreateInfo struct {
	ReferenceSpaceType ReferenceSpaceType
	PoseInReferenceSpace Posef
}

// ActionSpaceCreateInfo creates a space tracking an action's pose.
type ActionSpaceCreateInfo struct {
	Action        Action
	SubactionPath Path
	PoseInActionSpace Posef
}

// ActionSetCreateInfo names an action set.
type ActionSetCreateInfo struct {
	Name     string
	Priority uint32
}

// ActionType selects the input data type of an action.
type ActionType uint32

const (
	ActionTypeBoolean  ActionType = 1
	ActionTypeFloat    ActionType = 2
	ActionTypeVector2f ActionType = 3
	ActionTypePose     ActionType = 4
	ActionTypeVibration ActionType = 100
)

// ActionCreateInfo names an action within a set.
type ActionCreateInfo struct {
	Name string
	Type ActionType
}

// ActionsSyncInfo lists the active action sets for a sync.
type ActionsSyncInfo struct {
	ActiveActionSets []ActionSet
}

// ActionStateGetInfo selects the action (and subaction) to query.
type ActionStateGetInfo struct {
	Action        Action
	SubactionPath Path
}

// ActionStateBoolean is the polled state of a boolean action.
type ActionStateBoolean struct {
	CurrentState         bool
	ChangedSinceLastSync bool
	LastChangeTime       Time
	IsActive             bool
}

// ActionStateFloat is the polled state of a float action.
type ActionStateFloat struct {
	CurrentState         float32
	ChangedSinceLastSync bool
	LastChangeTime       Time
	IsActive             bool
}

// ActionStateVector2f is the polled state of a 2D vector action.
type ActionStateVector2f struct {
	X, Y                 float32
	ChangedSinceLastSync bool
	LastChangeTime       Time
	IsActive             bool
}

// ActionStatePose reports whether a pose action is actively tracked.
type ActionStatePose struct {
	IsActive bool
}

// Vector3f is a three-component vector.
type Vector3f struct {
	X, Y, Z float32
}

// Quaternionf is an orientation quaternion.
type Quaternionf struct {
	X, Y, Z, W float32
}

// Posef is a position and orientation.
type Posef struct {
	Orientation Quaternionf
	Position    Vector3f
}

// SpaceLocationFlags qualify the validity of a located pose.
type SpaceLocationFlags uint64

const (
	SpaceLocationOrientationValid   SpaceLocationFlags = 1 << 0
	SpaceLocationPositionValid      SpaceLocationFlags = 1 << 1
	SpaceLocationOrientationTracked SpaceLocationFlags = 1 << 2
	SpaceLocationPositionTracked    SpaceLocationFlags = 1 << 3
)

// SpaceLocation is the output of LocateSpace.
type SpaceLocation struct {
	LocationFlags SpaceLocationFlags
	Pose          Posef
}

// SwapchainImageWaitInfo bounds how long WaitSwapchainImage may block.
type SwapchainImageWaitInfo struct {
	Timeout Duration
}

// FrameWaitInfo has no parameters in core OpenXR.
type FrameWaitInfo struct{}

// FrameState is the output of WaitFrame.
type FrameState struct {
	PredictedDisplayTime   Time
	PredictedDisplayPeriod Duration
	ShouldRender           bool
}

// FrameBeginInfo has no parameters in core OpenXR.
type FrameBeginInfo struct{}

// FrameEndInfo describes the layers submitted for a frame.
type FrameEndInfo struct {
	DisplayTime          Time
	EnvironmentBlendMode EnvironmentBlendMode
	LayerCount           uint32
}
