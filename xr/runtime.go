package xr

// Runtime is the downward dispatch surface: every entrypoint the
// conformance layer intercepts, in the order and shape of the OpenXR
// registry. The layer itself implements Runtime so it can interpose
// between an application and a real runtime.
//
// Two-call enumeration entrypoints keep the registry contract: when
// capacity is zero the runtime writes the required count and must not
// touch the array; when capacity is nonzero the runtime fills up to
// capacity elements or returns ErrorSizeInsufficient. The array slice
// may be nil when capacity is zero.
type Runtime interface {
	// Instance
	DestroyInstance(instance Instance) Result
	EnumerateViewConfigurations(instance Instance, systemID SystemID, capacity uint32, count *uint32, types []ViewConfigurationType) Result
	EnumerateEnvironmentBlendModes(instance Instance, systemID SystemID, viewType ViewConfigurationType, capacity uint32, count *uint32, modes []EnvironmentBlendMode) Result
	PollEvent(instance Instance, event *EventDataBuffer) Result

	// Session
	CreateSession(instance Instance, createInfo *SessionCreateInfo, session *Session) Result
	DestroySession(session Session) Result
	BeginSession(session Session, beginInfo *SessionBeginInfo) Result
	EndSession(session Session) Result
	RequestExitSession(session Session) Result
	WaitFrame(session Session, waitInfo *FrameWaitInfo, frameState *FrameState) Result
	BeginFrame(session Session, beginInfo *FrameBeginInfo) Result
	EndFrame(session Session, endInfo *FrameEndInfo) Result
	EnumerateReferenceSpaces(session Session, capacity uint32, count *uint32, spaces []ReferenceSpaceType) Result
	EnumerateSwapchainFormats(session Session, capacity uint32, count *uint32, formats []int64) Result

	// Space
	CreateReferenceSpace(session Session, createInfo *ReferenceSpaceCreateInfo, space *Space) Result
	CreateActionSpace(session Session, createInfo *ActionSpaceCreateInfo, space *Space) Result
	DestroySpace(space Space) Result
	LocateSpace(space Space, baseSpace Space, time Time, location *SpaceLocation) Result

	// Input
	CreateActionSet(instance Instance, createInfo *ActionSetCreateInfo, actionSet *ActionSet) Result
	DestroyActionSet(actionSet ActionSet) Result
	CreateAction(actionSet ActionSet, createInfo *ActionCreateInfo, action *Action) Result
	DestroyAction(action Action) Result
	SyncActions(session Session, syncInfo *ActionsSyncInfo) Result
	GetActionStateBoolean(session Session, getInfo *ActionStateGetInfo, state *ActionStateBoolean) Result
	GetActionStateFloat(session Session, getInfo *ActionStateGetInfo, state *ActionStateFloat) Result
	GetActionStateVector2f(session Session, getInfo *ActionStateGetInfo, state *ActionStateVector2f) Result
	GetActionStatePose(session Session, getInfo *ActionStateGetInfo, state *ActionStatePose) Result

	// Swapchain
	CreateSwapchain(session Session, createInfo *SwapchainCreateInfo, swapchain *Swapchain) Result
	DestroySwapchain(swapchain Swapchain) Result
	EnumerateSwapchainImages(swapchain Swapchain, capacity uint32, count *uint32, images []SwapchainImage) Result
	AcquireSwapchainImage(swapchain Swapchain, index *uint32) Result
	WaitSwapchainImage(swapchain Swapchain, waitInfo *SwapchainImageWaitInfo) Result
	ReleaseSwapchainImage(swapchain Swapchain) Result
}
