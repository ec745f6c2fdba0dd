package fakert

import (
	"github.com/rpavlik/OpenXR-CTS/xr"
)

// CreateInstance mints an instance handle. The real entrypoint exists
// outside the layer's dispatch, so the fake exposes it as a plain
// constructor for harnesses.
func (f *Fake) CreateInstance() xr.Instance {
	return xr.Instance(f.mint())
}

func (f *Fake) DestroyInstance(instance xr.Instance) xr.Result {
	if r, ok := f.takeForced("xrDestroyInstance"); ok {
		return r
	}
	return xr.Success
}

func (f *Fake) EnumerateViewConfigurations(instance xr.Instance, systemID xr.SystemID, capacity uint32, count *uint32, types []xr.ViewConfigurationType) xr.Result {
	if r, ok := f.takeForced("xrEnumerateViewConfigurations"); ok {
		return r
	}
	return f.enumerate(uint32(len(f.ViewConfigs)), capacity, count, func(i uint32) {
		types[i] = f.ViewConfigs[i]
	})
}

func (f *Fake) EnumerateEnvironmentBlendModes(instance xr.Instance, systemID xr.SystemID, viewType xr.ViewConfigurationType, capacity uint32, count *uint32, modes []xr.EnvironmentBlendMode) xr.Result {
	if r, ok := f.takeForced("xrEnumerateEnvironmentBlendModes"); ok {
		return r
	}
	return f.enumerate(uint32(len(f.BlendModes)), capacity, count, func(i uint32) {
		modes[i] = f.BlendModes[i]
	})
}

func (f *Fake) PollEvent(instance xr.Instance, event *xr.EventDataBuffer) xr.Result {
	if r, ok := f.takeForced("xrPollEvent"); ok {
		return r
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.events) == 0 {
		return xr.EventUnavailable
	}
	if event != nil {
		*event = f.events[0]
	}
	f.events = f.events[1:]
	return xr.Success
}

func (f *Fake) CreateSession(instance xr.Instance, createInfo *xr.SessionCreateInfo, session *xr.Session) xr.Result {
	if r, ok := f.takeForced("xrCreateSession"); ok {
		return r
	}
	if session != nil {
		*session = xr.Session(f.mint())
	}
	return xr.Success
}

func (f *Fake) DestroySession(session xr.Session) xr.Result {
	if r, ok := f.takeForced("xrDestroySession"); ok {
		return r
	}
	return xr.Success
}

func (f *Fake) BeginSession(session xr.Session, beginInfo *xr.SessionBeginInfo) xr.Result {
	if r, ok := f.takeForced("xrBeginSession"); ok {
		return r
	}
	return xr.Success
}

func (f *Fake) EndSession(session xr.Session) xr.Result {
	if r, ok := f.takeForced("xrEndSession"); ok {
		return r
	}
	return xr.Success
}

func (f *Fake) RequestExitSession(session xr.Session) xr.Result {
	if r, ok := f.takeForced("xrRequestExitSession"); ok {
		return r
	}
	return xr.Success
}

func (f *Fake) WaitFrame(session xr.Session, waitInfo *xr.FrameWaitInfo, frameState *xr.FrameState) xr.Result {
	if r, ok := f.takeForced("xrWaitFrame"); ok {
		return r
	}
	f.mu.Lock()
	f.frameCount++
	n := f.frameCount
	f.mu.Unlock()
	if frameState != nil {
		frameState.PredictedDisplayTime = xr.Time(n * 16_666_667)
		frameState.PredictedDisplayPeriod = 16_666_667
		frameState.ShouldRender = true
	}
	return xr.Success
}

func (f *Fake) BeginFrame(session xr.Session, beginInfo *xr.FrameBeginInfo) xr.Result {
	if r, ok := f.takeForced("xrBeginFrame"); ok {
		return r
	}
	return xr.Success
}

func (f *Fake) EndFrame(session xr.Session, endInfo *xr.FrameEndInfo) xr.Result {
	if r, ok := f.takeForced("xrEndFrame"); ok {
		return r
	}
	return xr.Success
}

func (f *Fake) EnumerateReferenceSpaces(session xr.Session, capacity uint32, count *uint32, spaces []xr.ReferenceSpaceType) xr.Result {
	if r, ok := f.takeForced("xrEnumerateReferenceSpaces"); ok {
		return r
	}
	return f.enumerate(uint32(len(f.RefSpaces)), capacity, count, func(i uint32) {
		spaces[i] = f.RefSpaces[i]
	})
}

func (f *Fake) EnumerateSwapchainFormats(session xr.Session, capacity uint32, count *uint32, formats []int64) xr.Result {
	if r, ok := f.takeForced("xrEnumerateSwapchainFormats"); ok {
		return r
	}
	return f.enumerate(uint32(len(f.Formats)), capacity, count, func(i uint32) {
		formats[i] = f.Formats[i]
	})
}

func (f *Fake) CreateReferenceSpace(session xr.Session, createInfo *xr.ReferenceSpaceCreateInfo, space *xr.Space) xr.Result {
	if r, ok := f.takeForced("xrCreateReferenceSpace"); ok {
		return r
	}
	if space != nil {
		*space = xr.Space(f.mint())
	}
	return xr.Success
}

func (f *Fake) CreateActionSpace(session xr.Session, createInfo *xr.ActionSpaceCreateInfo, space *xr.Space) xr.Result {
	if r, ok := f.takeForced("xrCreateActionSpace"); ok {
		return r
	}
	if space != nil {
		*space = xr.Space(f.mint())
	}
	return xr.Success
}

func (f *Fake) DestroySpace(space xr.Space) xr.Result {
	if r, ok := f.takeForced("xrDestroySpace"); ok {
		return r
	}
	return xr.Success
}

func (f *Fake) LocateSpace(space xr.Space, baseSpace xr.Space, time xr.Time, location *xr.SpaceLocation) xr.Result {
	if r, ok := f.takeForced("xrLocateSpace"); ok {
		return r
	}
	if location != nil {
		location.LocationFlags = xr.SpaceLocationOrientationValid |
			xr.SpaceLocationPositionValid |
			xr.SpaceLocationOrientationTracked |
			xr.SpaceLocationPositionTracked
		location.Pose = xr.Posef{Orientation: xr.Quaternionf{W: 1}}
	}
	return xr.Success
}

func (f *Fake) CreateActionSet(instance xr.Instance, createInfo *xr.ActionSetCreateInfo, actionSet *xr.ActionSet) xr.Result {
	if r, ok := f.takeForced("xrCreateActionSet"); ok {
		return r
	}
	if actionSet != nil {
		*actionSet = xr.ActionSet(f.mint())
	}
	return xr.Success
}

func (f *Fake) DestroyActionSet(actionSet xr.ActionSet) xr.Result {
	if r, ok := f.takeForced("xrDestroyActionSet"); ok {
		return r
	}
	return xr.Success
}

func (f *Fake) CreateAction(actionSet xr.ActionSet, createInfo *xr.ActionCreateInfo, action *xr.Action) xr.Result {
	if r, ok := f.takeForced("xrCreateAction"); ok {
		return r
	}
	if action != nil {
		*action = xr.Action(f.mint())
	}
	return xr.Success
}

func (f *Fake) DestroyAction(action xr.Action) xr.Result {
	if r, ok := f.takeForced("xrDestroyAction"); ok {
		return r
	}
	return xr.Success
}

func (f *Fake) SyncActions(session xr.Session, syncInfo *xr.ActionsSyncInfo) xr.Result {
	if r, ok := f.takeForced("xrSyncActions"); ok {
		return r
	}
	return xr.Success
}

func (f *Fake) GetActionStateBoolean(session xr.Session, getInfo *xr.ActionStateGetInfo, state *xr.ActionStateBoolean) xr.Result {
	if r, ok := f.takeForced("xrGetActionStateBoolean"); ok {
		return r
	}
	if state != nil {
		*state = xr.ActionStateBoolean{}
	}
	return xr.Success
}

func (f *Fake) GetActionStateFloat(session xr.Session, getInfo *xr.ActionStateGetInfo, state *xr.ActionStateFloat) xr.Result {
	if r, ok := f.takeForced("xrGetActionStateFloat"); ok {
		return r
	}
	if state != nil {
		*state = xr.ActionStateFloat{}
	}
	return xr.Success
}

func (f *Fake) GetActionStateVector2f(session xr.Session, getInfo *xr.ActionStateGetInfo, state *xr.ActionStateVector2f) xr.Result {
	if r, ok := f.takeForced("xrGetActionStateVector2f"); ok {
		return r
	}
	if state != nil {
		*state = xr.ActionStateVector2f{}
	}
	return xr.Success
}

func (f *Fake) GetActionStatePose(session xr.Session, getInfo *xr.ActionStateGetInfo, state *xr.ActionStatePose) xr.Result {
	if r, ok := f.takeForced("xrGetActionStatePose"); ok {
		return r
	}
	if state != nil {
		*state = xr.ActionStatePose{}
	}
	return xr.Success
}

func (f *Fake) CreateSwapchain(session xr.Session, createInfo *xr.SwapchainCreateInfo, swapchain *xr.Swapchain) xr.Result {
	if r, ok := f.takeForced("xrCreateSwapchain"); ok {
		return r
	}
	handle := xr.Swapchain(f.mint())
	sc := &fakeSwapchain{imageCount: 3}
	if createInfo != nil {
		sc.createInfo = *createInfo
		if createInfo.CreateFlags&xr.SwapchainCreateStaticImage != 0 {
			sc.imageCount = 1
		}
	}
	f.mu.Lock()
	f.swapchains[handle] = sc
	f.mu.Unlock()
	if swapchain != nil {
		*swapchain = handle
	}
	return xr.Success
}

func (f *Fake) DestroySwapchain(swapchain xr.Swapchain) xr.Result {
	if r, ok := f.takeForced("xrDestroySwapchain"); ok {
		return r
	}
	f.mu.Lock()
	delete(f.swapchains, swapchain)
	f.mu.Unlock()
	return xr.Success
}

func (f *Fake) EnumerateSwapchainImages(swapchain xr.Swapchain, capacity uint32, count *uint32, images []xr.SwapchainImage) xr.Result {
	if r, ok := f.takeForced("xrEnumerateSwapchainImages"); ok {
		return r
	}
	f.mu.Lock()
	sc, ok := f.swapchains[swapchain]
	f.mu.Unlock()
	if !ok {
		return xr.ErrorHandleInvalid
	}
	return f.enumerate(sc.imageCount, capacity, count, func(i uint32) {
		images[i] = xr.SwapchainImage{
			Image:  uint64(swapchain)<<16 | uint64(i+1),
			Format: sc.createInfo.Format,
		}
	})
}

func (f *Fake) AcquireSwapchainImage(swapchain xr.Swapchain, index *uint32) xr.Result {
	if r, ok := f.takeForced("xrAcquireSwapchainImage"); ok {
		return r
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	sc, ok := f.swapchains[swapchain]
	if !ok {
		return xr.ErrorHandleInvalid
	}
	var idx uint32
	if len(sc.acquireScript) > 0 {
		idx = sc.acquireScript[0]
		sc.acquireScript = sc.acquireScript[1:]
	} else {
		idx = sc.acquireNext % sc.imageCount
		sc.acquireNext++
	}
	if index != nil {
		*index = idx
	}
	return xr.Success
}

func (f *Fake) WaitSwapchainImage(swapchain xr.Swapchain, waitInfo *xr.SwapchainImageWaitInfo) xr.Result {
	if r, ok := f.takeForced("xrWaitSwapchainImage"); ok {
		return r
	}
	if f.Faults.ShortWait {
		// Returns without blocking at all.
		return xr.TimeoutExpired
	}
	return xr.Success
}

func (f *Fake) ReleaseSwapchainImage(swapchain xr.Swapchain) xr.Result {
	if r, ok := f.takeForced("xrReleaseSwapchainImage"); ok {
		return r
	}
	return xr.Success
}
