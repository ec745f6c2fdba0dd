package layer

import (
	"github.com/rpavlik/OpenXR-CTS/diag"
	"github.com/rpavlik/OpenXR-CTS/registry"
	"github.com/rpavlik/OpenXR-CTS/xr"
)

func (l *Layer) CreateSession(instance xr.Instance, createInfo *xr.SessionCreateInfo, session *xr.Session) xr.Result {
	const op = "xrCreateSession"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.CreateSession(instance, createInfo, session)
	if !result.Succeeded() {
		return result
	}

	if session == nil || *session == xr.NullHandle {
		l.rep.Error(diag.CodeContractBreach, op, "success with no session handle written")
		return result
	}
	st, ok := l.insert(op, sessionKey(*session), instanceKey(instance))
	if !ok {
		return result
	}
	binding := xr.GraphicsUnknown
	if createInfo != nil {
		binding = createInfo.GraphicsBinding
	}
	l.reg.AttachCustom(st, &sessionState{graphics: binding})
	return result
}

func (l *Layer) DestroySession(session xr.Session) xr.Result {
	const op = "xrDestroySession"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.DestroySession(session)
	if result.Succeeded() {
		l.destroyHandle(op, sessionKey(session))
		l.events.forgetSession(session)
	}
	return result
}

func (l *Layer) BeginSession(session xr.Session, beginInfo *xr.SessionBeginInfo) xr.Result {
	const op = "xrBeginSession"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.BeginSession(session, beginInfo)
	if !result.Succeeded() {
		return result
	}

	st, ok := l.lookup(op, sessionKey(session))
	if !ok {
		return result
	}
	if last, known := l.events.lastSessionState(session); known && last != xr.SessionStateReady {
		l.rep.Warn(diag.CodeBadResultForInputs, op,
			"begin succeeded with session in %s, XR_ERROR_SESSION_NOT_READY was expected", last)
	}
	st.Lock()
	if ss, ok := registry.Custom[*sessionState](st); ok {
		if ss.running {
			l.rep.Error(diag.CodeBadResultForInputs, op,
				"begin succeeded on a running session, XR_ERROR_SESSION_RUNNING was required")
		}
		ss.running = true
	}
	st.Unlock()
	return result
}

func (l *Layer) EndSession(session xr.Session) xr.Result {
	const op = "xrEndSession"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.EndSession(session)
	if !result.Succeeded() {
		return result
	}

	st, ok := l.lookup(op, sessionKey(session))
	if !ok {
		return result
	}
	if last, known := l.events.lastSessionState(session); known && last != xr.SessionStateStopping {
		l.rep.Warn(diag.CodeBadResultForInputs, op,
			"end succeeded with session in %s, XR_ERROR_SESSION_NOT_STOPPING was expected", last)
	}
	st.Lock()
	if ss, ok := registry.Custom[*sessionState](st); ok {
		if !ss.running {
			l.rep.Error(diag.CodeBadResultForInputs, op,
				"end succeeded on a session that was never begun")
		}
		ss.running = false
		ss.frameBegun = false
	}
	st.Unlock()
	return result
}

func (l *Layer) RequestExitSession(session xr.Session) xr.Result {
	const op = "xrRequestExitSession"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.RequestExitSession(session)
	if !result.Succeeded() {
		return result
	}

	st, ok := l.lookup(op, sessionKey(session))
	if !ok {
		return result
	}
	st.Lock()
	if ss, ok := registry.Custom[*sessionState](st); ok && !ss.running {
		l.rep.Error(diag.CodeBadResultForInputs, op,
			"exit request succeeded on a session that is not running")
	}
	st.Unlock()
	return result
}

func (l *Layer) WaitFrame(session xr.Session, waitInfo *xr.FrameWaitInfo, frameState *xr.FrameState) xr.Result {
	const op = "xrWaitFrame"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.WaitFrame(session, waitInfo, frameState)
	if !result.Succeeded() {
		return result
	}

	st, ok := l.lookup(op, sessionKey(session))
	if !ok {
		return result
	}
	if frameState == nil {
		l.rep.Error(diag.CodeContractBreach, op, "success with nil frame state output")
		return result
	}
	l.rep.NonconformantIf(frameState.PredictedDisplayTime <= 0, diag.CodeContractBreach, op,
		"invalid predicted display time %d", frameState.PredictedDisplayTime)

	st.Lock()
	if ss, ok := registry.Custom[*sessionState](st); ok {
		ss.lastPredictedDisplayTime = frameState.PredictedDisplayTime
	}
	st.Unlock()
	l.events.recordPredictedDisplayTime(session, frameState.PredictedDisplayTime)
	return result
}

func (l *Layer) BeginFrame(session xr.Session, beginInfo *xr.FrameBeginInfo) xr.Result {
	const op = "xrBeginFrame"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.BeginFrame(session, beginInfo)
	if !result.Succeeded() {
		return result
	}

	st, ok := l.lookup(op, sessionKey(session))
	if !ok {
		return result
	}
	st.Lock()
	if ss, ok := registry.Custom[*sessionState](st); ok {
		if ss.frameBegun && result == xr.Success {
			l.rep.Error(diag.CodeBadResultForInputs, op,
				"begin with a frame already begun must return XR_FRAME_DISCARDED")
		}
		ss.frameBegun = true
	}
	st.Unlock()
	return result
}

func (l *Layer) EndFrame(session xr.Session, endInfo *xr.FrameEndInfo) xr.Result {
	const op = "xrEndFrame"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.EndFrame(session, endInfo)
	if !result.Succeeded() {
		return result
	}

	st, ok := l.lookup(op, sessionKey(session))
	if !ok {
		return result
	}
	st.Lock()
	if ss, ok := registry.Custom[*sessionState](st); ok {
		if !ss.frameBegun {
			l.rep.Error(diag.CodeBadResultForInputs, op,
				"end succeeded without a begun frame, XR_ERROR_CALL_ORDER_INVALID was required")
		}
		ss.frameBegun = false
	}
	st.Unlock()
	return result
}

func (l *Layer) EnumerateReferenceSpaces(session xr.Session, capacity uint32, count *uint32, spaces []xr.ReferenceSpaceType) xr.Result {
	const op = "xrEnumerateReferenceSpaces"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.EnumerateReferenceSpaces(session, capacity, count, spaces)

	key := sessionKey(session)
	if _, ok := l.lookup(op, key); !ok {
		return result
	}
	if l.checkTwoCall(op, key, result, capacity, count) {
		for i, space := range spaces[:*count] {
			l.rep.NonconformantIf(space < xr.ReferenceSpaceView || space > xr.ReferenceSpaceStage,
				diag.CodeContractBreach, op, "element %d is not a core reference space type: %d", i, space)
		}
	}
	return result
}

func (l *Layer) EnumerateSwapchainFormats(session xr.Session, capacity uint32, count *uint32, formats []int64) xr.Result {
	const op = "xrEnumerateSwapchainFormats"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.EnumerateSwapchainFormats(session, capacity, count, formats)

	key := sessionKey(session)
	if _, ok := l.lookup(op, key); !ok {
		return result
	}
	if l.checkTwoCall(op, key, result, capacity, count) {
		seen := make(map[int64]struct{}, *count)
		for i, format := range formats[:*count] {
			if _, dup := seen[format]; dup {
				l.rep.Nonconformant(diag.CodeContractBreach, op,
					"duplicate swapchain format %d at element %d", format, i)
			}
			seen[format] = struct{}{}
		}
	}
	return result
}
