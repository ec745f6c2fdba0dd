package layer

import (
	"github.com/rpavlik/OpenXR-CTS/diag"
	"github.com/rpavlik/OpenXR-CTS/xr"
)

func (l *Layer) CreateActionSet(instance xr.Instance, createInfo *xr.ActionSetCreateInfo, actionSet *xr.ActionSet) xr.Result {
	const op = "xrCreateActionSet"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.CreateActionSet(instance, createInfo, actionSet)
	if !result.Succeeded() {
		return result
	}

	if _, ok := l.lookup(op, instanceKey(instance)); !ok {
		return result
	}
	if actionSet == nil || *actionSet == xr.NullHandle {
		l.rep.Error(diag.CodeContractBreach, op, "success with no action set handle written")
		return result
	}
	l.insert(op, actionSetKey(*actionSet), instanceKey(instance))
	return result
}

func (l *Layer) DestroyActionSet(actionSet xr.ActionSet) xr.Result {
	const op = "xrDestroyActionSet"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.DestroyActionSet(actionSet)
	if result.Succeeded() {
		l.destroyHandle(op, actionSetKey(actionSet))
	}
	return result
}

func (l *Layer) CreateAction(actionSet xr.ActionSet, createInfo *xr.ActionCreateInfo, action *xr.Action) xr.Result {
	const op = "xrCreateAction"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.CreateAction(actionSet, createInfo, action)
	if !result.Succeeded() {
		return result
	}

	if _, ok := l.lookup(op, actionSetKey(actionSet)); !ok {
		return result
	}
	if action == nil || *action == xr.NullHandle {
		l.rep.Error(diag.CodeContractBreach, op, "success with no action handle written")
		return result
	}
	l.insert(op, actionKey(*action), actionSetKey(actionSet))
	return result
}

func (l *Layer) DestroyAction(action xr.Action) xr.Result {
	const op = "xrDestroyAction"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.DestroyAction(action)
	if result.Succeeded() {
		l.destroyHandle(op, actionKey(action))
	}
	return result
}

func (l *Layer) SyncActions(session xr.Session, syncInfo *xr.ActionsSyncInfo) xr.Result {
	const op = "xrSyncActions"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.SyncActions(session, syncInfo)
	if !result.Succeeded() {
		return result
	}

	if _, ok := l.lookup(op, sessionKey(session)); !ok {
		return result
	}
	if syncInfo != nil {
		for _, set := range syncInfo.ActiveActionSets {
			if _, err := l.reg.Lookup(actionSetKey(set)); err != nil {
				l.rep.Error(diag.CodeUnknownHandle, op,
					"sync with unknown action set %#x", uint64(set))
			}
		}
	}
	if result == xr.Success {
		if last, known := l.events.lastSessionState(session); known && last != xr.SessionStateFocused {
			l.rep.Warn(diag.CodeBadResultForInputs, op,
				"sync returned XR_SUCCESS with session in %s, XR_SESSION_NOT_FOCUSED was expected", last)
		}
	}
	return result
}

// checkActionState verifies the pieces shared by all four action state
// getters: the queried action must be live, and an active state on an
// unfocused session is suspect.
func (l *Layer) checkActionState(op string, session xr.Session, getInfo *xr.ActionStateGetInfo, active bool) {
	if _, ok := l.lookup(op, sessionKey(session)); !ok {
		return
	}
	if getInfo != nil {
		if _, err := l.reg.Lookup(actionKey(getInfo.Action)); err != nil {
			l.rep.Error(diag.CodeUnknownHandle, op,
				"state queried for unknown action %#x", uint64(getInfo.Action))
		}
	}
	if active {
		if last, known := l.events.lastSessionState(session); known && last != xr.SessionStateFocused {
			l.rep.Warn(diag.CodeBadResultForInputs, op,
				"action reported active with session in %s", last)
		}
	}
}

func (l *Layer) GetActionStateBoolean(session xr.Session, getInfo *xr.ActionStateGetInfo, state *xr.ActionStateBoolean) xr.Result {
	const op = "xrGetActionStateBoolean"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.GetActionStateBoolean(session, getInfo, state)
	if result.Succeeded() {
		if state == nil {
			l.rep.Error(diag.CodeContractBreach, op, "success with nil state output")
			return result
		}
		l.checkActionState(op, session, getInfo, state.IsActive)
		l.rep.NonconformantIf(!state.IsActive && state.CurrentState, diag.CodeContractBreach, op,
			"inactive action reports a set current state")
	}
	return result
}

func (l *Layer) GetActionStateFloat(session xr.Session, getInfo *xr.ActionStateGetInfo, state *xr.ActionStateFloat) xr.Result {
	const op = "xrGetActionStateFloat"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.GetActionStateFloat(session, getInfo, state)
	if result.Succeeded() {
		if state == nil {
			l.rep.Error(diag.CodeContractBreach, op, "success with nil state output")
			return result
		}
		l.checkActionState(op, session, getInfo, state.IsActive)
		l.rep.NonconformantIf(state.CurrentState < -1 || state.CurrentState > 1,
			diag.CodeContractBreach, op, "float state %f outside [-1, 1]", state.CurrentState)
	}
	return result
}

func (l *Layer) GetActionStateVector2f(session xr.Session, getInfo *xr.ActionStateGetInfo, state *xr.ActionStateVector2f) xr.Result {
	const op = "xrGetActionStateVector2f"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.GetActionStateVector2f(session, getInfo, state)
	if result.Succeeded() {
		if state == nil {
			l.rep.Error(diag.CodeContractBreach, op, "success with nil state output")
			return result
		}
		l.checkActionState(op, session, getInfo, state.IsActive)
	}
	return result
}

func (l *Layer) GetActionStatePose(session xr.Session, getInfo *xr.ActionStateGetInfo, state *xr.ActionStatePose) xr.Result {
	const op = "xrGetActionStatePose"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.GetActionStatePose(session, getInfo, state)
	if result.Succeeded() {
		if state == nil {
			l.rep.Error(diag.CodeContractBreach, op, "success with nil state output")
			return result
		}
		l.checkActionState(op, session, getInfo, state.IsActive)
	}
	return result
}
