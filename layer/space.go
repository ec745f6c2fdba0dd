package layer

import (
	"github.com/rpavlik/OpenXR-CTS/diag"
	"github.com/rpavlik/OpenXR-CTS/xr"
)

func (l *Layer) CreateReferenceSpace(session xr.Session, createInfo *xr.ReferenceSpaceCreateInfo, space *xr.Space) xr.Result {
	const op = "xrCreateReferenceSpace"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.CreateReferenceSpace(session, createInfo, space)
	if !result.Succeeded() {
		return result
	}

	if _, ok := l.lookup(op, sessionKey(session)); !ok {
		return result
	}
	if space == nil || *space == xr.NullHandle {
		l.rep.Error(diag.CodeContractBreach, op, "success with no space handle written")
		return result
	}
	l.insert(op, spaceKey(*space), sessionKey(session))
	return result
}

// CreateActionSpace parents the space on the session, not the action:
// the space's API lifetime follows the session. A runtime or test that
// depends on the action-parent interpretation will surface here as an
// unexpected live space after the action is destroyed.
func (l *Layer) CreateActionSpace(session xr.Session, createInfo *xr.ActionSpaceCreateInfo, space *xr.Space) xr.Result {
	const op = "xrCreateActionSpace"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.CreateActionSpace(session, createInfo, space)
	if !result.Succeeded() {
		return result
	}

	if _, ok := l.lookup(op, sessionKey(session)); !ok {
		return result
	}
	if createInfo != nil {
		if _, err := l.reg.Lookup(actionKey(createInfo.Action)); err != nil {
			l.rep.Error(diag.CodeUnknownHandle, op,
				"action space created for unknown action %#x", uint64(createInfo.Action))
		}
	}
	if space == nil || *space == xr.NullHandle {
		l.rep.Error(diag.CodeContractBreach, op, "success with no space handle written")
		return result
	}
	l.insert(op, spaceKey(*space), sessionKey(session))
	return result
}

func (l *Layer) DestroySpace(space xr.Space) xr.Result {
	const op = "xrDestroySpace"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.DestroySpace(space)
	if result.Succeeded() {
		l.destroyHandle(op, spaceKey(space))
	}
	return result
}

func (l *Layer) LocateSpace(space xr.Space, baseSpace xr.Space, time xr.Time, location *xr.SpaceLocation) xr.Result {
	const op = "xrLocateSpace"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.LocateSpace(space, baseSpace, time, location)
	if !result.Succeeded() {
		return result
	}

	if _, ok := l.lookup(op, spaceKey(space)); !ok {
		return result
	}
	if _, ok := l.lookup(op, spaceKey(baseSpace)); !ok {
		return result
	}
	if location == nil {
		l.rep.Error(diag.CodeContractBreach, op, "success with nil location output")
		return result
	}

	// Tracked bits imply the corresponding valid bits.
	flags := location.LocationFlags
	l.rep.NonconformantIf(
		flags&xr.SpaceLocationPositionTracked != 0 && flags&xr.SpaceLocationPositionValid == 0,
		diag.CodeContractBreach, op, "position tracked but not valid")
	l.rep.NonconformantIf(
		flags&xr.SpaceLocationOrientationTracked != 0 && flags&xr.SpaceLocationOrientationValid == 0,
		diag.CodeContractBreach, op, "orientation tracked but not valid")
	return result
}
