package layer

import (
	"testing"

	"github.com/rpavlik/OpenXR-CTS/config"
	"github.com/rpavlik/OpenXR-CTS/diag"
	"github.com/rpavlik/OpenXR-CTS/fakert"
	"github.com/rpavlik/OpenXR-CTS/xr"
)

func newTestSpace(t *testing.T, l *Layer, session xr.Session) xr.Space {
	t.Helper()
	var space xr.Space
	res := l.CreateReferenceSpace(session, &xr.ReferenceSpaceCreateInfo{
		ReferenceSpaceType: xr.ReferenceSpaceLocal,
		PoseInReferenceSpace: xr.Posef{
			Orientation: xr.Quaternionf{W: 1},
		},
	}, &space)
	if res != xr.Success {
		t.Fatalf("CreateReferenceSpace: %s", res)
	}
	return space
}

func TestSpace_ReferenceSpaceLifecycle(t *testing.T) {
	l, _, instance := newTestLayer(t)
	session := newTestSession(t, l, instance)
	space := newTestSpace(t, l, session)

	st, err := l.reg.Lookup(spaceKey(space))
	if err != nil {
		t.Fatalf("space not live: %v", err)
	}
	if st.Parent() != sessionKey(session) {
		t.Fatalf("space parent %v, want session", st.Parent())
	}

	if res := l.DestroySpace(space); res != xr.Success {
		t.Fatalf("destroy: %s", res)
	}
	wantClean(t, l.Reporter())
}

func TestSpace_Locate(t *testing.T) {
	l, _, instance := newTestLayer(t)
	session := newTestSession(t, l, instance)
	space := newTestSpace(t, l, session)
	base := newTestSpace(t, l, session)

	var location xr.SpaceLocation
	if res := l.LocateSpace(space, base, 1_000_000, &location); res != xr.Success {
		t.Fatalf("locate: %s", res)
	}
	wantClean(t, l.Reporter())
}

// trackedOnlyRuntime sets tracked bits without the matching valid bits.
type trackedOnlyRuntime struct {
	*fakert.Fake
}

func (r *trackedOnlyRuntime) LocateSpace(space, baseSpace xr.Space, time xr.Time, location *xr.SpaceLocation) xr.Result {
	if location != nil {
		location.LocationFlags = xr.SpaceLocationPositionTracked | xr.SpaceLocationOrientationTracked
	}
	return xr.Success
}

func TestSpace_TrackedImpliesValid(t *testing.T) {
	fake := fakert.New()
	l := New(&trackedOnlyRuntime{Fake: fake}, WithOptions(config.Default()))
	instance := fake.CreateInstance()
	if err := l.RegisterInstance(instance); err != nil {
		t.Fatalf("RegisterInstance: %v", err)
	}
	session := newTestSession(t, l, instance)
	space := newTestSpace(t, l, session)
	base := newTestSpace(t, l, session)

	var location xr.SpaceLocation
	l.LocateSpace(space, base, 1_000_000, &location)

	wantCode(t, l.Reporter(), diag.CodeContractBreach, 2)
}

func TestSpace_LocateDestroyedSpace(t *testing.T) {
	l, _, instance := newTestLayer(t)
	session := newTestSession(t, l, instance)
	space := newTestSpace(t, l, session)
	base := newTestSpace(t, l, session)
	l.DestroySpace(space)

	var location xr.SpaceLocation
	l.LocateSpace(space, base, 1_000_000, &location)

	wantCode(t, l.Reporter(), diag.CodeUnknownHandle, 1)
}

func TestSpace_ActionSpace(t *testing.T) {
	l, _, instance := newTestLayer(t)
	session := newTestSession(t, l, instance)

	var actionSet xr.ActionSet
	if res := l.CreateActionSet(instance, &xr.ActionSetCreateInfo{Name: "gameplay"}, &actionSet); res != xr.Success {
		t.Fatalf("create action set: %s", res)
	}
	var action xr.Action
	if res := l.CreateAction(actionSet, &xr.ActionCreateInfo{Name: "aim", Type: xr.ActionTypePose}, &action); res != xr.Success {
		t.Fatalf("create action: %s", res)
	}

	var space xr.Space
	res := l.CreateActionSpace(session, &xr.ActionSpaceCreateInfo{Action: action}, &space)
	if res != xr.Success {
		t.Fatalf("create action space: %s", res)
	}
	wantClean(t, l.Reporter())

	// The space belongs to the session, so destroying the action must
	// leave it live.
	l.DestroyAction(action)
	if _, err := l.reg.Lookup(spaceKey(space)); err != nil {
		t.Fatal("action space should outlive its action")
	}

	l.DestroySession(session)
	if _, err := l.reg.Lookup(spaceKey(space)); err == nil {
		t.Fatal("action space should die with its session")
	}
}

func TestSpace_ActionSpaceUnknownAction(t *testing.T) {
	l, _, instance := newTestLayer(t)
	session := newTestSession(t, l, instance)

	var space xr.Space
	l.CreateActionSpace(session, &xr.ActionSpaceCreateInfo{Action: xr.Action(0xBAD)}, &space)

	wantCode(t, l.Reporter(), diag.CodeUnknownHandle, 1)
}
