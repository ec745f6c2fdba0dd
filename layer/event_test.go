package layer

import (
	"testing"

	"github.com/rpavlik/OpenXR-CTS/config"
	"github.com/rpavlik/OpenXR-CTS/diag"
	"github.com/rpavlik/OpenXR-CTS/fakert"
	"github.com/rpavlik/OpenXR-CTS/xr"
)

func sessionStateEvent(session xr.Session, state xr.SessionState) xr.EventDataBuffer {
	return xr.EventDataBuffer{
		Type: xr.StructureTypeEventDataSessionStateChanged,
		SessionStateChanged: &xr.EventDataSessionStateChanged{
			Session: session,
			State:   state,
		},
	}
}

// drainEvents polls until the queue is empty.
func drainEvents(t *testing.T, l *Layer, instance xr.Instance) int {
	t.Helper()
	n := 0
	for {
		var buf xr.EventDataBuffer
		res := l.PollEvent(instance, &buf)
		if res == xr.EventUnavailable {
			return n
		}
		if res != xr.Success {
			t.Fatalf("poll: %s", res)
		}
		n++
	}
}

func TestEvents_LegalSessionWalk(t *testing.T) {
	l, fake, instance := newTestLayer(t)
	session := newTestSession(t, l, instance)

	for _, state := range []xr.SessionState{
		xr.SessionStateIdle,
		xr.SessionStateReady,
		xr.SessionStateSynchronized,
		xr.SessionStateVisible,
		xr.SessionStateFocused,
	} {
		fake.PushEvent(sessionStateEvent(session, state))
	}
	if got := drainEvents(t, l, instance); got != 5 {
		t.Fatalf("drained %d events, want 5", got)
	}

	wantClean(t, l.Reporter())
	if last, ok := l.events.lastSessionState(session); !ok || last != xr.SessionStateFocused {
		t.Fatalf("last state %s, want Focused", last)
	}
}

func TestEvents_IllegalTransition(t *testing.T) {
	l, fake, instance := newTestLayer(t)
	session := newTestSession(t, l, instance)

	fake.PushEvent(sessionStateEvent(session, xr.SessionStateIdle))
	fake.PushEvent(sessionStateEvent(session, xr.SessionStateFocused))
	drainEvents(t, l, instance)

	wantCode(t, l.Reporter(), diag.CodeIllegalSessionTransition, 1)
	// The observed state is recorded even after the violation so the
	// next transition is judged from Focused, not Idle.
	if last, _ := l.events.lastSessionState(session); last != xr.SessionStateFocused {
		t.Fatalf("last state %s, want Focused", last)
	}
}

func TestEvents_FirstStateMustBeIdle(t *testing.T) {
	l, fake, instance := newTestLayer(t)
	session := newTestSession(t, l, instance)

	fake.PushEvent(sessionStateEvent(session, xr.SessionStateReady))
	drainEvents(t, l, instance)

	wantCode(t, l.Reporter(), diag.CodeIllegalSessionTransition, 1)
}

func TestEvents_OrphanSession(t *testing.T) {
	l, fake, instance := newTestLayer(t)

	fake.PushEvent(sessionStateEvent(xr.Session(0xBAD), xr.SessionStateIdle))
	drainEvents(t, l, instance)

	wantCode(t, l.Reporter(), diag.CodeOrphanEvent, 1)
}

func TestEvents_UnknownTypeIsAdvisory(t *testing.T) {
	l, fake, instance := newTestLayer(t)

	fake.PushEvent(xr.EventDataBuffer{Type: xr.StructureType(999)})
	drainEvents(t, l, instance)

	wantCode(t, l.Reporter(), diag.CodeUnknownEventType, 1)
	if l.Reporter().Failed() {
		t.Fatal("unknown event types must not fail the run")
	}
}

func TestEvents_EventsLost(t *testing.T) {
	l, fake, instance := newTestLayer(t)

	fake.PushEvent(xr.EventDataBuffer{
		Type:       xr.StructureTypeEventDataEventsLost,
		EventsLost: &xr.EventDataEventsLost{LostEventCount: 0},
	})
	fake.PushEvent(xr.EventDataBuffer{
		Type:       xr.StructureTypeEventDataEventsLost,
		EventsLost: &xr.EventDataEventsLost{LostEventCount: 4},
	})
	drainEvents(t, l, instance)

	wantCode(t, l.Reporter(), diag.CodeEventsLostEmpty, 1)
	if got := l.LostEventCount(); got != 4 {
		t.Fatalf("LostEventCount = %d, want 4", got)
	}
}

func TestEvents_ChangeTimeNotFuture(t *testing.T) {
	l, fake, instance := newTestLayer(t)
	session := newTestSession(t, l, instance)

	var frameState xr.FrameState
	if res := l.WaitFrame(session, nil, &frameState); res != xr.Success {
		t.Fatalf("wait frame: %s", res)
	}

	fake.PushEvent(xr.EventDataBuffer{
		Type: xr.StructureTypeEventDataReferenceSpaceChangePending,
		ReferenceSpaceChangePending: &xr.EventDataReferenceSpaceChangePending{
			Session:            session,
			ReferenceSpaceType: xr.ReferenceSpaceStage,
			ChangeTime:         frameState.PredictedDisplayTime - 1,
		},
	})
	drainEvents(t, l, instance)
	wantCode(t, l.Reporter(), diag.CodeChangeTimeNotFuture, 1)
}

func TestEvents_ChangeTimeInFuture(t *testing.T) {
	l, fake, instance := newTestLayer(t)
	session := newTestSession(t, l, instance)

	var frameState xr.FrameState
	if res := l.WaitFrame(session, nil, &frameState); res != xr.Success {
		t.Fatalf("wait frame: %s", res)
	}

	fake.PushEvent(xr.EventDataBuffer{
		Type: xr.StructureTypeEventDataReferenceSpaceChangePending,
		ReferenceSpaceChangePending: &xr.EventDataReferenceSpaceChangePending{
			Session:            session,
			ReferenceSpaceType: xr.ReferenceSpaceStage,
			ChangeTime:         frameState.PredictedDisplayTime + 1,
		},
	})
	drainEvents(t, l, instance)
	wantClean(t, l.Reporter())
}

func TestEvents_InstanceLossPending(t *testing.T) {
	l, fake, instance := newTestLayer(t)

	fake.PushEvent(xr.EventDataBuffer{
		Type: xr.StructureTypeEventDataInstanceLossPending,
		InstanceLossPending: &xr.EventDataInstanceLossPending{
			Instance: instance,
			LossTime: 1_000_000,
		},
	})
	drainEvents(t, l, instance)
	wantClean(t, l.Reporter())
}

func TestEvents_VisibilityMaskViewIndex(t *testing.T) {
	l, fake, instance := newTestLayer(t)
	session := newTestSession(t, l, instance)

	fake.PushEvent(xr.EventDataBuffer{
		Type: xr.StructureTypeEventDataVisibilityMaskChangedKHR,
		VisibilityMaskChanged: &xr.EventDataVisibilityMaskChangedKHR{
			Session:               session,
			ViewConfigurationType: xr.ViewConfigurationPrimaryStereo,
			ViewIndex:             2,
		},
	})
	drainEvents(t, l, instance)
	wantCode(t, l.Reporter(), diag.CodeContractBreach, 1)
}

func TestEvents_AuditDisabled(t *testing.T) {
	opts := config.Default()
	opts.EventAudit = false
	l, fake, instance := newTestLayer(t, WithOptions(opts))
	session := newTestSession(t, l, instance)

	fake.PushEvent(sessionStateEvent(session, xr.SessionStateFocused))
	drainEvents(t, l, instance)

	wantClean(t, l.Reporter())
}

// gatedPollRuntime parks PollEvent between two channel operations so a
// test can hold one poll in flight while issuing another.
type gatedPollRuntime struct {
	*fakert.Fake
	entered chan struct{}
	release chan struct{}
}

func (r *gatedPollRuntime) PollEvent(instance xr.Instance, event *xr.EventDataBuffer) xr.Result {
	r.entered <- struct{}{}
	<-r.release
	return r.Fake.PollEvent(instance, event)
}

func TestEvents_ConcurrentPoll(t *testing.T) {
	fake := fakert.New()
	gated := &gatedPollRuntime{
		Fake:    fake,
		entered: make(chan struct{}, 2),
		release: make(chan struct{}),
	}
	l := New(gated, WithOptions(config.Default()))
	instance := fake.CreateInstance()
	if err := l.RegisterInstance(instance); err != nil {
		t.Fatalf("RegisterInstance: %v", err)
	}

	done := make(chan struct{}, 2)
	poll := func() {
		var buf xr.EventDataBuffer
		l.PollEvent(instance, &buf)
		done <- struct{}{}
	}

	go poll()
	<-gated.entered
	// The first poll is inside the runtime; a second one now is the
	// concurrent misuse the auditor watches for.
	go poll()
	<-gated.entered

	close(gated.release)
	<-done
	<-done

	wantCode(t, l.Reporter(), diag.CodeConcurrentEventPoll, 1)
}
