package layer

import (
	"sync"
	"sync/atomic"

	"github.com/rpavlik/OpenXR-CTS/diag"
	"github.com/rpavlik/OpenXR-CTS/xr"
)

// eventStream is the process-wide bookkeeping the event auditor keeps
// across polls: last-seen session state, pending loss and recentering
// notices, and lost-event counters.
type eventStream struct {
	mu            sync.Mutex
	lastState     map[xr.Session]xr.SessionState
	predicted     map[xr.Session]xr.Time
	lossPending   map[xr.Instance]xr.Time
	spacePending  map[spaceChangeKey]xr.Time
	bindingsDirty map[xr.Session]struct{}
	lostEvents    uint64

	// polling flags an in-flight poll so concurrent polling can be
	// detected without a lock that would serialize the misuse.
	polling atomic.Bool
}

type spaceChangeKey struct {
	session xr.Session
	space   xr.ReferenceSpaceType
}

func newEventStream() *eventStream {
	return &eventStream{
		lastState:     make(map[xr.Session]xr.SessionState),
		predicted:     make(map[xr.Session]xr.Time),
		lossPending:   make(map[xr.Instance]xr.Time),
		spacePending:  make(map[spaceChangeKey]xr.Time),
		bindingsDirty: make(map[xr.Session]struct{}),
	}
}

func (e *eventStream) beginPoll() bool { return e.polling.CompareAndSwap(false, true) }
func (e *eventStream) endPoll()        { e.polling.Store(false) }

func (e *eventStream) lastSessionState(s xr.Session) (xr.SessionState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.lastState[s]
	return st, ok
}

func (e *eventStream) recordSessionState(s xr.Session, st xr.SessionState) {
	e.mu.Lock()
	e.lastState[s] = st
	e.mu.Unlock()
}

func (e *eventStream) recordPredictedDisplayTime(s xr.Session, t xr.Time) {
	e.mu.Lock()
	e.predicted[s] = t
	e.mu.Unlock()
}

func (e *eventStream) predictedDisplayTime(s xr.Session) (xr.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.predicted[s]
	return t, ok
}

func (e *eventStream) forgetSession(s xr.Session) {
	e.mu.Lock()
	delete(e.lastState, s)
	delete(e.predicted, s)
	delete(e.bindingsDirty, s)
	for k := range e.spacePending {
		if k.session == s {
			delete(e.spacePending, k)
		}
	}
	e.mu.Unlock()
}

// legalSessionTransitions is the allowed next-state set per state.
// The zero state (Unknown) only admits the initial Idle.
var legalSessionTransitions = map[xr.SessionState][]xr.SessionState{
	xr.SessionStateUnknown:      {xr.SessionStateIdle},
	xr.SessionStateIdle:         {xr.SessionStateReady, xr.SessionStateExiting, xr.SessionStateLossPending},
	xr.SessionStateReady:        {xr.SessionStateSynchronized, xr.SessionStateLossPending},
	xr.SessionStateSynchronized: {xr.SessionStateVisible, xr.SessionStateStopping, xr.SessionStateLossPending},
	xr.SessionStateVisible:      {xr.SessionStateFocused, xr.SessionStateSynchronized, xr.SessionStateLossPending},
	xr.SessionStateFocused:      {xr.SessionStateVisible, xr.SessionStateLossPending},
	xr.SessionStateStopping:     {xr.SessionStateIdle, xr.SessionStateLossPending},
	xr.SessionStateLossPending:  {},
	xr.SessionStateExiting:      {},
}

func legalTransition(from, to xr.SessionState) bool {
	for _, next := range legalSessionTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (l *Layer) PollEvent(instance xr.Instance, event *xr.EventDataBuffer) xr.Result {
	const op = "xrPollEvent"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}

	if !l.events.beginPoll() {
		l.rep.Error(diag.CodeConcurrentEventPoll, op,
			"event polled from multiple threads concurrently")
		result := l.rt.PollEvent(instance, event)
		l.auditPolledEvent(op, result, event)
		return result
	}
	result := l.rt.PollEvent(instance, event)
	l.events.endPoll()
	l.auditPolledEvent(op, result, event)
	return result
}

func (l *Layer) auditPolledEvent(op string, result xr.Result, event *xr.EventDataBuffer) {
	if !l.opts.EventAudit || result != xr.Success {
		return
	}
	if event == nil {
		l.rep.Error(diag.CodeContractBreach, op, "success with nil event buffer")
		return
	}

	switch event.Type {
	case xr.StructureTypeEventDataEventsLost:
		l.checkEventsLost(op, event.EventsLost)
	case xr.StructureTypeEventDataInstanceLossPending:
		l.checkInstanceLossPending(op, event.InstanceLossPending)
	case xr.StructureTypeEventDataSessionStateChanged:
		l.checkSessionStateChanged(op, event.SessionStateChanged)
	case xr.StructureTypeEventDataReferenceSpaceChangePending:
		l.checkReferenceSpaceChangePending(op, event.ReferenceSpaceChangePending)
	case xr.StructureTypeEventDataInteractionProfileChanged:
		l.checkInteractionProfileChanged(op, event.InteractionProfileChanged)
	case xr.StructureTypeEventDataVisibilityMaskChangedKHR:
		l.checkVisibilityMaskChanged(op, event.VisibilityMaskChanged)
	case xr.StructureTypeEventDataPerfSettingsEXT:
		l.checkPerfSettings(op, event.PerfSettings)
	case xr.StructureTypeEventDataSpatialAnchorCreateCompleteFB:
		l.checkSpatialAnchorCreateComplete(op, event.SpatialAnchorCreateComplete)
	case xr.StructureTypeEventDataUserPresenceChangedEXT:
		l.checkUserPresenceChanged(op, event.UserPresenceChanged)
	default:
		// Extensions may add event types; do not abort on them.
		l.rep.Info(diag.CodeUnknownEventType, op,
			"unrecognized event type %d", uint32(event.Type))
	}
}

// sessionFromEvent resolves the session an event refers to, reporting
// an orphan when the registry does not know it. Returns false for
// orphans.
func (l *Layer) sessionFromEvent(op string, what string, session xr.Session) bool {
	if _, err := l.reg.Lookup(sessionKey(session)); err != nil {
		l.rep.Error(diag.CodeOrphanEvent, op,
			"%s refers to unknown session %#x", what, uint64(session))
		return false
	}
	return true
}

func (l *Layer) checkEventsLost(op string, data *xr.EventDataEventsLost) {
	if data == nil {
		l.rep.Error(diag.CodeEventsLostEmpty, op, "events-lost event with no payload")
		return
	}
	l.rep.NonconformantIf(data.LostEventCount == 0, diag.CodeEventsLostEmpty, op,
		"events-lost event with zero lost events")

	l.events.mu.Lock()
	l.events.lostEvents += uint64(data.LostEventCount)
	l.events.mu.Unlock()
}

func (l *Layer) checkInstanceLossPending(op string, data *xr.EventDataInstanceLossPending) {
	if data == nil {
		l.rep.Error(diag.CodeContractBreach, op, "instance-loss event with no payload")
		return
	}
	if _, err := l.reg.Lookup(instanceKey(data.Instance)); err != nil {
		l.rep.Error(diag.CodeOrphanEvent, op,
			"instance-loss event refers to unknown instance %#x", uint64(data.Instance))
		return
	}
	// Later calls on this instance are expected to fail with
	// XR_ERROR_INSTANCE_LOST.
	l.events.mu.Lock()
	l.events.lossPending[data.Instance] = data.LossTime
	l.events.mu.Unlock()
}

func (l *Layer) checkSessionStateChanged(op string, data *xr.EventDataSessionStateChanged) {
	if data == nil {
		l.rep.Error(diag.CodeContractBreach, op, "session-state event with no payload")
		return
	}
	if !l.sessionFromEvent(op, "session-state event", data.Session) {
		return
	}

	last, _ := l.events.lastSessionState(data.Session)
	l.rep.NonconformantIf(!legalTransition(last, data.State), diag.CodeIllegalSessionTransition, op,
		"illegal session state transition %s to %s", last, data.State)

	// Record the new state even after a violation to avoid cascading
	// false positives on later transitions.
	l.events.recordSessionState(data.Session, data.State)
}

func (l *Layer) checkReferenceSpaceChangePending(op string, data *xr.EventDataReferenceSpaceChangePending) {
	if data == nil {
		l.rep.Error(diag.CodeContractBreach, op, "reference-space event with no payload")
		return
	}
	if !l.sessionFromEvent(op, "reference-space event", data.Session) {
		return
	}
	if predicted, ok := l.events.predictedDisplayTime(data.Session); ok {
		l.rep.NonconformantIf(data.ChangeTime <= predicted, diag.CodeChangeTimeNotFuture, op,
			"change time %d is not after the predicted display time %d", data.ChangeTime, predicted)
	}

	l.events.mu.Lock()
	l.events.spacePending[spaceChangeKey{data.Session, data.ReferenceSpaceType}] = data.ChangeTime
	l.events.mu.Unlock()
}

func (l *Layer) checkInteractionProfileChanged(op string, data *xr.EventDataInteractionProfileChanged) {
	if data == nil {
		l.rep.Error(diag.CodeContractBreach, op, "interaction-profile event with no payload")
		return
	}
	if !l.sessionFromEvent(op, "interaction-profile event", data.Session) {
		return
	}
	l.events.mu.Lock()
	l.events.bindingsDirty[data.Session] = struct{}{}
	l.events.mu.Unlock()
}

func (l *Layer) checkVisibilityMaskChanged(op string, data *xr.EventDataVisibilityMaskChangedKHR) {
	if data == nil {
		l.rep.Error(diag.CodeContractBreach, op, "visibility-mask event with no payload")
		return
	}
	if !l.sessionFromEvent(op, "visibility-mask event", data.Session) {
		return
	}
	switch data.ViewConfigurationType {
	case xr.ViewConfigurationPrimaryMono:
		l.rep.NonconformantIf(data.ViewIndex != 0, diag.CodeContractBreach, op,
			"view index %d out of range for mono", data.ViewIndex)
	case xr.ViewConfigurationPrimaryStereo:
		l.rep.NonconformantIf(data.ViewIndex > 1, diag.CodeContractBreach, op,
			"view index %d out of range for stereo", data.ViewIndex)
	default:
		l.rep.Error(diag.CodeContractBreach, op,
			"visibility-mask event with invalid view configuration %d", data.ViewConfigurationType)
	}
}

func (l *Layer) checkPerfSettings(op string, data *xr.EventDataPerfSettingsEXT) {
	if data == nil {
		l.rep.Error(diag.CodeContractBreach, op, "perf-settings event with no payload")
		return
	}
	if !l.sessionFromEvent(op, "perf-settings event", data.Session) {
		return
	}
	l.rep.NonconformantIf(data.FromLevel > xr.PerfSettingsLevelImpaired, diag.CodeContractBreach, op,
		"perf-settings from-level %d out of range", data.FromLevel)
	l.rep.NonconformantIf(data.ToLevel > xr.PerfSettingsLevelImpaired, diag.CodeContractBreach, op,
		"perf-settings to-level %d out of range", data.ToLevel)
}

func (l *Layer) checkSpatialAnchorCreateComplete(op string, data *xr.EventDataSpatialAnchorCreateCompleteFB) {
	if data == nil {
		l.rep.Error(diag.CodeContractBreach, op, "spatial-anchor event with no payload")
		return
	}
	l.rep.NonconformantIf(data.Result.Succeeded() && data.Space == xr.NullHandle,
		diag.CodeContractBreach, op,
		"spatial-anchor completion succeeded without a space handle")
}

func (l *Layer) checkUserPresenceChanged(op string, data *xr.EventDataUserPresenceChangedEXT) {
	if data == nil {
		l.rep.Error(diag.CodeContractBreach, op, "user-presence event with no payload")
		return
	}
	l.sessionFromEvent(op, "user-presence event", data.Session)
}

// LostEventCount returns the total lost events the auditor has seen.
func (l *Layer) LostEventCount() uint64 {
	l.events.mu.Lock()
	defer l.events.mu.Unlock()
	return l.events.lostEvents
}
