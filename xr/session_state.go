package xr

import "fmt"

// SessionState is the lifecycle phase of a session, driven by
// session-state-changed events.
type SessionState uint32

const (
	SessionStateUnknown SessionState = iota
	SessionStateIdle
	SessionStateReady
	SessionStateSynchronized
	SessionStateVisible
	SessionStateFocused
	SessionStateStopping
	SessionStateLossPending
	SessionStateExiting
)

func (s SessionState) String() string {
	switch s {
	case SessionStateIdle:
		return "XR_SESSION_STATE_IDLE"
	case SessionStateReady:
		return "XR_SESSION_STATE_READY"
	case SessionStateSynchronized:
		return "XR_SESSION_STATE_SYNCHRONIZED"
	case SessionStateVisible:
		return "XR_SESSION_STATE_VISIBLE"
	case SessionStateFocused:
		return "XR_SESSION_STATE_FOCUSED"
	case SessionStateStopping:
		return "XR_SESSION_STATE_STOPPING"
	case SessionStateLossPending:
		return "XR_SESSION_STATE_LOSS_PENDING"
	case SessionStateExiting:
		return "XR_SESSION_STATE_EXITING"
	default:
		return fmt.Sprintf("XR_SESSION_STATE_UNKNOWN(%d)", uint32(s))
	}
}
