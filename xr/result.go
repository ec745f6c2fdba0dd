package xr

import "fmt"

// Result is an OpenXR result code. Zero and positive values are
// qualified successes, negative values are errors.
type Result int32

const (
	Success              Result = 0
	TimeoutExpired       Result = 1
	SessionLossPending   Result = 3
	EventUnavailable     Result = 4
	SpaceBoundsUnavailable Result = 7
	SessionNotFocused    Result = 8
	FrameDiscarded       Result = 9

	ErrorValidationFailure   Result = -1
	ErrorRuntimeFailure      Result = -2
	ErrorOutOfMemory         Result = -3
	ErrorFunctionUnsupported Result = -7
	ErrorSizeInsufficient    Result = -11
	ErrorHandleInvalid       Result = -12
	ErrorInstanceLost        Result = -13
	ErrorSessionRunning      Result = -14
	ErrorSessionNotRunning   Result = -16
	ErrorSessionNotReady     Result = -17
	ErrorSessionNotStopping  Result = -18
	ErrorTimeInvalid         Result = -30
	ErrorCallOrderInvalid    Result = -37
	ErrorSwapchainRectInvalid Result = -41
)

// Succeeded reports whether r is a success code (including qualified
// successes such as TimeoutExpired).
func (r Result) Succeeded() bool { return r >= 0 }

// Unqualified reports whether r is exactly Success.
func (r Result) Unqualified() bool { return r == Success }

func (r Result) String() string {
	switch r {
	case Success:
		return "XR_SUCCESS"
	case TimeoutExpired:
		return "XR_TIMEOUT_EXPIRED"
	case SessionLossPending:
		return "XR_SESSION_LOSS_PENDING"
	case EventUnavailable:
		return "XR_EVENT_UNAVAILABLE"
	case SpaceBoundsUnavailable:
		return "XR_SPACE_BOUNDS_UNAVAILABLE"
	case SessionNotFocused:
		return "XR_SESSION_NOT_FOCUSED"
	case FrameDiscarded:
		return "XR_FRAME_DISCARDED"
	case ErrorValidationFailure:
		return "XR_ERROR_VALIDATION_FAILURE"
	case ErrorRuntimeFailure:
		return "XR_ERROR_RUNTIME_FAILURE"
	case ErrorOutOfMemory:
		return "XR_ERROR_OUT_OF_MEMORY"
	case ErrorFunctionUnsupported:
		return "XR_ERROR_FUNCTION_UNSUPPORTED"
	case ErrorSizeInsufficient:
		return "XR_ERROR_SIZE_INSUFFICIENT"
	case ErrorHandleInvalid:
		return "XR_ERROR_HANDLE_INVALID"
	case ErrorInstanceLost:
		return "XR_ERROR_INSTANCE_LOST"
	case ErrorSessionRunning:
		return "XR_ERROR_SESSION_RUNNING"
	case ErrorSessionNotRunning:
		return "XR_ERROR_SESSION_NOT_RUNNING"
	case ErrorSessionNotReady:
		return "XR_ERROR_SESSION_NOT_READY"
	case ErrorSessionNotStopping:
		return "XR_ERROR_SESSION_NOT_STOPPING"
	case ErrorTimeInvalid:
		return "XR_ERROR_TIME_INVALID"
	case ErrorCallOrderInvalid:
		return "XR_ERROR_CALL_ORDER_INVALID"
	case ErrorSwapchainRectInvalid:
		return "XR_ERROR_SWAPCHAIN_RECT_INVALID"
	default:
		return fmt.Sprintf("XR_UNKNOWN_RESULT(%d)", int32(r))
	}
}
