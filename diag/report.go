package diag

import (
	"fmt"
	"strings"
	"time"
)

// Severity grades a conformance finding.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Category is the error-taxonomy bucket of a finding, orthogonal to
// the API's own result codes.
type Category string

const (
	CategoryHandle       Category = "handle_error"
	CategoryProtocol     Category = "protocol_violation"
	CategoryStateMachine Category = "state_machine_violation"
	CategoryTiming       Category = "timing_violation"
	CategoryEvent        Category = "event_violation"
	CategoryContract     Category = "runtime_contract_breach"
)

// Code is the stable violation name used for filtering. Every code
// belongs to exactly one Category.
type Code string

const (
	CodeUnknownHandle    Code = "UnknownHandle"
	CodeHandleReuse      Code = "HandleReuse"
	CodeWrongHandleType  Code = "WrongHandleType"

	CodeTwoCallViolation   Code = "TwoCallViolation"
	CodeBadResultForInputs Code = "BadResultForInputs"

	CodeImageAcquireInvalid      Code = "ImageAcquireInvalid"
	CodeWaitWithoutAcquire       Code = "WaitWithoutAcquire"
	CodeReleaseWithoutWait       Code = "ReleaseWithoutWait"
	CodeStaticImageReacquired    Code = "StaticImageReacquired"
	CodeIllegalSessionTransition Code = "IllegalSessionTransition"
	CodeCallOrderInvalid         Code = "CallOrderInvalid"

	CodeTimeoutTooShort     Code = "TimeoutTooShort"
	CodeChangeTimeNotFuture Code = "ChangeTimeNotFuture"

	CodeEventsLostEmpty     Code = "EventsLostEmpty"
	CodeOrphanEvent         Code = "OrphanEvent"
	CodeUnknownEventType    Code = "UnknownEventType"
	CodeConcurrentEventPoll Code = "ConcurrentEventPoll"

	CodeImageCountMismatch Code = "ImageCountMismatch"
	CodeImageStructInvalid Code = "ImageStructInvalid"
	CodeUsageFlagsInvalid  Code = "UsageFlagsInvalid"
	CodeMissingEnumeration Code = "MissingEnumeration"
	CodeContractBreach     Code = "RuntimeContractBreach"
)

var codeCategories = map[Code]Category{
	CodeUnknownHandle:   CategoryHandle,
	CodeHandleReuse:     CategoryHandle,
	CodeWrongHandleType: CategoryHandle,

	CodeTwoCallViolation:   CategoryProtocol,
	CodeBadResultForInputs: CategoryProtocol,

	CodeImageAcquireInvalid:      CategoryStateMachine,
	CodeWaitWithoutAcquire:       CategoryStateMachine,
	CodeReleaseWithoutWait:       CategoryStateMachine,
	CodeStaticImageReacquired:    CategoryStateMachine,
	CodeIllegalSessionTransition: CategoryStateMachine,
	CodeCallOrderInvalid:         CategoryStateMachine,

	CodeTimeoutTooShort:     CategoryTiming,
	CodeChangeTimeNotFuture: CategoryTiming,

	CodeEventsLostEmpty:     CategoryEvent,
	CodeOrphanEvent:         CategoryEvent,
	CodeUnknownEventType:    CategoryEvent,
	CodeConcurrentEventPoll: CategoryEvent,

	CodeImageCountMismatch: CategoryContract,
	CodeImageStructInvalid: CategoryContract,
	CodeUsageFlagsInvalid:  CategoryContract,
	CodeMissingEnumeration: CategoryContract,
	CodeContractBreach:     CategoryContract,
}

// CategoryOf returns the taxonomy bucket of a code. Unknown codes fall
// into CategoryContract.
func CategoryOf(code Code) Category {
	if cat, ok := codeCategories[code]; ok {
		return cat
	}
	return CategoryContract
}

// Report is one conformance finding.
type Report struct {
	Seq       uint64
	RunID     string
	Severity  Severity
	Category  Category
	Code      Code
	Operation string
	Message   string
	Time      time.Time
}

// String renders a report in the one-line log form.
func (r Report) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(r.Severity.String())
	b.WriteString("] ")
	b.WriteString(string(r.Code))
	b.WriteString(": ")
	b.WriteString(r.Operation)
	b.WriteString(": ")
	b.WriteString(r.Message)
	return b.String()
}

func formatMessage(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
