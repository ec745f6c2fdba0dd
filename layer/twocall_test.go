package layer

import (
	"testing"

	"github.com/rpavlik/OpenXR-CTS/config"
	"github.com/rpavlik/OpenXR-CTS/diag"
	"github.com/rpavlik/OpenXR-CTS/fakert"
	"github.com/rpavlik/OpenXR-CTS/xr"
)

func TestTwoCall_ConformingSequence(t *testing.T) {
	l, _, instance := newTestLayer(t)
	session := newTestSession(t, l, instance)

	var count uint32
	if res := l.EnumerateSwapchainFormats(session, 0, &count, nil); res != xr.Success {
		t.Fatalf("size query: %s", res)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	formats := make([]int64, count)
	if res := l.EnumerateSwapchainFormats(session, count, &count, formats); res != xr.Success {
		t.Fatalf("fill: %s", res)
	}

	wantClean(t, l.Reporter())
}

func TestTwoCall_NilCountOutput(t *testing.T) {
	l, _, instance := newTestLayer(t)
	session := newTestSession(t, l, instance)

	// The fake tolerates a nil count and still reports success, which
	// is exactly the breach the auditor must catch.
	res := l.EnumerateSwapchainFormats(session, 0, nil, nil)
	if res != xr.Success {
		t.Fatalf("enumerate: %s", res)
	}

	wantCode(t, l.Reporter(), diag.CodeTwoCallViolation, 1)
}

func TestTwoCall_InsufficientOnSizeQuery(t *testing.T) {
	l, fake, instance := newTestLayer(t)
	session := newTestSession(t, l, instance)

	fake.QueueResult("xrEnumerateSwapchainFormats", xr.ErrorSizeInsufficient)
	var count uint32
	l.EnumerateSwapchainFormats(session, 0, &count, nil)

	wantCode(t, l.Reporter(), diag.CodeBadResultForInputs, 1)
}

func TestTwoCall_WrongRequiredSize(t *testing.T) {
	l, fake, instance := newTestLayer(t)
	session := newTestSession(t, l, instance)

	// A prior size query pins the true required size at 2.
	var count uint32
	if res := l.EnumerateSwapchainFormats(session, 0, &count, nil); res != xr.Success {
		t.Fatalf("size query: %s", res)
	}

	fake.Faults.WrongRequiredSize = 5
	formats := make([]int64, 1)
	res := l.EnumerateSwapchainFormats(session, 1, &count, formats)
	if res != xr.ErrorSizeInsufficient {
		t.Fatalf("fill: %s, want ErrorSizeInsufficient", res)
	}

	wantCode(t, l.Reporter(), diag.CodeTwoCallViolation, 1)
}

func TestTwoCall_RequiredSizeNotAboveCapacity(t *testing.T) {
	l, fake, instance := newTestLayer(t)
	session := newTestSession(t, l, instance)

	// No prior size query, so the auditor falls back to the capacity
	// comparison: a required size at or below capacity contradicts the
	// insufficient result.
	fake.Faults.WrongRequiredSize = 1
	var count uint32
	formats := make([]int64, 1)
	res := l.EnumerateSwapchainFormats(session, 1, &count, formats)
	if res != xr.ErrorSizeInsufficient {
		t.Fatalf("fill: %s, want ErrorSizeInsufficient", res)
	}

	wantCode(t, l.Reporter(), diag.CodeTwoCallViolation, 1)
}

// overfillRuntime claims success while writing a count above the
// provided capacity.
type overfillRuntime struct {
	*fakert.Fake
}

func (r *overfillRuntime) EnumerateSwapchainFormats(session xr.Session, capacity uint32, count *uint32, formats []int64) xr.Result {
	if count != nil {
		*count = capacity + 3
	}
	return xr.Success
}

func TestTwoCall_SuccessAboveCapacity(t *testing.T) {
	fake := fakert.New()
	l := New(&overfillRuntime{Fake: fake}, WithOptions(config.Default()))
	instance := fake.CreateInstance()
	if err := l.RegisterInstance(instance); err != nil {
		t.Fatalf("RegisterInstance: %v", err)
	}
	session := newTestSession(t, l, instance)

	var count uint32
	formats := make([]int64, 2)
	l.EnumerateSwapchainFormats(session, 2, &count, formats)

	wantCode(t, l.Reporter(), diag.CodeBadResultForInputs, 1)
}

func TestTwoCall_DuplicateFormats(t *testing.T) {
	l, fake, instance := newTestLayer(t)
	session := newTestSession(t, l, instance)
	fake.Formats = []int64{37, 37}

	var count uint32
	formats := make([]int64, 2)
	if res := l.EnumerateSwapchainFormats(session, 2, &count, formats); res != xr.Success {
		t.Fatalf("fill: %s", res)
	}

	wantCode(t, l.Reporter(), diag.CodeContractBreach, 1)
}

func TestTwoCall_InvalidReferenceSpaceElement(t *testing.T) {
	l, fake, instance := newTestLayer(t)
	session := newTestSession(t, l, instance)
	fake.RefSpaces = []xr.ReferenceSpaceType{xr.ReferenceSpaceLocal, xr.ReferenceSpaceType(99)}

	var count uint32
	spaces := make([]xr.ReferenceSpaceType, 2)
	if res := l.EnumerateReferenceSpaces(session, 2, &count, spaces); res != xr.Success {
		t.Fatalf("fill: %s", res)
	}

	wantCode(t, l.Reporter(), diag.CodeContractBreach, 1)
}

func TestTwoCall_ViewConfigurations(t *testing.T) {
	l, _, instance := newTestLayer(t)

	var count uint32
	if res := l.EnumerateViewConfigurations(instance, 1, 0, &count, nil); res != xr.Success {
		t.Fatalf("size query: %s", res)
	}
	types := make([]xr.ViewConfigurationType, count)
	if res := l.EnumerateViewConfigurations(instance, 1, count, &count, types); res != xr.Success {
		t.Fatalf("fill: %s", res)
	}

	wantClean(t, l.Reporter())
}
