package diag

import (
	"sync"
	"testing"
)

func TestReporter_SeverityAndFailed(t *testing.T) {
	r := NewReporter()

	r.Info(CodeMissingEnumeration, "xrAcquireSwapchainImage", "enumeration skipped")
	if r.Failed() {
		t.Fatal("info finding must not fail the run")
	}

	r.Warn(CodeUsageFlagsInvalid, "xrEnumerateSwapchainImages", "zero usage flags")
	if r.Failed() {
		t.Fatal("warning finding must not fail the run")
	}

	r.Nonconformant(CodeWaitWithoutAcquire, "xrWaitSwapchainImage", "no acquired image")
	if !r.Failed() {
		t.Fatal("error finding must fail the run")
	}
	if r.Aborted() {
		t.Fatal("continue-on-error default must not arm abort")
	}
	if r.Len() != 3 {
		t.Fatalf("expected 3 findings, got %d", r.Len())
	}
}

func TestReporter_StrictPromotesWarnings(t *testing.T) {
	r := NewReporter(WithStrict(true))

	r.Warn(CodeUsageFlagsInvalid, "xrEnumerateSwapchainImages", "zero usage flags")
	if !r.Failed() {
		t.Fatal("strict mode must promote warnings to errors")
	}
	reps := r.Reports()
	if len(reps) != 1 || reps[0].Severity != SeverityError {
		t.Fatalf("expected one error report, got %+v", reps)
	}
}

func TestReporter_AbortArming(t *testing.T) {
	r := NewReporter(WithContinueOnError(false))

	r.Warn(CodeUsageFlagsInvalid, "op", "warn")
	if r.Aborted() {
		t.Fatal("warning must not abort")
	}
	r.Error(CodeReleaseWithoutWait, "op", "err")
	if !r.Aborted() {
		t.Fatal("error with ContinueOnError=false must abort")
	}
}

func TestReporter_CategoryMapping(t *testing.T) {
	cases := []struct {
		code Code
		want Category
	}{
		{CodeWaitWithoutAcquire, CategoryStateMachine},
		{CodeTwoCallViolation, CategoryProtocol},
		{CodeIllegalSessionTransition, CategoryStateMachine},
		{CodeHandleReuse, CategoryHandle},
		{CodeTimeoutTooShort, CategoryTiming},
		{CodeOrphanEvent, CategoryEvent},
		{CodeImageCountMismatch, CategoryContract},
	}
	for _, tc := range cases {
		if got := CategoryOf(tc.code); got != tc.want {
			t.Errorf("CategoryOf(%s) = %s, want %s", tc.code, got, tc.want)
		}
	}
}

func TestReporter_CountsAndByCode(t *testing.T) {
	r := NewReporter()

	r.Error(CodeWaitWithoutAcquire, "xrWaitSwapchainImage", "a")
	r.Error(CodeReleaseWithoutWait, "xrReleaseSwapchainImage", "b")
	r.Error(CodeWaitWithoutAcquire, "xrWaitSwapchainImage", "c")

	if got := len(r.ReportsByCode(CodeWaitWithoutAcquire)); got != 2 {
		t.Fatalf("ReportsByCode = %d, want 2", got)
	}
	if got := r.Counts()[CategoryStateMachine]; got != 3 {
		t.Fatalf("Counts[StateMachine] = %d, want 3", got)
	}
}

func TestReporter_SequenceAndRunID(t *testing.T) {
	r := NewReporter()
	if r.RunID() == "" {
		t.Fatal("run ID must be set")
	}

	r.Info(CodeMissingEnumeration, "op", "one")
	r.Info(CodeMissingEnumeration, "op", "two")
	reps := r.Reports()
	if reps[0].Seq != 1 || reps[1].Seq != 2 {
		t.Fatalf("sequence numbers wrong: %d, %d", reps[0].Seq, reps[1].Seq)
	}
	for _, rep := range reps {
		if rep.RunID != r.RunID() {
			t.Fatal("report missing run ID")
		}
	}
}

func TestReporter_Concurrent(t *testing.T) {
	r := NewReporter()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				r.Warn(CodeImageCountMismatch, "op", "drift")
			}
		}()
	}
	wg.Wait()

	if r.Len() != 400 {
		t.Fatalf("expected 400 findings, got %d", r.Len())
	}
	seen := make(map[uint64]bool)
	for _, rep := range r.Reports() {
		if seen[rep.Seq] {
			t.Fatalf("duplicate sequence %d", rep.Seq)
		}
		seen[rep.Seq] = true
	}
}
