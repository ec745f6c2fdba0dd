// Package diag is the structured diagnostic channel for conformance
// findings. Validators report deviations here; they never alter the
// result code flowing back to the application.
//
// # Severity and categories
//
// Every report carries a severity and a stable category tag:
//
//	rep.Error(diag.CategoryStateMachine, "xrWaitSwapchainImage",
//	    "wait succeeded with no acquired image")
//
// Error marks the run failed, Warning is recorded but permits
// continuation, Info is archival. The Strict option promotes warnings
// to errors at report time; ContinueOnError=false arms an abort after
// the first error, which the dispatch shell turns into an
// ErrorValidationFailure without forwarding further calls.
//
// # Locking
//
// The reporter has a single mutex and acquires no other lock, so it is
// safe to call while holding the registry or a handle-state mutex. It
// is always last in the lock order.
package diag
