package diag

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reporter collects conformance findings for one test run. It is
// append-only and safe for concurrent use. A conformant runtime
// produces a run with zero error entries.
type Reporter struct {
	mu      sync.Mutex
	runID   string
	seq     uint64
	reports []Report
	counts  map[Category]int
	failed  bool
	aborted bool

	strict          bool
	continueOnError bool

	logger *zap.Logger
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithStrict promotes every warning to an error at report time.
func WithStrict(strict bool) Option {
	return func(r *Reporter) { r.strict = strict }
}

// WithContinueOnError controls whether the run keeps going after the
// first error. When false the reporter arms Aborted after the first
// error report.
func WithContinueOnError(cont bool) Option {
	return func(r *Reporter) { r.continueOnError = cont }
}

// WithLogger mirrors every report into l at the matching level.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reporter) { r.logger = l }
}

// NewReporter creates a reporter with a fresh run ID.
func NewReporter(opts ...Option) *Reporter {
	r := &Reporter{
		runID:           uuid.NewString(),
		counts:          make(map[Category]int),
		continueOnError: true,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunID returns the identifier stamped on every report.
func (r *Reporter) RunID() string { return r.runID }

// Report appends one finding. The severity may be promoted by the
// strict option. Takes no lock other than the reporter's own, so it is
// safe to call while holding registry or handle-state locks.
func (r *Reporter) Report(sev Severity, code Code, operation, format string, args ...any) {
	msg := formatMessage(format, args...)
	cat := CategoryOf(code)

	r.mu.Lock()
	if sev == SeverityWarning && r.strict {
		sev = SeverityError
	}
	r.seq++
	rep := Report{
		Seq:       r.seq,
		RunID:     r.runID,
		Severity:  sev,
		Category:  cat,
		Code:      code,
		Operation: operation,
		Message:   msg,
		Time:      time.Now(),
	}
	r.reports = append(r.reports, rep)
	r.counts[cat]++
	if sev == SeverityError {
		r.failed = true
		if !r.continueOnError {
			r.aborted = true
		}
	}
	logger := r.logger
	r.mu.Unlock()

	fields := []zap.Field{
		zap.String("run", rep.RunID),
		zap.String("code", string(code)),
		zap.String("category", string(cat)),
		zap.String("operation", operation),
	}
	switch sev {
	case SeverityError:
		logger.Error(msg, fields...)
	case SeverityWarning:
		logger.Warn(msg, fields...)
	default:
		logger.Info(msg, fields...)
	}
}

// Info records an archival finding.
func (r *Reporter) Info(code Code, operation, format string, args ...any) {
	r.Report(SeverityInfo, code, operation, format, args...)
}

// Warn records a finding that permits continuation.
func (r *Reporter) Warn(code Code, operation, format string, args ...any) {
	r.Report(SeverityWarning, code, operation, format, args...)
}

// Error records a finding that marks the run failed.
func (r *Reporter) Error(code Code, operation, format string, args ...any) {
	r.Report(SeverityError, code, operation, format, args...)
}

// Nonconformant reports a runtime deviation at error severity.
func (r *Reporter) Nonconformant(code Code, operation, format string, args ...any) {
	r.Error(code, operation, format, args...)
}

// NonconformantIf reports at error severity when cond holds.
func (r *Reporter) NonconformantIf(cond bool, code Code, operation, format string, args ...any) {
	if cond {
		r.Error(code, operation, format, args...)
	}
}

// Advisory reports an unusual but legal situation at info severity.
func (r *Reporter) Advisory(code Code, operation, format string, args ...any) {
	r.Info(code, operation, format, args...)
}

// Reports returns a copy of the findings so far.
func (r *Reporter) Reports() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	return out
}

// ReportsByCode returns the findings with the given code.
func (r *Reporter) ReportsByCode(code Code) []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Report
	for _, rep := range r.reports {
		if rep.Code == code {
			out = append(out, rep)
		}
	}
	return out
}

// Counts returns per-category totals.
func (r *Reporter) Counts() map[Category]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[Category]int, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out
}

// Len returns the number of findings.
func (r *Reporter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

// Failed reports whether any error-severity finding was recorded.
func (r *Reporter) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

// Aborted reports whether the run hit an error with
// ContinueOnError=false. The dispatch shell checks this before
// forwarding each call.
func (r *Reporter) Aborted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.aborted
}
