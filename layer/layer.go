package layer

import (
	"errors"
	"time"

	"github.com/rpavlik/OpenXR-CTS/config"
	"github.com/rpavlik/OpenXR-CTS/diag"
	"github.com/rpavlik/OpenXR-CTS/registry"
	"github.com/rpavlik/OpenXR-CTS/xr"
)

// Layer interposes between an application and an OpenXR runtime.
// It implements xr.Runtime.
type Layer struct {
	rt   xr.Runtime
	reg  *registry.Registry
	rep  *diag.Reporter
	opts *config.Options

	events *eventStream
	sizes  *requiredSizes

	// now samples the monotonic clock around blocking waits.
	now func() time.Time

	forwarders map[string]any
}

var _ xr.Runtime = (*Layer)(nil)

// Option configures a Layer.
type Option func(*Layer)

// WithOptions sets the layer's launch options.
func WithOptions(opts *config.Options) Option {
	return func(l *Layer) { l.opts = opts }
}

// WithReporter installs a pre-built reporter, overriding the one the
// layer would derive from its options.
func WithReporter(rep *diag.Reporter) Option {
	return func(l *Layer) { l.rep = rep }
}

// WithClock overrides the monotonic clock used for timeout auditing.
func WithClock(now func() time.Time) Option {
	return func(l *Layer) { l.now = now }
}

// New wraps rt in a conformance layer.
func New(rt xr.Runtime, options ...Option) *Layer {
	l := &Layer{
		rt:     rt,
		reg:    registry.New(),
		events: newEventStream(),
		sizes:  newRequiredSizes(),
		now:    time.Now,
	}
	for _, opt := range options {
		opt(l)
	}
	if l.opts == nil {
		l.opts = config.LoadOrDefault()
	}
	if l.rep == nil {
		l.rep = diag.NewReporter(
			diag.WithStrict(l.opts.Strict),
			diag.WithContinueOnError(l.opts.ContinueOnError),
		)
	}
	l.forwarders = l.buildDispatch()
	return l
}

// Reporter returns the layer's diagnostic stream.
func (l *Layer) Reporter() *diag.Reporter { return l.rep }

// Registry returns the handle-state registry.
func (l *Layer) Registry() *registry.Registry { return l.reg }

// RegisterInstance seeds the registry with the root instance handle.
// Instance creation happens before the layer exists, so the harness
// calls this once with the handle the application obtained.
func (l *Layer) RegisterInstance(instance xr.Instance) error {
	_, err := l.reg.Insert(instanceKey(instance), registry.NoParent)
	if errors.Is(err, registry.ErrDuplicateHandle) {
		l.rep.Error(diag.CodeHandleReuse, "xrCreateInstance",
			"instance handle %#x already live", uint64(instance))
		return nil
	}
	return err
}

// aborted reports whether a continueOnError=false run already hit its
// first error. Hooks return ErrorValidationFailure without forwarding
// once this trips.
func (l *Layer) aborted() bool { return l.rep.Aborted() }

// lookup resolves key, reporting UnknownHandle when the registry has
// no entry for it.
func (l *Layer) lookup(op string, key registry.Key) (*registry.State, bool) {
	st, err := l.reg.Lookup(key)
	if err != nil {
		l.rep.Error(diag.CodeUnknownHandle, op,
			"no live %s with value %#x", key.Type, key.Handle)
		return nil, false
	}
	return st, true
}

// insert registers a runtime-issued handle, downgrading duplicate
// keys to a HandleReuse finding so the test can continue with the
// replacement state.
func (l *Layer) insert(op string, key, parent registry.Key) (*registry.State, bool) {
	st, err := l.reg.Insert(key, parent)
	switch {
	case err == nil:
		return st, true
	case errors.Is(err, registry.ErrDuplicateHandle):
		l.rep.Error(diag.CodeHandleReuse, op,
			"runtime returned live %s value %#x for a new object", key.Type, key.Handle)
		return st, true
	default:
		l.rep.Error(diag.CodeUnknownHandle, op,
			"parent %s %#x is not live", parent.Type, parent.Handle)
		return nil, false
	}
}

// destroyHandle forwards nothing; it updates the registry after a
// destroy call succeeded.
func (l *Layer) destroyHandle(op string, key registry.Key) {
	if err := l.reg.Destroy(key); err != nil {
		l.rep.Error(diag.CodeUnknownHandle, op,
			"destroy succeeded for unknown %s %#x", key.Type, key.Handle)
	}
}

func instanceKey(h xr.Instance) registry.Key {
	return registry.Key{Handle: uint64(h), Type: xr.ObjectTypeInstance}
}

func sessionKey(h xr.Session) registry.Key {
	return registry.Key{Handle: uint64(h), Type: xr.ObjectTypeSession}
}

func swapchainKey(h xr.Swapchain) registry.Key {
	return registry.Key{Handle: uint64(h), Type: xr.ObjectTypeSwapchain}
}

func spaceKey(h xr.Space) registry.Key {
	return registry.Key{Handle: uint64(h), Type: xr.ObjectTypeSpace}
}

func actionSetKey(h xr.ActionSet) registry.Key {
	return registry.Key{Handle: uint64(h), Type: xr.ObjectTypeActionSet}
}

func actionKey(h xr.Action) registry.Key {
	return registry.Key{Handle: uint64(h), Type: xr.ObjectTypeAction}
}
