// Package layer is the interposition engine: it implements xr.Runtime
// by forwarding every call to an underlying runtime and auditing the
// inputs, outputs, and handle-state machine afterwards. The runtime's
// result code is always returned to the caller unchanged; findings
// flow through the diag reporter instead.
//
// A Layer is created around the runtime under test and seeded with the
// instance handle the application obtained:
//
//	l := layer.New(rt)
//	l.RegisterInstance(instance)
//	// hand l to the application in place of rt
//
// Every hook runs on the calling thread, forward-then-validate, and
// holds at most the registry read lock, one handle-state mutex, and
// the reporter, in that order.
package layer
