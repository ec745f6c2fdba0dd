package layer

import (
	"sync"

	"github.com/rpavlik/OpenXR-CTS/diag"
	"github.com/rpavlik/OpenXR-CTS/registry"
	"github.com/rpavlik/OpenXR-CTS/xr"
)

// requiredSizes remembers the count a size query returned, per handle
// and operation, so size-insufficient results can be checked against
// the true required size.
type requiredSizes struct {
	mu    sync.Mutex
	sizes map[sizeKey]uint32
}

type sizeKey struct {
	op  string
	key registry.Key
}

func newRequiredSizes() *requiredSizes {
	return &requiredSizes{sizes: make(map[sizeKey]uint32)}
}

func (r *requiredSizes) record(op string, key registry.Key, n uint32) {
	r.mu.Lock()
	r.sizes[sizeKey{op, key}] = n
	r.mu.Unlock()
}

func (r *requiredSizes) get(op string, key registry.Key) (uint32, bool) {
	r.mu.Lock()
	n, ok := r.sizes[sizeKey{op, key}]
	r.mu.Unlock()
	return n, ok
}

// checkTwoCall audits the size-query / fill-buffer contract after an
// enumeration entrypoint returned. It reports any breach and returns
// whether element-level validation may proceed (the runtime filled
// count elements into the array).
func (l *Layer) checkTwoCall(op string, key registry.Key, result xr.Result, capacity uint32, count *uint32) bool {
	switch {
	case result.Succeeded():
		if count == nil {
			l.rep.Error(diag.CodeTwoCallViolation, op,
				"success with nil count output")
			return false
		}
		if capacity == 0 {
			// Size query: the runtime wrote the required size and
			// must not have touched the array.
			l.sizes.record(op, key, *count)
			return false
		}
		if capacity < *count {
			l.rep.Error(diag.CodeBadResultForInputs, op,
				"success with capacity %d below required count %d; XR_ERROR_SIZE_INSUFFICIENT was required",
				capacity, *count)
			return false
		}
		l.sizes.record(op, key, *count)
		return true

	case result == xr.ErrorSizeInsufficient:
		if count == nil {
			l.rep.Error(diag.CodeTwoCallViolation, op,
				"XR_ERROR_SIZE_INSUFFICIENT with nil count output")
			return false
		}
		if capacity == 0 {
			l.rep.Error(diag.CodeBadResultForInputs, op,
				"XR_ERROR_SIZE_INSUFFICIENT for a size query (capacity 0)")
			return false
		}
		if required, ok := l.sizes.get(op, key); ok && *count != required {
			l.rep.Error(diag.CodeTwoCallViolation, op,
				"XR_ERROR_SIZE_INSUFFICIENT wrote count %d but the required size is %d",
				*count, required)
		} else if *count <= capacity {
			l.rep.Error(diag.CodeTwoCallViolation, op,
				"XR_ERROR_SIZE_INSUFFICIENT with required count %d not above capacity %d",
				*count, capacity)
		}
		return false

	default:
		return false
	}
}
