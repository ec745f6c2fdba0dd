package layer

import (
	"github.com/rpavlik/OpenXR-CTS/diag"
	"github.com/rpavlik/OpenXR-CTS/xr"
)

func (l *Layer) DestroyInstance(instance xr.Instance) xr.Result {
	const op = "xrDestroyInstance"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.DestroyInstance(instance)
	if result.Succeeded() {
		l.destroyHandle(op, instanceKey(instance))
	}
	return result
}

func (l *Layer) EnumerateViewConfigurations(instance xr.Instance, systemID xr.SystemID, capacity uint32, count *uint32, types []xr.ViewConfigurationType) xr.Result {
	const op = "xrEnumerateViewConfigurations"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.EnumerateViewConfigurations(instance, systemID, capacity, count, types)

	key := instanceKey(instance)
	if _, ok := l.lookup(op, key); !ok {
		return result
	}
	if l.checkTwoCall(op, key, result, capacity, count) {
		seen := make(map[xr.ViewConfigurationType]struct{}, *count)
		for i, vt := range types[:*count] {
			if _, dup := seen[vt]; dup {
				l.rep.Nonconformant(diag.CodeContractBreach, op,
					"duplicate view configuration %d at element %d", vt, i)
			}
			seen[vt] = struct{}{}
		}
	}
	return result
}

func (l *Layer) EnumerateEnvironmentBlendModes(instance xr.Instance, systemID xr.SystemID, viewType xr.ViewConfigurationType, capacity uint32, count *uint32, modes []xr.EnvironmentBlendMode) xr.Result {
	const op = "xrEnumerateEnvironmentBlendModes"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.EnumerateEnvironmentBlendModes(instance, systemID, viewType, capacity, count, modes)

	key := instanceKey(instance)
	if _, ok := l.lookup(op, key); !ok {
		return result
	}
	if l.checkTwoCall(op, key, result, capacity, count) {
		for i, mode := range modes[:*count] {
			l.rep.NonconformantIf(mode < xr.BlendModeOpaque || mode > xr.BlendModeAlphaBlend,
				diag.CodeContractBreach, op, "element %d is not a core blend mode: %d", i, mode)
		}
	}
	return result
}
