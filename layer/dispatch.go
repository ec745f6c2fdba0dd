package layer

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/rpavlik/OpenXR-CTS/xr"
)

// The dispatch table replaces the generated per-entrypoint forwarders
// of a C layer: every intercepted entrypoint is a named slot bound to
// the hook method. buildDispatch cross-checks the table against the
// xr.Runtime method set in both directions, so adding an entrypoint to
// the interface without binding a slot (or vice versa) fails at
// construction instead of silently forwarding unvalidated.

func (l *Layer) buildDispatch() map[string]any {
	table := map[string]any{
		"xrDestroyInstance":                l.DestroyInstance,
		"xrEnumerateViewConfigurations":    l.EnumerateViewConfigurations,
		"xrEnumerateEnvironmentBlendModes": l.EnumerateEnvironmentBlendModes,
		"xrPollEvent":                      l.PollEvent,

		"xrCreateSession":             l.CreateSession,
		"xrDestroySession":            l.DestroySession,
		"xrBeginSession":              l.BeginSession,
		"xrEndSession":                l.EndSession,
		"xrRequestExitSession":        l.RequestExitSession,
		"xrWaitFrame":                 l.WaitFrame,
		"xrBeginFrame":                l.BeginFrame,
		"xrEndFrame":                  l.EndFrame,
		"xrEnumerateReferenceSpaces":  l.EnumerateReferenceSpaces,
		"xrEnumerateSwapchainFormats": l.EnumerateSwapchainFormats,

		"xrCreateReferenceSpace": l.CreateReferenceSpace,
		"xrCreateActionSpace":    l.CreateActionSpace,
		"xrDestroySpace":         l.DestroySpace,
		"xrLocateSpace":          l.LocateSpace,

		"xrCreateActionSet":        l.CreateActionSet,
		"xrDestroyActionSet":       l.DestroyActionSet,
		"xrCreateAction":           l.CreateAction,
		"xrDestroyAction":          l.DestroyAction,
		"xrSyncActions":            l.SyncActions,
		"xrGetActionStateBoolean":  l.GetActionStateBoolean,
		"xrGetActionStateFloat":    l.GetActionStateFloat,
		"xrGetActionStateVector2f": l.GetActionStateVector2f,
		"xrGetActionStatePose":     l.GetActionStatePose,

		"xrCreateSwapchain":           l.CreateSwapchain,
		"xrDestroySwapchain":          l.DestroySwapchain,
		"xrEnumerateSwapchainImages":  l.EnumerateSwapchainImages,
		"xrAcquireSwapchainImage":     l.AcquireSwapchainImage,
		"xrWaitSwapchainImage":        l.WaitSwapchainImage,
		"xrReleaseSwapchainImage":     l.ReleaseSwapchainImage,
	}

	rt := reflect.TypeOf((*xr.Runtime)(nil)).Elem()
	for i := 0; i < rt.NumMethod(); i++ {
		name := "xr" + rt.Method(i).Name
		if _, ok := table[name]; !ok {
			panic(fmt.Sprintf("layer: no dispatch slot bound for entrypoint %s", name))
		}
	}
	if len(table) != rt.NumMethod() {
		for name := range table {
			if _, ok := rt.MethodByName(name[2:]); !ok {
				panic(fmt.Sprintf("layer: dispatch slot %s has no xr.Runtime entrypoint", name))
			}
		}
	}
	Logger().Debug("dispatch table bound", zap.Int("entrypoints", len(table)))
	return table
}

// Entrypoint resolves an intercepted entrypoint by its OpenXR name.
// The returned value is the bound hook method; callers type-assert it
// to the matching signature, mirroring xrGetInstanceProcAddr.
func (l *Layer) Entrypoint(name string) (any, bool) {
	fn, ok := l.forwarders[name]
	return fn, ok
}

// Entrypoints returns the names of all intercepted entrypoints.
func (l *Layer) Entrypoints() []string {
	names := make([]string, 0, len(l.forwarders))
	for name := range l.forwarders {
		names = append(names, name)
	}
	return names
}
