package graphics

import (
	"sync"

	"github.com/rpavlik/OpenXR-CTS/diag"
	"github.com/rpavlik/OpenXR-CTS/xr"
)

// Validator checks graphics-backend specifics of swapchain image
// enumeration results.
type Validator interface {
	// Name returns the backend identifier.
	Name() string

	// ValidateImageStructs checks the enumerated image array against
	// the creation format.
	ValidateImageStructs(rep *diag.Reporter, format int64, images []xr.SwapchainImage)

	// ValidateUsageFlags checks the created usage flag combination is
	// expressible on this backend.
	ValidateUsageFlags(rep *diag.Reporter, flags xr.SwapchainUsageFlags, images []xr.SwapchainImage)
}

// Factory creates a validator instance.
type Factory func() Validator

var (
	registryMu sync.RWMutex
	validators = make(map[xr.GraphicsAPI]Factory)
)

// Register registers a validator factory for a graphics API.
// This is typically called from init() functions in backend files.
// A factory registered for the same API replaces the prior one.
func Register(api xr.GraphicsAPI, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	validators[api] = factory
}

// Get returns a validator for api, or nil if none is registered.
func Get(api xr.GraphicsAPI) Validator {
	registryMu.RLock()
	factory, ok := validators[api]
	registryMu.RUnlock()
	if !ok {
		return nil
	}
	return factory()
}

// Available returns the registered graphics APIs.
func Available() []xr.GraphicsAPI {
	registryMu.RLock()
	defer registryMu.RUnlock()
	apis := make([]xr.GraphicsAPI, 0, len(validators))
	for api := range validators {
		apis = append(apis, api)
	}
	return apis
}
