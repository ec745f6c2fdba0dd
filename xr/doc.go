// Package xr defines the OpenXR API surface the conformance layer
// intercepts: result codes, object and handle types, structure tags,
// event payloads, and the Runtime interface describing the downward
// dispatch to the runtime under test.
//
// The types here mirror the C ABI shapes of the registry rather than
// Go-native forms. Enumeration entrypoints keep the two-call idiom
// (capacity input, count output pointer, caller-supplied array) because
// that contract is itself a validation target, and output parameters
// stay pointers so the layer can observe what the runtime wrote.
//
// Handles are plain integers. Two handles of different object types may
// share the same integer value; only the (value, type) pair identifies
// an object. See the registry package.
package xr
