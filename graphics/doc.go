// Package graphics validates the backend-specific halves of swapchain
// enumeration: the texture structs the runtime hands back and the
// usage flags it claims to honor.
//
// Validators are registered per graphics API via init() and selected
// by the graphics binding tag recorded on the owning session:
//
//	v := graphics.Get(xr.GraphicsVulkan)
//	if v != nil {
//	    v.ValidateImageStructs(rep, createInfo.Format, images)
//	    v.ValidateUsageFlags(rep, createInfo.UsageFlags, images)
//	}
//
// Each backend maps the API's native format codes onto gputypes
// texture formats, so the cross-checks stay in one vocabulary.
package graphics
