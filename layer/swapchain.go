package layer

import (
	"github.com/rpavlik/OpenXR-CTS/diag"
	"github.com/rpavlik/OpenXR-CTS/graphics"
	"github.com/rpavlik/OpenXR-CTS/registry"
	"github.com/rpavlik/OpenXR-CTS/xr"
)

func (l *Layer) CreateSwapchain(session xr.Session, createInfo *xr.SwapchainCreateInfo, swapchain *xr.Swapchain) xr.Result {
	const op = "xrCreateSwapchain"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.CreateSwapchain(session, createInfo, swapchain)
	if !result.Succeeded() {
		return result
	}

	sessSt, ok := l.lookup(op, sessionKey(session))
	if !ok {
		return result
	}
	binding := xr.GraphicsUnknown
	sessSt.Lock()
	if ss, ok := registry.Custom[*sessionState](sessSt); ok {
		binding = ss.graphics
	}
	sessSt.Unlock()

	if swapchain == nil || *swapchain == xr.NullHandle {
		l.rep.Error(diag.CodeContractBreach, op, "success with no swapchain handle written")
		return result
	}
	st, ok := l.insert(op, swapchainKey(*swapchain), sessionKey(session))
	if !ok {
		return result
	}
	l.reg.AttachCustom(st, newSwapchainState(createInfo, binding))
	return result
}

func (l *Layer) DestroySwapchain(swapchain xr.Swapchain) xr.Result {
	const op = "xrDestroySwapchain"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.DestroySwapchain(swapchain)
	if result.Succeeded() {
		l.destroyHandle(op, swapchainKey(swapchain))
	}
	return result
}

func (l *Layer) EnumerateSwapchainImages(swapchain xr.Swapchain, capacity uint32, count *uint32, images []xr.SwapchainImage) xr.Result {
	const op = "xrEnumerateSwapchainImages"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.EnumerateSwapchainImages(swapchain, capacity, count, images)

	key := swapchainKey(swapchain)
	st, ok := l.lookup(op, key)
	if !ok {
		return result
	}
	elementsValid := l.checkTwoCall(op, key, result, capacity, count)
	if !result.Succeeded() || count == nil {
		return result
	}

	st.Lock()
	defer st.Unlock()
	sc, ok := registry.Custom[*swapchainState](st)
	if !ok {
		return result
	}

	n := *count
	if n == 0 {
		l.rep.Nonconformant(diag.CodeImageCountMismatch, op, "invalid empty image count")
		return result
	}
	l.rep.NonconformantIf(sc.isStatic && n != 1, diag.CodeImageCountMismatch, op,
		"invalid image count %d for static swapchain", n)

	if len(sc.imageStates) == 0 {
		// Size the per-image states once the capacity is known.
		sc.imageStates = make([]imageState, n)
	}
	l.rep.NonconformantIf(uint32(len(sc.imageStates)) != n, diag.CodeImageCountMismatch, op,
		"image count %d differs from previous count %d", n, len(sc.imageStates))

	if elementsValid && images != nil {
		if v := graphics.Get(sc.graphics); v != nil {
			v.ValidateImageStructs(l.rep, sc.createInfo.Format, images[:n])
			v.ValidateUsageFlags(l.rep, sc.createInfo.UsageFlags, images[:n])
		} else {
			l.rep.Advisory(diag.CodeContractBreach, op,
				"no graphics validator registered for %s binding", sc.graphics)
		}
	}
	return result
}

// ensureImagesEnumerated synthesizes a size-query enumeration when an
// image is acquired before the app ever enumerated. It runs before the
// state lock is taken so the synthesized call does not re-enter it;
// this replaces the recursive-mutex arrangement the per-image
// bookkeeping would otherwise need.
func (l *Layer) ensureImagesEnumerated(op string, swapchain xr.Swapchain, st *registry.State) {
	st.Lock()
	sc, ok := registry.Custom[*swapchainState](st)
	needs := ok && len(sc.imageStates) == 0
	st.Unlock()
	if !needs {
		return
	}

	l.rep.Advisory(diag.CodeMissingEnumeration, op,
		"image acquired before any image enumeration; synthesizing a size query")
	var n uint32
	res := l.EnumerateSwapchainImages(swapchain, 0, &n, nil)
	l.rep.NonconformantIf(!res.Succeeded(), diag.CodeContractBreach, op,
		"unable to enumerate swapchain images: %s", res)
}

func (l *Layer) AcquireSwapchainImage(swapchain xr.Swapchain, index *uint32) xr.Result {
	const op = "xrAcquireSwapchainImage"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.AcquireSwapchainImage(swapchain, index)
	if !result.Succeeded() {
		return result
	}

	st, ok := l.lookup(op, swapchainKey(swapchain))
	if !ok {
		return result
	}
	if index == nil {
		l.rep.Error(diag.CodeContractBreach, op, "success with nil index output")
		return result
	}
	l.ensureImagesEnumerated(op, swapchain, st)

	st.Lock()
	defer st.Unlock()
	sc, ok := registry.Custom[*swapchainState](st)
	if !ok {
		return result
	}
	if len(sc.imageStates) == 0 {
		// Synthesized enumeration failed; already reported.
		return result
	}
	if *index >= uint32(len(sc.imageStates)) {
		l.rep.Nonconformant(diag.CodeImageAcquireInvalid, op,
			"out-of-bounds image index %d, swapchain has %d images", *index, len(sc.imageStates))
		return result
	}

	state := sc.imageStates[*index]
	switch {
	case state == imageWaited:
		l.rep.Nonconformant(diag.CodeImageAcquireInvalid, op,
			"acquired image %d in Waited state", *index)
	case state == imageAcquired:
		l.rep.Nonconformant(diag.CodeImageAcquireInvalid, op,
			"acquired image %d already in Acquired state", *index)
	case state == imageReleased && sc.isStatic:
		l.rep.Nonconformant(diag.CodeStaticImageReacquired, op,
			"static image cannot be acquired again")
	}

	// Track the runtime's view even after a violation so later calls
	// are judged against what actually happened.
	sc.imageStates[*index] = imageAcquired
	sc.acquired = append(sc.acquired, *index)
	return result
}

func (l *Layer) WaitSwapchainImage(swapchain xr.Swapchain, waitInfo *xr.SwapchainImageWaitInfo) xr.Result {
	const op = "xrWaitSwapchainImage"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}

	waitStart := l.now()
	result := l.rt.WaitSwapchainImage(swapchain, waitInfo)

	switch result {
	case xr.TimeoutExpired:
		if waitInfo == nil {
			break
		}
		if waitInfo.Timeout == xr.InfiniteDuration {
			l.rep.Error(diag.CodeBadResultForInputs, op,
				"timeout expired on an infinite timeout")
			break
		}
		elapsed := xr.Duration(l.now().Sub(waitStart).Nanoseconds())
		l.rep.NonconformantIf(elapsed < waitInfo.Timeout, diag.CodeTimeoutTooShort, op,
			"wait returned after %d ns, caller requested at least %d ns", elapsed, waitInfo.Timeout)

	case xr.Success:
		st, ok := l.lookup(op, swapchainKey(swapchain))
		if !ok {
			break
		}
		st.Lock()
		sc, ok := registry.Custom[*swapchainState](st)
		if !ok {
			st.Unlock()
			break
		}
		if len(sc.acquired) == 0 {
			l.rep.Error(diag.CodeWaitWithoutAcquire, op,
				"wait succeeded with no outstanding acquisition")
		} else if head := sc.acquired[0]; sc.imageStates[head] != imageAcquired {
			l.rep.Error(diag.CodeCallOrderInvalid, op,
				"wait succeeded for image %d in state %s", head, sc.imageStates[head])
		} else {
			sc.imageStates[head] = imageWaited
		}
		st.Unlock()
	}
	return result
}

func (l *Layer) ReleaseSwapchainImage(swapchain xr.Swapchain) xr.Result {
	const op = "xrReleaseSwapchainImage"
	if l.aborted() {
		return xr.ErrorValidationFailure
	}
	result := l.rt.ReleaseSwapchainImage(swapchain)
	if !result.Succeeded() {
		return result
	}

	st, ok := l.lookup(op, swapchainKey(swapchain))
	if !ok {
		return result
	}
	st.Lock()
	defer st.Unlock()
	sc, ok := registry.Custom[*swapchainState](st)
	if !ok {
		return result
	}

	if len(sc.acquired) == 0 {
		l.rep.Error(diag.CodeReleaseWithoutWait, op,
			"release succeeded with no outstanding acquisition")
		return result
	}
	head := sc.acquired[0]
	if sc.imageStates[head] != imageWaited {
		// The head was never waited on; leave it as is so the missing
		// wait stays visible to later calls.
		l.rep.Error(diag.CodeReleaseWithoutWait, op,
			"release succeeded for image %d in state %s", head, sc.imageStates[head])
		return result
	}
	sc.imageStates[head] = imageReleased
	sc.acquired = sc.acquired[1:]
	return result
}
