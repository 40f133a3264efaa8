package rc

// WeakRef observes an object without owning it. Once the target's strong
// count reaches zero the ref detaches permanently; it never re-attaches,
// even if the handle value is later seen again.
type WeakRef struct {
	obj *object
}

// WeakNew creates a weak reference to h, or nil when h is not a live
// object. Weak references created from a stale handle are born detached.
func (c *Counter) WeakNew(h Handle) *WeakRef {
	o := c.objects[h]
	if o == nil {
		return nil
	}
	o.weak++
	return &WeakRef{obj: o}
}

// WeakRelease drops the weak count and detaches w. Safe on nil and
// already-released refs.
func (c *Counter) WeakRelease(w *WeakRef) {
	if w == nil || w.obj == nil {
		return
	}
	w.obj.weak--
	w.obj = nil
}

// Lock returns the target handle while the object is alive. The first call
// after the strong count hit zero detaches w for good.
func (w *WeakRef) Lock() (Handle, bool) {
	if w == nil || w.obj == nil {
		return 0, false
	}
	if w.obj.strong > 0 {
		return w.obj.handle, true
	}
	w.obj = nil
	return 0, false
}
