package typeinfo

// Registry holds the registered object shapes and assigns stable IDs that
// object headers embed. A single Registry is shared by every consumer of the
// same heap; it is not thread-safe.
type Registry struct {
	byName map[string]*Type
	byID   []*Type
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Type)}
}

// Register assigns t the next ID and indexes it by name. Registering a nil
// or already-registered type is a silent no-op; fields may still reference
// unregistered types and be patched later.
func (r *Registry) Register(t *Type) {
	if t == nil || t.registered {
		return
	}
	r.byID = append(r.byID, t)
	t.id = uint32(len(r.byID))
	t.registered = true
	if _, ok := r.byName[t.Name]; !ok {
		r.byName[t.Name] = t
	}
}

// Find returns the registered type with the given name, or nil.
func (r *Registry) Find(name string) *Type {
	return r.byName[name]
}

// ByID resolves a header type ID back to its Type, or nil for 0 and unknown
// IDs.
func (r *Registry) ByID(id uint32) *Type {
	if id == 0 || int(id) > len(r.byID) {
		return nil
	}
	return r.byID[id-1]
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.byID)
}
