package ecs

// Registry tracks the stores that hold per-entity data so a destroyed
// handle can be dropped from all of them at once.
type Registry struct {
	stores []Removable
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Removable, 0, 4),
	}
}

// Register adds a store. Registering the same store twice is harmless.
func (r *Registry) Register(store Removable) {
	for _, s := range r.stores {
		if s == store {
			return
		}
	}
	r.stores = append(r.stores, store)
}

// RemoveAll clears the given entity from every registered store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}
