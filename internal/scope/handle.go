package scope

// Handle is an optional scope manager. The zero value is None.
type Handle struct {
	m *Manager
}

// Some wraps m; a nil m yields None.
func Some(m *Manager) Handle { return Handle{m: m} }

// None is the absent handle.
func None() Handle { return Handle{} }

// Get returns the manager and whether it is present.
func (h Handle) Get() (*Manager, bool) { return h.m, h.m != nil }

func (h Handle) Present() bool { return h.m != nil }
