package locale

// Store is the persisted locale attribute shared across mounts, e.g. a
// cookie or the document's lang attribute.
type Store interface {
	Get() (string, bool)
	Set(value string)
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	value  string
	set    bool
	writes int
}

// NewMemoryStore returns a store pre-populated with value when non-empty.
func NewMemoryStore(value string) *MemoryStore {
	return &MemoryStore{value: value, set: value != ""}
}

func (m *MemoryStore) Get() (string, bool) { return m.value, m.set }

func (m *MemoryStore) Set(value string) {
	m.value = value
	m.set = true
	m.writes++
}

// Writes counts Set calls.
func (m *MemoryStore) Writes() int { return m.writes }

// State is the observable resolver state.
type State int

const (
	Unselected State = iota
	Resolved
)

func (s State) String() string {
	if s == Resolved {
		return "resolved"
	}
	return "unselected"
}

// Selection reconciles the route locale, the persisted attribute and
// explicit user choice into a single current locale. A Selection lives for
// one mount and is not safe for concurrent use.
type Selection struct {
	store     Store
	fallback  Locale
	observers []func(Locale)

	current Locale
	state   State
}

// SelectionOption customises a Selection.
type SelectionOption func(*Selection)

// WithFallback sets the locale used when neither the route nor the store
// yields a supported value. Unsupported values are ignored.
func WithFallback(l Locale) SelectionOption {
	return func(s *Selection) {
		if l.Valid() {
			s.fallback = l
		}
	}
}

// WithObserver registers fn to run whenever the current locale changes.
func WithObserver(fn func(Locale)) SelectionOption {
	return func(s *Selection) {
		if fn != nil {
			s.observers = append(s.observers, fn)
		}
	}
}

// NewSelection creates an unselected Selection backed by store. A nil store
// behaves as an always-empty attribute.
func NewSelection(store Store, opts ...SelectionOption) *Selection {
	s := &Selection{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mount resolves the initial locale. The route locale wins; the store is
// consulted only when the route does not match; the fallback applies last.
func (s *Selection) Mount(route string) (Locale, bool) {
	if l, ok := Parse(route); ok {
		s.land(l)
		return s.Current()
	}
	if s.store != nil {
		if raw, ok := s.store.Get(); ok {
			if l, ok := Parse(raw); ok {
				s.land(l)
				return s.Current()
			}
		}
	}
	if s.fallback != "" {
		s.land(s.fallback)
	}
	return s.Current()
}

// Select applies an explicit user choice. Unsupported values leave the
// state untouched.
func (s *Selection) Select(l Locale) bool {
	if !l.Valid() {
		return false
	}
	s.land(l)
	return true
}

// SelectTag is Select for raw identifiers, e.g. a query parameter.
func (s *Selection) SelectTag(raw string) bool {
	l, ok := Parse(raw)
	if !ok {
		return false
	}
	return s.Select(l)
}

// Current returns the resolved locale, if any.
func (s *Selection) Current() (Locale, bool) {
	if s.state != Resolved {
		return "", false
	}
	return s.current, true
}

// State reports whether a locale has been resolved.
func (s *Selection) State() State { return s.state }

// Unmount discards the selection. The persisted attribute is left as is.
func (s *Selection) Unmount() {
	s.current = ""
	s.state = Unselected
}

func (s *Selection) land(l Locale) {
	changed := s.state != Resolved || s.current != l
	s.current = l
	s.state = Resolved
	s.persist(l)
	if !changed {
		return
	}
	for _, fn := range s.observers {
		fn(l)
	}
}

func (s *Selection) persist(l Locale) {
	if s.store == nil {
		return
	}
	if v, ok := s.store.Get(); ok && v == string(l) {
		return
	}
	s.store.Set(string(l))
}
