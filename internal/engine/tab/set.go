package tab

// Set is the ordered collection of open tabs.
// It always holds at least one tab and its active index is always valid.
type Set struct {
	tabs   []*Tab
	active int
}

// NewSet creates a set holding a single empty tab.
func NewSet() *Set {
	return &Set{tabs: []*Tab{New("")}}
}

// Len returns the number of tabs.
func (s *Set) Len() int {
	return len(s.tabs)
}

// Tabs returns the tabs in order. The slice must not be modified.
func (s *Set) Tabs() []*Tab {
	return s.tabs
}

// Active returns the active tab.
func (s *Set) Active() *Tab {
	return s.tabs[s.active]
}

// ActiveIndex returns the 0-based index of the active tab.
func (s *Set) ActiveIndex() int {
	return s.active
}

// At returns the tab at index i.
func (s *Set) At(i int) (*Tab, error) {
	if i < 0 || i >= len(s.tabs) {
		return nil, ErrIndexOutOfRange
	}
	return s.tabs[i], nil
}

// Add appends t and returns its index. The active tab does not change.
func (s *Set) Add(t *Tab) int {
	if t == nil {
		t = New("")
	}
	s.tabs = append(s.tabs, t)
	return len(s.tabs) - 1
}

// Open appends t and makes it active.
func (s *Set) Open(t *Tab) int {
	i := s.Add(t)
	s.active = i
	return i
}

// Activate makes the tab at index i active.
func (s *Set) Activate(i int) error {
	if i < 0 || i >= len(s.tabs) {
		return ErrIndexOutOfRange
	}
	s.active = i
	return nil
}

// Remove closes the tab at index i. Removing the only tab leaves a fresh
// empty tab in its place. The active tab stays the same when possible.
func (s *Set) Remove(i int) error {
	if i < 0 || i >= len(s.tabs) {
		return ErrIndexOutOfRange
	}

	s.tabs = append(s.tabs[:i], s.tabs[i+1:]...)

	switch {
	case len(s.tabs) == 0:
		s.tabs = []*Tab{New("")}
		s.active = 0
	case i < s.active:
		s.active--
	case s.active >= len(s.tabs):
		s.active = len(s.tabs) - 1
	}
	return nil
}

// Next activates the tab after the active one.
func (s *Set) Next() error {
	if s.active+1 >= len(s.tabs) {
		return ErrAlreadyLast
	}
	s.active++
	return nil
}

// Prev activates the tab before the active one.
func (s *Set) Prev() error {
	if s.active == 0 {
		return ErrAlreadyFirst
	}
	s.active--
	return nil
}

// Rename sets the displayed name of the tab at index i.
func (s *Set) Rename(i int, name string) error {
	t, err := s.At(i)
	if err != nil {
		return err
	}
	t.Name = name
	return nil
}

// FirstChanged returns the index of the first tab with unsaved changes,
// or -1 if every tab is clean.
func (s *Set) FirstChanged() int {
	for i, t := range s.tabs {
		if t.Changed {
			return i
		}
	}
	return -1
}

// AnyChanged reports whether any tab has unsaved changes.
func (s *Set) AnyChanged() bool {
	return s.FirstChanged() >= 0
}
