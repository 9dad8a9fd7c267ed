package listview

// SelectionPolicy controls what the header "select all" checkbox does
// to rows selected on other pages. Whether selection should survive
// pagination at all is a product question, so both behaviours are kept
// and the caller picks one.
type SelectionPolicy int

const (
	// SelectPerPage unions the current page's ids in on check and
	// removes exactly those ids on uncheck. Selections made on other
	// pages survive.
	SelectPerPage SelectionPolicy = iota

	// SelectReplace replaces the whole selection with the current
	// page's ids on check and clears everything on uncheck.
	SelectReplace
)

// Selection tracks selected record ids across page views. It is
// independent of filter and pagination state: paging never clears it.
type Selection struct {
	policy SelectionPolicy
	ids    map[string]struct{}
}

func NewSelection(policy SelectionPolicy) *Selection {
	return &Selection{policy: policy, ids: make(map[string]struct{})}
}

// ToggleOne adds or removes a single row id.
func (s *Selection) ToggleOne(id string, checked bool) {
	if checked {
		s.ids[id] = struct{}{}
	} else {
		delete(s.ids, id)
	}
}

// ToggleAllOnPage applies the header checkbox to the ids of the
// currently visible page rows, per the configured policy.
func (s *Selection) ToggleAllOnPage(pageIDs []string, checked bool) {
	switch s.policy {
	case SelectReplace:
		s.ids = make(map[string]struct{})
		if checked {
			for _, id := range pageIDs {
				s.ids[id] = struct{}{}
			}
		}
	default: // SelectPerPage
		for _, id := range pageIDs {
			if checked {
				s.ids[id] = struct{}{}
			} else {
				delete(s.ids, id)
			}
		}
	}
}

// Contains reports whether a row id is selected.
func (s *Selection) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// AllOnPageSelected reports whether the header checkbox should render
// checked: the page has rows and every one of them is selected.
func (s *Selection) AllOnPageSelected(pageIDs []string) bool {
	if len(pageIDs) == 0 {
		return false
	}
	for _, id := range pageIDs {
		if !s.Contains(id) {
			return false
		}
	}
	return true
}

// IDs returns the selected ids. Order is unspecified.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}

// Len returns the selection size; bulk actions are offered only when
// this is non-zero.
func (s *Selection) Len() int {
	return len(s.ids)
}

// Clear empties the selection. Used after a bulk action completes.
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}
