// Package nav implements the page navigation state machine. Exactly one
// View is active at a time; transitions are explicit and there is no
// history stack - "back" is a transition to the parent list view.
package nav

import "gradnet/internal/logging"

// View identifies a top-level page.
type View int

const (
	ViewHome View = iota
	ViewDirectory
	ViewPersonDetail
	ViewEvents
	ViewEventDetail
	ViewCareers
	ViewDashboard
)

// String returns the page identifier used in logs.
func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewDirectory:
		return "directory"
	case ViewPersonDetail:
		return "person-detail"
	case ViewEvents:
		return "events"
	case ViewEventDetail:
		return "event-detail"
	case ViewCareers:
		return "careers"
	case ViewDashboard:
		return "dashboard"
	default:
		return "home"
	}
}

// valid reports whether v is one of the enumerated views.
func (v View) valid() bool {
	return v >= ViewHome && v <= ViewDashboard
}

// Machine tracks the current view and the selected detail entities.
// The dashboard is the only guarded view: entering it without an
// authenticated session lands on home instead.
type Machine struct {
	current       View
	authenticated func() bool

	selectedPerson int
	hasPerson      bool
	selectedEvent  int
	hasEvent       bool
}

// NewMachine returns a machine on the home view. authenticated gates
// the dashboard; a nil func means never authenticated.
func NewMachine(authenticated func() bool) *Machine {
	if authenticated == nil {
		authenticated = func() bool { return false }
	}
	return &Machine{current: ViewHome, authenticated: authenticated}
}

// Current returns the active view. Always a valid enumerated value.
func (m *Machine) Current() View {
	if !m.current.valid() {
		return ViewHome
	}
	return m.current
}

// Go transitions to the given view. Unknown values normalize to home;
// an unauthenticated dashboard entry redirects to home.
func (m *Machine) Go(v View) View {
	if !v.valid() {
		v = ViewHome
	}
	if v == ViewDashboard && !m.authenticated() {
		logging.Nav("dashboard blocked: unauthenticated, redirecting home")
		v = ViewHome
	}
	logging.Nav("transition %s -> %s", m.current, v)
	m.current = v
	return m.current
}

// SelectPerson records the selected directory entry and enters the
// person detail view.
func (m *Machine) SelectPerson(id int) View {
	m.selectedPerson = id
	m.hasPerson = true
	return m.Go(ViewPersonDetail)
}

// SelectEvent records the selected event and enters the event detail view.
func (m *Machine) SelectEvent(id int) View {
	m.selectedEvent = id
	m.hasEvent = true
	return m.Go(ViewEventDetail)
}

// SelectedPerson returns the selected person ID, if any. Detail views
// entered without a selection render a not-found placeholder.
func (m *Machine) SelectedPerson() (int, bool) {
	return m.selectedPerson, m.hasPerson
}

// SelectedEvent returns the selected event ID, if any.
func (m *Machine) SelectedEvent() (int, bool) {
	return m.selectedEvent, m.hasEvent
}

// Reset clears selections and forces the home view. Used on logout.
func (m *Machine) Reset() {
	m.hasPerson = false
	m.hasEvent = false
	m.selectedPerson = 0
	m.selectedEvent = 0
	m.current = ViewHome
	logging.Nav("reset to home")
}
