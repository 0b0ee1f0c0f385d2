package nav

import "testing"

// =============================================================================
// TRANSITION TOTALITY
// =============================================================================

func TestGo_EveryTransitionLandsOnValidView(t *testing.T) {
	t.Parallel()

	views := []View{ViewHome, ViewDirectory, ViewPersonDetail, ViewEvents,
		ViewEventDetail, ViewCareers, ViewDashboard}

	m := NewMachine(func() bool { return true })
	for _, from := range views {
		for _, to := range views {
			m.Go(from)
			got := m.Go(to)
			if !got.valid() {
				t.Errorf("transition %s -> %s landed on invalid view %d", from, to, got)
			}
		}
	}
}

func TestGo_UnknownViewNormalizesToHome(t *testing.T) {
	t.Parallel()
	m := NewMachine(nil)

	if got := m.Go(View(99)); got != ViewHome {
		t.Errorf("expected home for unknown view, got %s", got)
	}
	if got := m.Go(View(-1)); got != ViewHome {
		t.Errorf("expected home for negative view, got %s", got)
	}
}

func TestInitialViewIsHome(t *testing.T) {
	t.Parallel()
	m := NewMachine(nil)

	if m.Current() != ViewHome {
		t.Errorf("expected initial view home, got %s", m.Current())
	}
}

// =============================================================================
// DASHBOARD GUARD
// =============================================================================

func TestGo_DashboardUnauthenticatedRedirectsHome(t *testing.T) {
	t.Parallel()
	m := NewMachine(func() bool { return false })
	m.Go(ViewCareers)

	if got := m.Go(ViewDashboard); got != ViewHome {
		t.Errorf("expected redirect to home, got %s", got)
	}
	if m.Current() != ViewHome {
		t.Errorf("current view should be home after redirect, got %s", m.Current())
	}
}

func TestGo_DashboardAuthenticatedEnters(t *testing.T) {
	t.Parallel()
	authed := false
	m := NewMachine(func() bool { return authed })

	if got := m.Go(ViewDashboard); got != ViewHome {
		t.Fatalf("unauthenticated entry should land home, got %s", got)
	}

	authed = true
	if got := m.Go(ViewDashboard); got != ViewDashboard {
		t.Errorf("authenticated entry should land on dashboard, got %s", got)
	}
}

func TestNewMachine_NilGuardNeverAuthenticates(t *testing.T) {
	t.Parallel()
	m := NewMachine(nil)

	if got := m.Go(ViewDashboard); got != ViewHome {
		t.Errorf("nil guard should block dashboard, got %s", got)
	}
}

// =============================================================================
// SELECTION
// =============================================================================

func TestSelectPerson_RecordsSelectionAndEntersDetail(t *testing.T) {
	t.Parallel()
	m := NewMachine(nil)

	if got := m.SelectPerson(3); got != ViewPersonDetail {
		t.Fatalf("expected person-detail, got %s", got)
	}
	id, ok := m.SelectedPerson()
	if !ok || id != 3 {
		t.Errorf("expected selected person 3, got %d ok=%v", id, ok)
	}
}

func TestSelectEvent_RecordsSelectionAndEntersDetail(t *testing.T) {
	t.Parallel()
	m := NewMachine(nil)

	if got := m.SelectEvent(2); got != ViewEventDetail {
		t.Fatalf("expected event-detail, got %s", got)
	}
	id, ok := m.SelectedEvent()
	if !ok || id != 2 {
		t.Errorf("expected selected event 2, got %d ok=%v", id, ok)
	}
}

func TestDetailWithoutSelection_ReportsNoSelection(t *testing.T) {
	t.Parallel()
	m := NewMachine(nil)
	m.Go(ViewPersonDetail)

	if _, ok := m.SelectedPerson(); ok {
		t.Error("expected no person selection")
	}
	if _, ok := m.SelectedEvent(); ok {
		t.Error("expected no event selection")
	}
}

// =============================================================================
// RESET
// =============================================================================

func TestReset_ClearsSelectionAndReturnsHome(t *testing.T) {
	t.Parallel()
	m := NewMachine(func() bool { return true })
	m.SelectPerson(1)
	m.SelectEvent(2)
	m.Go(ViewDashboard)

	m.Reset()

	if m.Current() != ViewHome {
		t.Errorf("expected home after reset, got %s", m.Current())
	}
	if _, ok := m.SelectedPerson(); ok {
		t.Error("person selection should be cleared")
	}
	if _, ok := m.SelectedEvent(); ok {
		t.Error("event selection should be cleared")
	}
}
