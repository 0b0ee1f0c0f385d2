package session

import (
	"errors"
	"testing"

	"gradnet/internal/store"
)

// recordingNotifier captures toasts for assertions.
type recordingNotifier struct {
	toasts []string
}

func (n *recordingNotifier) Notify(title, description string) {
	n.toasts = append(n.toasts, title)
}

func upcomingEvent(id int) store.Event {
	return store.Event{ID: id, Title: "Networking Night", Upcoming: true}
}

// =============================================================================
// LOGIN / SIGNUP / LOGOUT
// =============================================================================

func TestLogin_AcceptsAnyNonEmptyCredentials(t *testing.T) {
	t.Parallel()
	n := &recordingNotifier{}
	s := New(n)
	s.OpenOverlay(OverlayLogin)

	u, err := s.Login("a@b.com", "x")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if u.Email != "a@b.com" {
		t.Errorf("expected email a@b.com, got %q", u.Email)
	}
	if u.ID == "" {
		t.Error("expected a manufactured session ID")
	}
	if !s.Authenticated() {
		t.Error("expected authenticated session")
	}
	if s.ActiveOverlay() != OverlayNone {
		t.Error("login overlay should close on success")
	}
	if len(n.toasts) != 1 || n.toasts[0] != "Welcome back!" {
		t.Errorf("expected a single welcome toast, got %v", n.toasts)
	}
}

func TestLogin_RejectsEmptyCredentials(t *testing.T) {
	t.Parallel()
	s := New(nil)

	cases := []struct{ email, password string }{
		{"", ""},
		{"a@b.com", ""},
		{"", "pw"},
		{"   ", "pw"},
	}
	for _, tc := range cases {
		if _, err := s.Login(tc.email, tc.password); !errors.Is(err, ErrEmptyCredentials) {
			t.Errorf("Login(%q, %q): expected ErrEmptyCredentials, got %v", tc.email, tc.password, err)
		}
	}
	if s.Authenticated() {
		t.Error("failed login must not create a session")
	}
}

func TestLogin_DerivesDisplayName(t *testing.T) {
	t.Parallel()
	s := New(nil)

	u, err := s.Login("jane.doe@example.com", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if u.Name != "Jane Doe" {
		t.Errorf("expected derived name %q, got %q", "Jane Doe", u.Name)
	}
}

func TestSignUp_RequiresAllFields(t *testing.T) {
	t.Parallel()
	s := New(nil)

	form := SignUpForm{
		Name:     "Alex Morgan",
		Email:    "alex@example.com",
		Password: "secret",
		GradYear: "2020",
		// Major intentionally missing.
	}
	if form.Complete() {
		t.Error("form missing major must not be submittable")
	}
	if _, err := s.SignUp(form); !errors.Is(err, ErrMissingFields) {
		t.Errorf("expected ErrMissingFields, got %v", err)
	}
	if s.Authenticated() {
		t.Error("failed sign-up must not create a session")
	}
}

func TestSignUp_CreatesSessionFromForm(t *testing.T) {
	t.Parallel()
	n := &recordingNotifier{}
	s := New(n)
	s.OpenOverlay(OverlaySignUp)

	form := SignUpForm{
		Name:     "Alex Morgan",
		Email:    "alex@example.com",
		Password: "secret",
		GradYear: "2020",
		Major:    "Economics",
	}
	u, err := s.SignUp(form)
	if err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}
	if u.Name != "Alex Morgan" || u.GradYear != "2020" || u.Major != "Economics" {
		t.Errorf("identity not built from form: %+v", u)
	}
	if s.ActiveOverlay() != OverlayNone {
		t.Error("sign-up overlay should close on success")
	}
	if p := s.Profile(); p.Name != "Alex Morgan" || p.Major != "Economics" {
		t.Errorf("profile not seeded from form: %+v", p)
	}
}

func TestLogout_ClearsUser(t *testing.T) {
	t.Parallel()
	s := New(nil)
	if _, err := s.Login("a@b.com", "x"); err != nil {
		t.Fatal(err)
	}

	s.Logout()

	if s.Authenticated() {
		t.Error("expected anonymous session after logout")
	}
	if _, ok := s.User(); ok {
		t.Error("User() must report absent after logout")
	}
}

// =============================================================================
// RSVP
// =============================================================================

func TestRSVP_RequiresAuthentication(t *testing.T) {
	t.Parallel()
	s := New(nil)

	err := s.RSVP(upcomingEvent(1))
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
	if s.HasRSVPed(1) || s.RSVPCount() != 0 {
		t.Error("rejected RSVP must not mutate the set")
	}
}

func TestRSVP_RejectsPastEvents(t *testing.T) {
	t.Parallel()
	s := New(nil)
	if _, err := s.Login("a@b.com", "x"); err != nil {
		t.Fatal(err)
	}

	past := store.Event{ID: 4, Title: "Tailgate", Upcoming: false}
	if err := s.RSVP(past); !errors.Is(err, ErrEventPast) {
		t.Errorf("expected ErrEventPast, got %v", err)
	}
	if s.HasRSVPed(4) {
		t.Error("past event must not enter the RSVP set")
	}
}

func TestRSVP_Idempotent(t *testing.T) {
	t.Parallel()
	n := &recordingNotifier{}
	s := New(n)
	if _, err := s.Login("a@b.com", "x"); err != nil {
		t.Fatal(err)
	}
	ev := upcomingEvent(2)

	if err := s.RSVP(ev); err != nil {
		t.Fatalf("first RSVP failed: %v", err)
	}
	if err := s.RSVP(ev); err != nil {
		t.Fatalf("repeat RSVP should be a no-op, got %v", err)
	}

	if s.RSVPCount() != 1 {
		t.Errorf("expected RSVP set of size 1, got %d", s.RSVPCount())
	}
	// One welcome toast + exactly one RSVP toast.
	rsvpToasts := 0
	for _, title := range n.toasts {
		if title == "RSVP confirmed!" {
			rsvpToasts++
		}
	}
	if rsvpToasts != 1 {
		t.Errorf("expected exactly one RSVP toast, got %d", rsvpToasts)
	}
}

// =============================================================================
// MENTORSHIP / JOBS / PROFILE
// =============================================================================

func TestRequestMentorship_EmitsToastOnly(t *testing.T) {
	t.Parallel()
	n := &recordingNotifier{}
	s := New(n)

	s.RequestMentorship("Sarah Chen")

	if len(n.toasts) != 1 || n.toasts[0] != "Mentorship request sent!" {
		t.Errorf("expected mentorship toast, got %v", n.toasts)
	}
}

func TestApplyToJob_ClosesJobOverlay(t *testing.T) {
	t.Parallel()
	n := &recordingNotifier{}
	s := New(n)
	s.OpenOverlay(OverlayJobDetail)

	s.ApplyToJob("Mechanical Engineer", "SpaceX")

	if s.ActiveOverlay() != OverlayNone {
		t.Error("job detail overlay should close after applying")
	}
	if len(n.toasts) != 1 || n.toasts[0] != "Application submitted!" {
		t.Errorf("expected application toast, got %v", n.toasts)
	}
}

func TestUpdateProfile_OverwritesInPlace(t *testing.T) {
	t.Parallel()
	s := New(nil)
	if _, err := s.Login("a@b.com", "x"); err != nil {
		t.Fatal(err)
	}

	p := Profile{Name: "New Name", Company: "Acme", Bio: "bio"}
	s.UpdateProfile(p)

	if got := s.Profile(); got != p {
		t.Errorf("profile not overwritten: %+v", got)
	}
}

// =============================================================================
// OVERLAYS
// =============================================================================

func TestOverlay_AtMostOneOpen(t *testing.T) {
	t.Parallel()
	s := New(nil)

	s.OpenOverlay(OverlayLogin)
	s.OpenOverlay(OverlaySignUp)

	if s.ActiveOverlay() != OverlaySignUp {
		t.Errorf("expected sign-up overlay active, got %d", s.ActiveOverlay())
	}

	s.CloseOverlay()
	if s.ActiveOverlay() != OverlayNone {
		t.Error("expected no overlay after close")
	}
}

func TestNilNotifierIsSafe(t *testing.T) {
	t.Parallel()
	s := New(nil)
	if _, err := s.Login("a@b.com", "x"); err != nil {
		t.Fatal(err)
	}
	s.RequestMentorship("Anyone")
	s.ApplyToJob("Role", "Co")
	s.UpdateProfile(Profile{})
	// Reaching here without a panic is the assertion.
}
