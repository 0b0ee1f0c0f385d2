// Package session owns all mutable per-session state: the signed-in
// user, the editable profile, the RSVP set, and the active overlay.
// Every workflow mutation goes through a method on Session so the TUI
// never touches shared state directly. Nothing here survives the
// process; persistence is deliberately out of scope.
package session

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"gradnet/internal/logging"
	"gradnet/internal/store"
)

var (
	// ErrEmptyCredentials is returned by Login when either field is blank.
	ErrEmptyCredentials = errors.New("email and password are required")
	// ErrMissingFields is returned by SignUp when a required field is blank.
	ErrMissingFields = errors.New("all sign-up fields are required")
	// ErrNotAuthenticated gates member-only workflows.
	ErrNotAuthenticated = errors.New("not signed in")
	// ErrEventPast rejects RSVPs for events that already happened.
	ErrEventPast = errors.New("event is not upcoming")
)

// Notifier is the toast surface. Calls are fire-and-forget; the session
// never consumes a return value from it.
type Notifier interface {
	Notify(title, description string)
}

// User is the manufactured session identity. It exists only while
// authenticated and is discarded on logout.
type User struct {
	ID       string
	Name     string
	Email    string
	GradYear string
	Major    string
}

// Profile is the editable dashboard profile. Edits overwrite in place.
type Profile struct {
	Name     string
	Email    string
	Phone    string
	GradYear string
	Major    string
	Company  string
	Title    string
	Bio      string
}

// SignUpForm carries the sign-up dialog fields.
type SignUpForm struct {
	Name     string
	Email    string
	Password string
	GradYear string
	Major    string
}

// Complete reports whether every required field is filled. The sign-up
// action stays disabled until this holds.
func (f SignUpForm) Complete() bool {
	return strings.TrimSpace(f.Name) != "" &&
		strings.TrimSpace(f.Email) != "" &&
		strings.TrimSpace(f.Password) != "" &&
		strings.TrimSpace(f.GradYear) != "" &&
		strings.TrimSpace(f.Major) != ""
}

// Overlay identifies the active modal. At most one is open at a time.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayLogin
	OverlaySignUp
	OverlayJobDetail
)

// Session is the central owned state object. Not safe for concurrent
// use; the TUI drives it from a single update loop.
type Session struct {
	user     *User
	profile  Profile
	rsvps    map[int]bool
	overlay  Overlay
	notifier Notifier
}

// New returns an anonymous session. notifier may be nil.
func New(notifier Notifier) *Session {
	return &Session{
		rsvps:    make(map[int]bool),
		notifier: notifier,
	}
}

func (s *Session) notify(title, description string) {
	if s.notifier != nil {
		s.notifier.Notify(title, description)
	}
}

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool {
	return s.user != nil
}

// User returns the current session identity, if any.
func (s *Session) User() (User, bool) {
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Profile returns the current editable profile.
func (s *Session) Profile() Profile {
	return s.profile
}

// =============================================================================
// AUTHENTICATION
// =============================================================================

// Login accepts any non-empty credential pair and manufactures a
// session identity. There is no real verification; the demo backend
// trusts the client. Closes the login overlay and emits a toast.
func (s *Session) Login(email, password string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return User{}, ErrEmptyCredentials
	}

	u := User{
		ID:    uuid.NewString(),
		Name:  nameFromEmail(email),
		Email: email,
	}
	s.user = &u
	s.profile = Profile{Name: u.Name, Email: u.Email}

	if s.overlay == OverlayLogin {
		s.overlay = OverlayNone
	}
	s.notify("Welcome back!", "You have successfully signed in.")
	logging.Session("login: %s", email)
	return u, nil
}

// SignUp creates a session identity from the form. Only non-emptiness
// is validated; uniqueness and format checks are out of scope.
func (s *Session) SignUp(form SignUpForm) (User, error) {
	if !form.Complete() {
		return User{}, ErrMissingFields
	}

	u := User{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(form.Name),
		Email:    strings.TrimSpace(form.Email),
		GradYear: strings.TrimSpace(form.GradYear),
		Major:    strings.TrimSpace(form.Major),
	}
	s.user = &u
	s.profile = Profile{
		Name:     u.Name,
		Email:    u.Email,
		GradYear: u.GradYear,
		Major:    u.Major,
	}

	if s.overlay == OverlaySignUp {
		s.overlay = OverlayNone
	}
	s.notify("Account created!", "Welcome to the alumni network.")
	logging.Session("signup: %s", u.Email)
	return u, nil
}

// Logout clears the session identity. The caller resets navigation to
// home; the RSVP set and profile die with the session object.
func (s *Session) Logout() {
	if s.user != nil {
		logging.Session("logout: %s", s.user.Email)
	}
	s.user = nil
}

// =============================================================================
// RSVP & MENTORSHIP WORKFLOWS
// =============================================================================

// RSVP confirms attendance for an upcoming event. Idempotent: an
// already-confirmed event is a silent no-op with no second toast.
func (s *Session) RSVP(ev store.Event) error {
	if s.user == nil {
		return ErrNotAuthenticated
	}
	if !ev.Upcoming {
		return ErrEventPast
	}
	if s.rsvps[ev.ID] {
		logging.SessionDebug("rsvp repeat ignored: event=%d", ev.ID)
		return nil
	}
	s.rsvps[ev.ID] = true
	s.notify("RSVP confirmed!", "You're registered for "+ev.Title+".")
	logging.Session("rsvp: event=%d %q", ev.ID, ev.Title)
	return nil
}

// HasRSVPed reports whether the event is in the session's RSVP set.
func (s *Session) HasRSVPed(eventID int) bool {
	return s.rsvps[eventID]
}

// RSVPCount returns the size of the RSVP set (dashboard stat).
func (s *Session) RSVPCount() int {
	return len(s.rsvps)
}

// RequestMentorship emits the confirmation toast. No message is
// actually delivered or persisted.
func (s *Session) RequestMentorship(personName string) {
	s.notify("Mentorship request sent!", personName+" will be in touch soon.")
	logging.Session("mentorship request: %s", personName)
}

// ApplyToJob emits the confirmation toast and closes the job detail
// overlay. No application record is created.
func (s *Session) ApplyToJob(title, company string) {
	if s.overlay == OverlayJobDetail {
		s.overlay = OverlayNone
	}
	s.notify("Application submitted!", "Your application for "+title+" at "+company+" was sent.")
	logging.Session("job application: %s at %s", title, company)
}

// UpdateProfile overwrites the profile unconditionally.
func (s *Session) UpdateProfile(p Profile) {
	s.profile = p
	s.notify("Profile updated!", "Your changes have been saved.")
	logging.Session("profile updated")
}

// =============================================================================
// OVERLAY COORDINATION
// =============================================================================

// OpenOverlay activates a modal, replacing any open one. A single
// tagged value makes two simultaneously open modals unrepresentable.
func (s *Session) OpenOverlay(o Overlay) {
	s.overlay = o
}

// CloseOverlay dismisses the active modal.
func (s *Session) CloseOverlay() {
	s.overlay = OverlayNone
}

// ActiveOverlay returns the open modal, or OverlayNone.
func (s *Session) ActiveOverlay() Overlay {
	return s.overlay
}

// nameFromEmail derives a display name from the email local part:
// "jane.doe@x.com" -> "Jane Doe".
func nameFromEmail(email string) string {
	local := email
	if i := strings.IndexByte(email, '@'); i > 0 {
		local = email[:i]
	}
	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "Alumni Member"
	}
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
