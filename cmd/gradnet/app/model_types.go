package app

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/glamour"

	"gradnet/cmd/gradnet/ui"
	"gradnet/internal/assistant"
	"gradnet/internal/nav"
	"gradnet/internal/session"
	"gradnet/internal/store"
)

const (
	toastDuration  = 3 * time.Second
	bannerInterval = 5 * time.Second
)

// Focus determines which component receives keystrokes.
type Focus int

const (
	FocusBrowse  Focus = iota // page navigation and list movement
	FocusSearch               // free-text filter input
	FocusOverlay              // modal form fields
	FocusChat                 // assistant input
	FocusProfile              // dashboard profile editor
)

// Login form field order.
const (
	loginFieldEmail = iota
	loginFieldPassword
	loginFieldCount
)

// Sign-up form field order. All five are required.
const (
	signUpFieldName = iota
	signUpFieldEmail
	signUpFieldPassword
	signUpFieldGradYear
	signUpFieldMajor
	signUpFieldCount
)

// Profile editor field order.
const (
	profileFieldName = iota
	profileFieldEmail
	profileFieldPhone
	profileFieldGradYear
	profileFieldMajor
	profileFieldCompany
	profileFieldTitle
	profileFieldBio
	profileFieldCount
)

// Directory discrete filter order for tab cycling.
const (
	dirFilterYear = iota
	dirFilterMajor
	dirFilterIndustry
	dirFilterCount
)

// homeBanners rotate on the home page.
var homeBanners = []string{
	"Welcome back to the alumni network.",
	"Annual Alumni Gala - October 17th. RSVP on the events page.",
	"Four open roles on the careers board this week.",
	"Looking for a mentor? Browse the directory for available alumni.",
}

// toast is a transient notification.
type toast struct {
	seq         int
	title       string
	description string
}

// toastQueue collects toasts emitted by session workflows. It
// satisfies session.Notifier; the model shares a pointer to it so
// notifications raised inside an Update call land in the same queue
// the view reads.
type toastQueue struct {
	seq   int
	items []toast
}

func (q *toastQueue) Notify(title, description string) {
	q.seq++
	q.items = append(q.items, toast{seq: q.seq, title: title, description: description})
}

func (q *toastQueue) expire(seq int) {
	kept := q.items[:0]
	for _, t := range q.items {
		if t.seq != seq {
			kept = append(kept, t)
		}
	}
	q.items = kept
}

// Model is the main model for the gradnet TUI.
type Model struct {
	styles   ui.Styles
	renderer *glamour.TermRenderer

	db     *store.Store
	nav    *nav.Machine
	sess   *session.Session
	chat   *assistant.Session
	toasts *toastQueue

	// Widgets
	spinner      spinner.Model
	peopleSearch textinput.Model
	jobSearch    textinput.Model
	chatInput    textinput.Model

	// Directory filter state: indices into the option slices.
	years      []string
	majors     []string
	industries []string
	jobTypes   []string
	yearIdx     int
	majorIdx    int
	industryIdx int
	typeIdx     int
	dirFilter   int // which discrete filter left/right adjusts

	// List cursors
	dirCursor   int
	eventCursor int
	jobCursor   int

	// Selected job posting for the detail overlay.
	selectedJob int
	hasJob      bool

	// Modal form state
	overlayInputs []textinput.Model
	overlayFocus  int

	// Profile editor state
	profileInputs []textinput.Model
	profileFocus  int

	focus    Focus
	chatOpen bool

	bannerIndex    int
	scheduledToast int // highest toast seq with an expiry timer

	width  int
	height int
	ready  bool
}

// Messages for tea updates
type (
	// assistantReplyMsg signals that a chat exchange resolved; the
	// transcript is re-read from the assistant session.
	assistantReplyMsg struct{}

	// toastExpiredMsg removes a toast after its display window.
	toastExpiredMsg struct{ seq int }

	// bannerTickMsg advances the rotating home banner.
	bannerTickMsg struct{}
)
