// Package app implements the gradnet TUI: a single Bubble Tea model
// routing between the network's pages, with modal auth forms, toast
// notifications, and the assistant chat panel.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"gradnet/cmd/gradnet/ui"
	"gradnet/internal/assistant"
	"gradnet/internal/logging"
	"gradnet/internal/nav"
	"gradnet/internal/query"
	"gradnet/internal/session"
	"gradnet/internal/store"
)

// New builds the TUI model. gen is the assistant backend; pass a
// keyless client and every chat exchange degrades to the fallback
// reply rather than failing.
func New(db *store.Store, gen assistant.Generator, styles ui.Styles) Model {
	toasts := &toastQueue{}
	sess := session.New(toasts)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	peopleSearch := textinput.New()
	peopleSearch.Placeholder = "Search name, company, or title"
	peopleSearch.CharLimit = 64

	jobSearch := textinput.New()
	jobSearch.Placeholder = "Search title, company, or location"
	jobSearch.CharLimit = 64

	chatInput := textinput.New()
	chatInput.Placeholder = "Ask the assistant anything"
	chatInput.CharLimit = 500

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		logging.UI("glamour renderer unavailable: %v", err)
		renderer = nil
	}

	m := Model{
		styles:       styles,
		renderer:     renderer,
		db:           db,
		sess:         sess,
		chat:         assistant.NewSession(gen),
		toasts:       toasts,
		spinner:      sp,
		peopleSearch: peopleSearch,
		jobSearch:    jobSearch,
		chatInput:    chatInput,
		years:        query.Years(db.People),
		majors:       query.Majors(db.People),
		industries:   query.Industries(db.People),
		jobTypes:     query.JobTypes(db.Jobs),
	}
	m.nav = nav.NewMachine(sess.Authenticated)
	return m
}

// Init starts the spinner and the home banner rotation.
func (m Model) Init() tea.Cmd {
	logging.UI("tui starting")
	return tea.Batch(m.spinner.Tick, bannerTick())
}

func bannerTick() tea.Cmd {
	return tea.Tick(bannerInterval, func(time.Time) tea.Msg {
		return bannerTickMsg{}
	})
}

// sendChatCmd issues one assistant exchange off the update loop. The
// session absorbs failures into the fallback reply, so the command
// always resolves to a transcript refresh.
func (m Model) sendChatCmd(text string) tea.Cmd {
	chat := m.chat
	return func() tea.Msg {
		_ = chat.Send(context.Background(), text)
		return assistantReplyMsg{}
	}
}

// scheduleToastExpiry returns expiry timers for toasts that do not
// have one yet.
func (m *Model) scheduleToastExpiry() tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range m.toasts.items {
		if t.seq <= m.scheduledToast {
			continue
		}
		seq := t.seq
		cmds = append(cmds, tea.Tick(toastDuration, func(time.Time) tea.Msg {
			return toastExpiredMsg{seq: seq}
		}))
	}
	m.scheduledToast = m.toasts.seq
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// filteredPeople applies the directory filter controls.
func (m Model) filteredPeople() []store.Person {
	return query.FilterPeople(
		m.db.People,
		m.peopleSearch.Value(),
		m.years[m.yearIdx],
		m.majors[m.majorIdx],
		m.industries[m.industryIdx],
	)
}

// filteredJobs applies the careers filter controls.
func (m Model) filteredJobs() []store.JobPosting {
	return query.FilterJobs(m.db.Jobs, m.jobSearch.Value(), m.jobTypes[m.typeIdx])
}

// openLoginOverlay builds the two-field login form.
func (m *Model) openLoginOverlay() {
	m.sess.OpenOverlay(session.OverlayLogin)
	m.overlayInputs = make([]textinput.Model, loginFieldCount)
	for i := range m.overlayInputs {
		m.overlayInputs[i] = textinput.New()
		m.overlayInputs[i].CharLimit = 64
	}
	m.overlayInputs[loginFieldEmail].Placeholder = "Email"
	m.overlayInputs[loginFieldPassword].Placeholder = "Password"
	m.overlayInputs[loginFieldPassword].EchoMode = textinput.EchoPassword
	m.overlayFocus = 0
	m.overlayInputs[0].Focus()
	m.focus = FocusOverlay
}

// openSignUpOverlay builds the five-field sign-up form.
func (m *Model) openSignUpOverlay() {
	m.sess.OpenOverlay(session.OverlaySignUp)
	m.overlayInputs = make([]textinput.Model, signUpFieldCount)
	for i := range m.overlayInputs {
		m.overlayInputs[i] = textinput.New()
		m.overlayInputs[i].CharLimit = 64
	}
	m.overlayInputs[signUpFieldName].Placeholder = "Full name"
	m.overlayInputs[signUpFieldEmail].Placeholder = "Email"
	m.overlayInputs[signUpFieldPassword].Placeholder = "Password"
	m.overlayInputs[signUpFieldPassword].EchoMode = textinput.EchoPassword
	m.overlayInputs[signUpFieldGradYear].Placeholder = "Graduation year"
	m.overlayInputs[signUpFieldMajor].Placeholder = "Major"
	m.overlayFocus = 0
	m.overlayInputs[0].Focus()
	m.focus = FocusOverlay
}

// openProfileEditor seeds the dashboard editor from the current profile.
func (m *Model) openProfileEditor() {
	p := m.sess.Profile()
	values := []string{p.Name, p.Email, p.Phone, p.GradYear, p.Major, p.Company, p.Title, p.Bio}
	placeholders := []string{"Name", "Email", "Phone", "Graduation year", "Major", "Company", "Title", "Bio"}

	m.profileInputs = make([]textinput.Model, profileFieldCount)
	for i := range m.profileInputs {
		m.profileInputs[i] = textinput.New()
		m.profileInputs[i].CharLimit = 200
		m.profileInputs[i].Placeholder = placeholders[i]
		m.profileInputs[i].SetValue(values[i])
	}
	m.profileFocus = 0
	m.profileInputs[0].Focus()
	m.focus = FocusProfile
}

// closeOverlay dismisses the modal and returns focus to the page.
func (m *Model) closeOverlay() {
	m.sess.CloseOverlay()
	m.overlayInputs = nil
	m.overlayFocus = 0
	m.hasJob = false
	m.focus = FocusBrowse
}

// signUpForm assembles the form from the overlay inputs.
func (m Model) signUpForm() session.SignUpForm {
	return session.SignUpForm{
		Name:     m.overlayInputs[signUpFieldName].Value(),
		Email:    m.overlayInputs[signUpFieldEmail].Value(),
		Password: m.overlayInputs[signUpFieldPassword].Value(),
		GradYear: m.overlayInputs[signUpFieldGradYear].Value(),
		Major:    m.overlayInputs[signUpFieldMajor].Value(),
	}
}

// profileFromInputs assembles the profile from the editor fields.
func (m Model) profileFromInputs() session.Profile {
	return session.Profile{
		Name:     m.profileInputs[profileFieldName].Value(),
		Email:    m.profileInputs[profileFieldEmail].Value(),
		Phone:    m.profileInputs[profileFieldPhone].Value(),
		GradYear: m.profileInputs[profileFieldGradYear].Value(),
		Major:    m.profileInputs[profileFieldMajor].Value(),
		Company:  m.profileInputs[profileFieldCompany].Value(),
		Title:    m.profileInputs[profileFieldTitle].Value(),
		Bio:      m.profileInputs[profileFieldBio].Value(),
	}
}

// clampCursor keeps a list cursor inside the filtered result set.
func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}
