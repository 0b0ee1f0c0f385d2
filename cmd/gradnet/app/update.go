package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"gradnet/internal/logging"
	"gradnet/internal/nav"
	"gradnet/internal/session"
)

// Update is the single event loop. Keystrokes route by focus first
// (modal forms and text inputs swallow most keys), then by page.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case bannerTickMsg:
		m.bannerIndex = (m.bannerIndex + 1) % len(homeBanners)
		return m, bannerTick()

	case toastExpiredMsg:
		m.toasts.expire(msg.seq)
		return m, nil

	case assistantReplyMsg:
		// Transcript lives in the assistant session; nothing to copy.
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		logging.UI("tui quitting")
		return m, tea.Quit
	}

	switch m.focus {
	case FocusOverlay:
		return m.handleOverlayKey(msg)
	case FocusSearch:
		return m.handleSearchKey(msg)
	case FocusChat:
		return m.handleChatKey(msg)
	case FocusProfile:
		return m.handleProfileKey(msg)
	}
	return m.handleBrowseKey(msg)
}

// =============================================================================
// BROWSE MODE
// =============================================================================

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		logging.UI("tui quitting")
		return m, tea.Quit

	case "1":
		m.nav.Go(nav.ViewHome)
		return m, nil
	case "2":
		m.nav.Go(nav.ViewDirectory)
		return m, nil
	case "3":
		m.nav.Go(nav.ViewEvents)
		return m, nil
	case "4":
		m.nav.Go(nav.ViewCareers)
		return m, nil
	case "5":
		// Guarded: the machine redirects home when unauthenticated.
		if m.nav.Go(nav.ViewDashboard) != nav.ViewDashboard {
			m.toasts.Notify("Sign in required", "Log in to see your dashboard.")
			return m, m.scheduleToastExpiry()
		}
		return m, nil

	case "c":
		m.chatOpen = true
		m.focus = FocusChat
		m.chatInput.Focus()
		return m, nil

	case "l":
		if !m.sess.Authenticated() {
			m.openLoginOverlay()
		}
		return m, nil
	case "s":
		if !m.sess.Authenticated() {
			m.openSignUpOverlay()
		}
		return m, nil
	case "o":
		if m.sess.Authenticated() {
			m.sess.Logout()
			m.nav.Reset()
			m.toasts.Notify("Signed out", "See you next time.")
			return m, m.scheduleToastExpiry()
		}
		return m, nil

	case "esc":
		return m.handleBack()

	case "/":
		switch m.nav.Current() {
		case nav.ViewDirectory:
			m.focus = FocusSearch
			m.peopleSearch.Focus()
		case nav.ViewCareers:
			m.focus = FocusSearch
			m.jobSearch.Focus()
		}
		return m, nil

	case "tab":
		if m.nav.Current() == nav.ViewDirectory {
			m.dirFilter = (m.dirFilter + 1) % dirFilterCount
		}
		return m, nil

	case "left", "right":
		return m.adjustFilter(msg.String() == "right"), nil

	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil

	case "enter":
		return m.handleSelect()

	case "r":
		if m.nav.Current() == nav.ViewEventDetail {
			return m.handleRSVP()
		}
		return m, nil

	case "m":
		if m.nav.Current() == nav.ViewPersonDetail {
			return m.handleMentorship()
		}
		return m, nil

	case "e":
		if m.nav.Current() == nav.ViewDashboard && m.sess.Authenticated() {
			m.openProfileEditor()
		}
		return m, nil
	}

	return m, nil
}

// handleBack is the esc transition: detail pages return to their
// parent list; the chat panel closes; lists are a no-op.
func (m Model) handleBack() (tea.Model, tea.Cmd) {
	switch m.nav.Current() {
	case nav.ViewPersonDetail:
		m.nav.Go(nav.ViewDirectory)
	case nav.ViewEventDetail:
		m.nav.Go(nav.ViewEvents)
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	switch m.nav.Current() {
	case nav.ViewDirectory:
		m.dirCursor = clampCursor(m.dirCursor+delta, len(m.filteredPeople()))
	case nav.ViewEvents:
		m.eventCursor = clampCursor(m.eventCursor+delta, len(m.db.Events))
	case nav.ViewCareers:
		m.jobCursor = clampCursor(m.jobCursor+delta, len(m.filteredJobs()))
	}
}

// adjustFilter moves the focused discrete filter through its options.
func (m Model) adjustFilter(forward bool) Model {
	step := func(idx, length int) int {
		if length == 0 {
			return 0
		}
		if forward {
			return (idx + 1) % length
		}
		return (idx - 1 + length) % length
	}

	switch m.nav.Current() {
	case nav.ViewDirectory:
		switch m.dirFilter {
		case dirFilterYear:
			m.yearIdx = step(m.yearIdx, len(m.years))
		case dirFilterMajor:
			m.majorIdx = step(m.majorIdx, len(m.majors))
		case dirFilterIndustry:
			m.industryIdx = step(m.industryIdx, len(m.industries))
		}
		m.dirCursor = clampCursor(m.dirCursor, len(m.filteredPeople()))
	case nav.ViewCareers:
		m.typeIdx = step(m.typeIdx, len(m.jobTypes))
		m.jobCursor = clampCursor(m.jobCursor, len(m.filteredJobs()))
	}
	return m
}

// handleSelect is the enter action on list pages.
func (m Model) handleSelect() (tea.Model, tea.Cmd) {
	switch m.nav.Current() {
	case nav.ViewDirectory:
		people := m.filteredPeople()
		if len(people) == 0 {
			return m, nil
		}
		m.nav.SelectPerson(people[clampCursor(m.dirCursor, len(people))].ID)

	case nav.ViewEvents:
		if len(m.db.Events) == 0 {
			return m, nil
		}
		m.nav.SelectEvent(m.db.Events[clampCursor(m.eventCursor, len(m.db.Events))].ID)

	case nav.ViewCareers:
		jobs := m.filteredJobs()
		if len(jobs) == 0 {
			return m, nil
		}
		m.selectedJob = jobs[clampCursor(m.jobCursor, len(jobs))].ID
		m.hasJob = true
		m.sess.OpenOverlay(session.OverlayJobDetail)
		m.focus = FocusOverlay
	}
	return m, nil
}

func (m Model) handleRSVP() (tea.Model, tea.Cmd) {
	id, ok := m.nav.SelectedEvent()
	if !ok {
		return m, nil
	}
	ev, ok := m.db.EventByID(id)
	if !ok {
		return m, nil
	}

	switch err := m.sess.RSVP(ev); err {
	case nil:
		return m, m.scheduleToastExpiry()
	case session.ErrNotAuthenticated:
		m.toasts.Notify("Sign in required", "Log in to RSVP for events.")
		return m, m.scheduleToastExpiry()
	case session.ErrEventPast:
		m.toasts.Notify("Event has ended", "This event already took place.")
		return m, m.scheduleToastExpiry()
	}
	return m, nil
}

func (m Model) handleMentorship() (tea.Model, tea.Cmd) {
	id, ok := m.nav.SelectedPerson()
	if !ok {
		return m, nil
	}
	p, ok := m.db.PersonByID(id)
	if !ok || !p.AvailableForMentoring {
		return m, nil
	}
	m.sess.RequestMentorship(p.Name)
	return m, m.scheduleToastExpiry()
}

// =============================================================================
// SEARCH MODE
// =============================================================================

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.focus = FocusBrowse
		m.peopleSearch.Blur()
		m.jobSearch.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.nav.Current() {
	case nav.ViewCareers:
		m.jobSearch, cmd = m.jobSearch.Update(msg)
		m.jobCursor = clampCursor(m.jobCursor, len(m.filteredJobs()))
	default:
		m.peopleSearch, cmd = m.peopleSearch.Update(msg)
		m.dirCursor = clampCursor(m.dirCursor, len(m.filteredPeople()))
	}
	return m, cmd
}

// =============================================================================
// OVERLAY MODE
// =============================================================================

func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	overlay := m.sess.ActiveOverlay()

	switch msg.String() {
	case "esc":
		m.closeOverlay()
		return m, nil

	case "tab", "shift+tab", "up", "down":
		if len(m.overlayInputs) == 0 {
			return m, nil
		}
		delta := 1
		if msg.String() == "shift+tab" || msg.String() == "up" {
			delta = -1
		}
		m.overlayInputs[m.overlayFocus].Blur()
		m.overlayFocus = (m.overlayFocus + delta + len(m.overlayInputs)) % len(m.overlayInputs)
		m.overlayInputs[m.overlayFocus].Focus()
		return m, nil

	case "enter":
		return m.submitOverlay(overlay)
	}

	if overlay == session.OverlayJobDetail {
		if msg.String() == "a" {
			return m.submitOverlay(overlay)
		}
		return m, nil
	}

	if len(m.overlayInputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.overlayInputs[m.overlayFocus], cmd = m.overlayInputs[m.overlayFocus].Update(msg)
	return m, cmd
}

func (m Model) submitOverlay(overlay session.Overlay) (tea.Model, tea.Cmd) {
	switch overlay {
	case session.OverlayLogin:
		email := m.overlayInputs[loginFieldEmail].Value()
		password := m.overlayInputs[loginFieldPassword].Value()
		if _, err := m.sess.Login(email, password); err != nil {
			m.toasts.Notify("Sign in failed", "Email and password are both required.")
			return m, m.scheduleToastExpiry()
		}
		m.overlayInputs = nil
		m.focus = FocusBrowse
		return m, m.scheduleToastExpiry()

	case session.OverlaySignUp:
		form := m.signUpForm()
		if _, err := m.sess.SignUp(form); err != nil {
			m.toasts.Notify("Missing information", "All five fields are required.")
			return m, m.scheduleToastExpiry()
		}
		m.overlayInputs = nil
		m.focus = FocusBrowse
		m.nav.Go(nav.ViewHome)
		return m, m.scheduleToastExpiry()

	case session.OverlayJobDetail:
		if job, ok := m.db.JobByID(m.selectedJob); ok {
			m.sess.ApplyToJob(job.Title, job.Company)
		}
		m.hasJob = false
		m.focus = FocusBrowse
		return m, m.scheduleToastExpiry()
	}
	return m, nil
}

// =============================================================================
// CHAT MODE
// =============================================================================

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.chatOpen = false
		m.focus = FocusBrowse
		m.chatInput.Blur()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.chatInput.Value())
		if text == "" {
			return m, nil
		}
		if m.chat.Busy() {
			m.toasts.Notify("One moment", "The assistant is still replying.")
			return m, m.scheduleToastExpiry()
		}
		m.chatInput.SetValue("")
		return m, m.sendChatCmd(text)
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// =============================================================================
// PROFILE EDITOR MODE
// =============================================================================

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.profileInputs = nil
		m.focus = FocusBrowse
		return m, nil

	case "tab", "shift+tab", "up", "down":
		delta := 1
		if msg.String() == "shift+tab" || msg.String() == "up" {
			delta = -1
		}
		m.profileInputs[m.profileFocus].Blur()
		m.profileFocus = (m.profileFocus + delta + len(m.profileInputs)) % len(m.profileInputs)
		m.profileInputs[m.profileFocus].Focus()
		return m, nil

	case "enter":
		m.sess.UpdateProfile(m.profileFromInputs())
		m.profileInputs = nil
		m.focus = FocusBrowse
		return m, m.scheduleToastExpiry()
	}

	var cmd tea.Cmd
	m.profileInputs[m.profileFocus], cmd = m.profileInputs[m.profileFocus].Update(msg)
	return m, cmd
}
