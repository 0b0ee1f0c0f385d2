package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gradnet/cmd/gradnet/ui"
	"gradnet/internal/assistant"
	"gradnet/internal/nav"
	"gradnet/internal/session"
)

var pageTabs = []struct {
	label string
	view  nav.View
	key   string
}{
	{"Home", nav.ViewHome, "1"},
	{"Directory", nav.ViewDirectory, "2"},
	{"Events", nav.ViewEvents, "3"},
	{"Careers", nav.ViewCareers, "4"},
	{"Dashboard", nav.ViewDashboard, "5"},
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	var content string
	switch {
	case m.sess.ActiveOverlay() != session.OverlayNone:
		content = m.renderOverlay()
	case m.chatOpen:
		content = m.renderChat()
	default:
		content = m.renderPage()
	}

	sections := []string{header}
	if toasts := m.renderToasts(); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections, m.styles.Content.Render(content), footer)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(" gradnet ")

	var tabs []string
	active := m.nav.Current()
	// Detail pages highlight their parent tab.
	switch active {
	case nav.ViewPersonDetail:
		active = nav.ViewDirectory
	case nav.ViewEventDetail:
		active = nav.ViewEvents
	}
	for _, t := range pageTabs {
		label := fmt.Sprintf("%s %s", t.key, t.label)
		if t.view == active && !m.chatOpen {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	chatLabel := "c Assistant"
	if m.chatOpen {
		tabs = append(tabs, m.styles.ActiveTab.Render(chatLabel))
	} else {
		tabs = append(tabs, m.styles.Tab.Render(chatLabel))
	}

	var who string
	if u, ok := m.sess.User(); ok {
		who = m.styles.Badge.Render(u.Name)
	} else {
		who = m.styles.Muted.Render("not signed in")
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", strings.Join(tabs, " "), "  ", who)
	return lipgloss.JoinVertical(lipgloss.Left, line, m.styles.RenderDivider(m.width))
}

func (m Model) renderFooter() string {
	var keys string
	switch {
	case m.sess.ActiveOverlay() == session.OverlayJobDetail:
		keys = "a/enter: apply | esc: close"
	case m.sess.ActiveOverlay() != session.OverlayNone:
		keys = "tab: next field | enter: submit | esc: cancel"
	case m.focus == FocusChat:
		keys = "enter: send | esc: back"
	case m.focus == FocusProfile:
		keys = "tab: next field | enter: save | esc: discard"
	case m.focus == FocusSearch:
		keys = "type to filter | enter/esc: done"
	default:
		switch m.nav.Current() {
		case nav.ViewDirectory:
			keys = "/: search | tab: filter | left/right: change | enter: view | esc: -"
		case nav.ViewCareers:
			keys = "/: search | left/right: type | enter: view posting"
		case nav.ViewPersonDetail:
			keys = "m: request mentorship | esc: back"
		case nav.ViewEventDetail:
			keys = "r: RSVP | esc: back"
		case nav.ViewDashboard:
			keys = "e: edit profile | o: sign out"
		default:
			if m.sess.Authenticated() {
				keys = "1-5: pages | c: assistant | o: sign out | q: quit"
			} else {
				keys = "1-5: pages | c: assistant | l: log in | s: sign up | q: quit"
			}
		}
	}
	return m.styles.Footer.Render(keys)
}

func (m Model) renderToasts() string {
	if len(m.toasts.items) == 0 {
		return ""
	}
	var lines []string
	for _, t := range m.toasts.items {
		lines = append(lines, m.styles.Toast.Render(t.title)+" "+m.styles.Muted.Render(t.description))
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(lines, "\n"))
}

// =============================================================================
// PAGES
// =============================================================================

func (m Model) renderPage() string {
	switch m.nav.Current() {
	case nav.ViewDirectory:
		return m.renderDirectory()
	case nav.ViewPersonDetail:
		return m.renderPersonDetail()
	case nav.ViewEvents:
		return m.renderEvents()
	case nav.ViewEventDetail:
		return m.renderEventDetail()
	case nav.ViewCareers:
		return m.renderCareers()
	case nav.ViewDashboard:
		return m.renderDashboard()
	}
	return m.renderHome()
}

func (m Model) renderHome() string {
	banner := m.styles.Subtitle.Render(homeBanners[m.bannerIndex])
	stats := m.styles.Muted.Render(fmt.Sprintf(
		"%d alumni in the directory | %d events | %d open positions",
		len(m.db.People), len(m.db.Events), len(m.db.Jobs)))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		ui.Logo(m.styles),
		m.styles.Title.Render("Alumni Network"),
		banner,
		"",
		stats,
	)
}

func (m Model) renderDirectory() string {
	people := m.filteredPeople()
	cursor := clampCursor(m.dirCursor, len(people))

	filterLabel := func(name, value string, idx int) string {
		label := fmt.Sprintf("%s: %s", name, value)
		if m.dirFilter == idx && m.focus == FocusBrowse {
			return m.styles.Bold.Render("[" + label + "]")
		}
		return m.styles.Muted.Render(label)
	}
	filters := lipgloss.JoinHorizontal(lipgloss.Center,
		filterLabel("Year", m.years[m.yearIdx], dirFilterYear), "  ",
		filterLabel("Major", m.majors[m.majorIdx], dirFilterMajor), "  ",
		filterLabel("Industry", m.industries[m.industryIdx], dirFilterIndustry),
	)

	var rows []string
	rows = append(rows,
		m.styles.Title.Render("Alumni Directory"),
		m.peopleSearch.View(),
		filters,
		m.styles.Muted.Render(fmt.Sprintf("%d of %d alumni", len(people), len(m.db.People))),
		"")

	if len(people) == 0 {
		rows = append(rows, m.styles.Muted.Render("No alumni match the current filters."))
	}
	for i, p := range people {
		line := fmt.Sprintf("%s  %s '%s\n%s at %s - %s", p.Name, p.Major, shortYear(p.GradYear), p.Title, p.Company, p.Location)
		if i == cursor {
			rows = append(rows, m.styles.SelectedCard.Render(line))
		} else {
			rows = append(rows, m.styles.Card.Render(line))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderPersonDetail() string {
	id, ok := m.nav.SelectedPerson()
	if !ok {
		return m.renderNotFound("No alumni profile selected.")
	}
	p, ok := m.db.PersonByID(id)
	if !ok {
		return m.renderNotFound("That alumni profile no longer exists.")
	}

	var rows []string
	rows = append(rows,
		m.styles.Title.Render(p.Name),
		m.styles.Subtitle.Render(fmt.Sprintf("%s at %s", p.Title, p.Company)),
		m.styles.Muted.Render(fmt.Sprintf("%s '%s | %s | %s", p.Major, shortYear(p.GradYear), p.Industry, p.Location)),
		"",
		m.styles.Body.Render(strings.TrimSpace(p.Bio)),
		"")

	if len(p.Skills) > 0 {
		rows = append(rows, m.styles.Bold.Render("Skills"), m.styles.Body.Render(strings.Join(p.Skills, ", ")), "")
	}
	if len(p.WorkHistory) > 0 {
		rows = append(rows, m.styles.Bold.Render("Experience"))
		for _, w := range p.WorkHistory {
			rows = append(rows, m.styles.Body.Render(fmt.Sprintf("  %s, %s (%s)", w.Title, w.Company, w.Years)))
		}
		rows = append(rows, "")
	}

	rows = append(rows, m.styles.Muted.Render(p.Email+"  "+p.Phone+"  "+p.LinkedIn), "")
	if p.AvailableForMentoring {
		rows = append(rows, m.styles.Success.Render("Available for mentoring - press m to request"))
	} else {
		rows = append(rows, m.styles.Muted.Render("Not currently taking mentees"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderEvents() string {
	cursor := clampCursor(m.eventCursor, len(m.db.Events))

	var rows []string
	rows = append(rows, m.styles.Title.Render("Events"), "")
	for i, e := range m.db.Events {
		badge := m.styles.Badge.Render(e.Category)
		status := ""
		if !e.Upcoming {
			status = m.styles.Muted.Render(" (past)")
		}
		rsvp := ""
		if m.sess.HasRSVPed(e.ID) {
			rsvp = m.styles.Success.Render(" going")
		}
		line := fmt.Sprintf("%s %s%s%s\n%s - %s\n%s", e.Title, badge, status, rsvp, e.Date, e.Location, e.Description)
		if i == cursor {
			rows = append(rows, m.styles.SelectedCard.Render(line))
		} else {
			rows = append(rows, m.styles.Card.Render(line))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderEventDetail() string {
	id, ok := m.nav.SelectedEvent()
	if !ok {
		return m.renderNotFound("No event selected.")
	}
	e, ok := m.db.EventByID(id)
	if !ok {
		return m.renderNotFound("That event no longer exists.")
	}

	var rows []string
	rows = append(rows,
		m.styles.Title.Render(e.Title),
		m.styles.Subtitle.Render(fmt.Sprintf("%s, %s - %s", e.Date, e.StartTime, e.EndTime)),
		m.styles.Muted.Render(e.Location),
		"",
		m.styles.Body.Render(strings.TrimSpace(e.LongDescription)),
		"")

	if len(e.Attendees) > 0 {
		rows = append(rows,
			m.styles.Bold.Render(fmt.Sprintf("Attending (%d)", len(e.Attendees))),
			m.styles.Body.Render(strings.Join(e.Attendees, ", ")),
			"")
	}

	switch {
	case !e.Upcoming:
		rows = append(rows, m.styles.Muted.Render("This event has ended."))
	case m.sess.HasRSVPed(e.ID):
		rows = append(rows, m.styles.Success.Render("You're going!"))
	default:
		rows = append(rows, m.styles.Info.Render("Press r to RSVP"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderCareers() string {
	jobs := m.filteredJobs()
	cursor := clampCursor(m.jobCursor, len(jobs))

	var rows []string
	rows = append(rows,
		m.styles.Title.Render("Career Board"),
		m.jobSearch.View(),
		m.styles.Muted.Render(fmt.Sprintf("Type: %s  |  %d of %d postings", m.jobTypes[m.typeIdx], len(jobs), len(m.db.Jobs))),
		"")

	if len(jobs) == 0 {
		rows = append(rows, m.styles.Muted.Render("No postings match the current filters."))
	}
	for i, j := range jobs {
		line := fmt.Sprintf("%s %s\n%s - %s - %s", j.Title, m.styles.Badge.Render(j.Type), j.Company, j.Location, j.Salary)
		if i == cursor {
			rows = append(rows, m.styles.SelectedCard.Render(line))
		} else {
			rows = append(rows, m.styles.Card.Render(line))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderDashboard() string {
	u, ok := m.sess.User()
	if !ok {
		// The nav machine should have redirected already.
		return m.renderNotFound("Sign in to see your dashboard.")
	}

	if m.focus == FocusProfile {
		return m.renderProfileEditor()
	}

	p := m.sess.Profile()
	var rows []string
	rows = append(rows,
		m.styles.Title.Render("My Dashboard"),
		m.styles.Subtitle.Render(u.Name+" - "+u.Email),
		"",
		m.styles.Bold.Render("Profile"),
		m.styles.Body.Render(profileSummary(p)),
		"",
		m.styles.Bold.Render(fmt.Sprintf("My RSVPs (%d)", m.sess.RSVPCount())))

	any := false
	for _, e := range m.db.Events {
		if m.sess.HasRSVPed(e.ID) {
			rows = append(rows, m.styles.Body.Render(fmt.Sprintf("  %s - %s", e.Date, e.Title)))
			any = true
		}
	}
	if !any {
		rows = append(rows, m.styles.Muted.Render("  No RSVPs yet. Browse the events page."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func profileSummary(p session.Profile) string {
	var parts []string
	if p.Title != "" || p.Company != "" {
		parts = append(parts, strings.TrimSpace(p.Title+" at "+p.Company))
	}
	if p.Major != "" {
		parts = append(parts, p.Major+" '"+shortYear(p.GradYear))
	}
	if p.Bio != "" {
		parts = append(parts, p.Bio)
	}
	if len(parts) == 0 {
		return "Your profile is empty. Press e to fill it in."
	}
	return strings.Join(parts, "\n")
}

func (m Model) renderProfileEditor() string {
	rows := []string{m.styles.Title.Render("Edit Profile"), ""}
	labels := []string{"Name", "Email", "Phone", "Grad year", "Major", "Company", "Title", "Bio"}
	for i, in := range m.profileInputs {
		label := m.styles.Muted.Render(fmt.Sprintf("%-10s", labels[i]))
		rows = append(rows, label+in.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderNotFound(message string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.styles.Title.Render("Not found"),
		m.styles.Muted.Render(message),
		m.styles.Muted.Render("Press esc to go back."),
	)
}

// =============================================================================
// OVERLAYS & CHAT
// =============================================================================

func (m Model) renderOverlay() string {
	switch m.sess.ActiveOverlay() {
	case session.OverlayLogin:
		return m.styles.Overlay.Render(m.renderForm("Sign In", []string{"Email", "Password"}))
	case session.OverlaySignUp:
		return m.styles.Overlay.Render(m.renderForm("Create Account",
			[]string{"Name", "Email", "Password", "Grad year", "Major"}))
	case session.OverlayJobDetail:
		return m.styles.Overlay.Render(m.renderJobDetail())
	}
	return m.renderPage()
}

func (m Model) renderForm(title string, labels []string) string {
	rows := []string{m.styles.Title.Render(title), ""}
	for i, in := range m.overlayInputs {
		label := m.styles.Muted.Render(fmt.Sprintf("%-10s", labels[i]))
		rows = append(rows, label+in.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderJobDetail() string {
	j, ok := m.db.JobByID(m.selectedJob)
	if !ok {
		return m.renderNotFound("That posting no longer exists.")
	}

	var rows []string
	rows = append(rows,
		m.styles.Title.Render(j.Title),
		m.styles.Subtitle.Render(j.Company+" - "+j.Location),
		m.styles.Muted.Render(fmt.Sprintf("%s | %s | apply by %s", j.Type, j.Salary, j.Deadline)),
		"",
		m.styles.Body.Render(strings.TrimSpace(j.LongDescription)),
		"")

	if len(j.Requirements) > 0 {
		rows = append(rows, m.styles.Bold.Render("Requirements"))
		for _, r := range j.Requirements {
			rows = append(rows, m.styles.Body.Render("  - "+r))
		}
		rows = append(rows, "")
	}
	if j.PostedBy != "" {
		rows = append(rows, m.styles.Muted.Render("Posted by "+j.PostedBy+" on "+j.PostedDate), "")
	}
	rows = append(rows, m.styles.Info.Render("Press a to apply"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderChat() string {
	var sb strings.Builder
	for _, turn := range m.chat.Transcript() {
		if turn.Role == assistant.RoleUser {
			sb.WriteString(m.styles.Bold.Render("You") + "\n")
			sb.WriteString(m.styles.UserMessage.Render(turn.Text))
			sb.WriteString("\n\n")
			continue
		}
		sb.WriteString(m.styles.Prompt.Render("Assistant") + "\n")
		sb.WriteString(m.styles.AgentResponse.Render(m.safeRenderMarkdown(turn.Text)))
		sb.WriteString("\n")
	}

	status := ""
	if m.chat.Busy() {
		status = m.spinner.View() + " " + m.styles.Muted.Render("Thinking...")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.styles.Title.Render("Network Assistant"),
		sb.String(),
		status,
		m.chatInput.View(),
	)
}

// safeRenderMarkdown renders markdown with panic recovery.
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		if rendered, err := m.renderer.Render(content); err == nil {
			return rendered
		}
	}
	return content
}

// shortYear turns "2015" into "15" for the class-year shorthand.
func shortYear(year string) string {
	if len(year) == 4 {
		return year[2:]
	}
	return year
}
