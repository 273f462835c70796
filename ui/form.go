package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rCiDK/test-script-helper/engine"
	"github.com/rCiDK/test-script-helper/filesystem"
	"github.com/rCiDK/test-script-helper/session"
)

func (m Model) label(f Field, text string) string {
	if m.focus == f {
		return focusedLabelStyle.Render(text)
	}
	return labelStyle.Render(text)
}

func verdictBadge(v session.Verdict) string {
	if v == session.VerdictFail {
		return failStyle.Render(string(v))
	}
	return passStyle.Render(string(v))
}

func (m Model) renderForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("TEST SCRIPT RUNNER") + "\n\n")

	rows := []struct {
		field Field
		label string
		view  string
	}{
		{FieldName, "Test Name", m.nameInput.View()},
		{FieldStart, "Start Number", m.startInput.View()},
		{FieldEnd, "End Number", m.endInput.View()},
		{FieldExport, "Export To", m.exportInput.View()},
	}
	for _, r := range rows {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.label(r.field, r.label), r.view) + "\n")
	}

	b.WriteString("\n" + m.label(FieldSteps, "Steps") + "\n")
	b.WriteString(m.steps.View() + "\n\n")

	s := m.engine.State.Session
	b.WriteString(labelStyle.Render("Result") + verdictBadge(s.Verdict) + "\n")

	defect := m.defectInput.View()
	if !m.engine.State.DefectEnabled() {
		defect = statusStyle.Render("(enabled on FAIL)")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.label(FieldDefect, "Defect"), defect))

	return b.String()
}

func (m Model) renderSession(height int) string {
	var b strings.Builder
	st := m.engine.State
	s := st.Session

	b.WriteString(titleStyle.Render("SESSION") + "\n\n")

	switch st.Phase {
	case engine.PhaseIdle:
		b.WriteString(statusStyle.Render("Not started.") + "\n")
	case engine.PhaseDone:
		b.WriteString(statusStyle.Render("All test cases finished.") + "\n")
	default:
		b.WriteString(fmt.Sprintf("%s #%d of %d  %s  %s\n",
			s.TestName, s.Current, s.End, verdictBadge(s.Verdict), statusStyle.Render(st.Phase.String())))
	}

	b.WriteString("\n")
	if len(s.Steps) == 0 {
		b.WriteString(statusStyle.Render("No steps yet.") + "\n")
	}
	pending, _, _ := s.PendingStep()
	for i, step := range s.Steps {
		icon := "⬜"
		if i < len(s.Images) {
			icon = "🖼"
		}
		line := fmt.Sprintf("%s %d. %s", icon, i+1, step)
		if i+1 == pending {
			line = lipgloss.NewStyle().Foreground(highlight).Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + titleStyle.Render("REPORTS") + "\n")
	if st.ExportDir == "" {
		b.WriteString(statusStyle.Render("No export location chosen."))
		return b.String()
	}
	b.WriteString(statusStyle.Render(st.ExportDir) + "\n")

	// Show the most recent names that still fit.
	used := lipgloss.Height(b.String())
	room := height - used
	reports := st.Reports
	if len(reports) == 0 {
		b.WriteString(statusStyle.Render("No reports yet."))
		return b.String()
	}
	if room <= 0 {
		return b.String()
	}
	if len(reports) > room {
		reports = reports[len(reports)-room:]
	}
	for _, r := range reports {
		b.WriteString(renderReport(r) + "\n")
	}
	return b.String()
}

func renderReport(r filesystem.Report) string {
	switch {
	case !r.Parsed:
		return "📄 " + r.FileName
	case r.Verdict == string(session.VerdictFail):
		return "❌ " + r.FileName
	default:
		return "✅ " + r.FileName
	}
}
