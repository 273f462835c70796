package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) renderHelp() string {
	title := titleStyle.Render("HELP")
	helpView := m.help.View(m.keys)

	workflow := statusStyle.Render(
		"1. Enter the test name, start and end numbers.\n" +
			"2. Type the export location and press ctrl+e.\n" +
			"3. Press ctrl+s to start.\n" +
			"4. Type steps, one per line, and press ctrl+o.\n" +
			"5. Copy a screenshot and press ctrl+v for each step.\n" +
			"6. Toggle FAIL with ctrl+t if needed, then ctrl+f to finish.")

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		paneStyle.Render(fmt.Sprintf("%s\n\n%s\n\n%s", title, helpView, workflow)),
	)
}
