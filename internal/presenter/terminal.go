package presenter

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/icp-generator/internal/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#7C3AED")
	accentColor  = lipgloss.Color("#06B6D4")
	mutedColor   = lipgloss.Color("#6B7280")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1).
			MarginBottom(1)

	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtitleStyle   = lipgloss.NewStyle().Italic(true).Foreground(mutedColor)
	labelStyle      = lipgloss.NewStyle().Bold(true)
	badgeStyle      = lipgloss.NewStyle().Foreground(accentColor)
)

// RenderTerminal renders the structured breakdown as bordered terminal
// panels.
func RenderTerminal(profile models.CustomerProfile) string {
	var panels []string

	for i, persona := range profile.Personas {
		panels = append(panels, panelStyle.Render(personaPanel(i, persona)))
	}

	if len(profile.FilterLogic) > 0 {
		var b strings.Builder
		b.WriteString(panelTitleStyle.Render("Filter Logic"))
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render("Use these filters in LinkedIn Sales Navigator, Apollo.io, or similar platforms"))
		for _, entry := range profile.FilterLogic {
			b.WriteString(fmt.Sprintf("\n%s %s", labelStyle.Render(FilterLabel(entry.Name)+":"), entry.Value.String()))
		}
		panels = append(panels, panelStyle.Render(b.String()))
	}

	if len(profile.SampleKeywords) > 0 {
		tags := make([]string, len(profile.SampleKeywords))
		for i, kw := range profile.SampleKeywords {
			tags[i] = badgeStyle.Render("[" + kw + "]")
		}
		panels = append(panels, panelStyle.Render(panelTitleStyle.Render("Sample Keywords")+"\n"+strings.Join(tags, " ")))
	}

	if len(profile.IntentSignals) > 0 {
		panels = append(panels, panelStyle.Render(panelTitleStyle.Render("Intent Signals")+"\n"+bullets(profile.IntentSignals)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func personaPanel(index int, persona models.Persona) string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render(persona.Title))
	b.WriteString("  ")
	b.WriteString(badgeStyle.Render(fmt.Sprintf("Persona %d", index+1)))

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(fmt.Sprintf("\n%s %s", labelStyle.Render(label+":"), value))
	}
	field("Job Titles", strings.Join(persona.JobTitles, ", "))
	field("Stage", persona.CompanyStage)
	field("Team Size", persona.TeamSize)
	field("Industry", strings.Join(persona.Industry, ", "))
	field("Region", strings.Join(persona.Region, ", "))

	if len(persona.PainPoints) > 0 {
		b.WriteString("\n" + labelStyle.Render("Pain Points") + "\n" + bullets(persona.PainPoints))
	}
	if len(persona.GrowthSignals) > 0 {
		b.WriteString("\n" + labelStyle.Render("Growth Signals") + "\n" + bullets(persona.GrowthSignals))
	}
	return b.String()
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + strings.TrimSpace(item)
	}
	return strings.Join(lines, "\n")
}
