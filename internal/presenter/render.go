package presenter

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BerylCAtieno/icp-generator/internal/models"
)

// ViewMode selects between the structured breakdown and the raw JSON dump.
type ViewMode string

const (
	ViewStructured ViewMode = "structured"
	ViewJSON       ViewMode = "json"
)

// Toggle flips between the two views.
func (m ViewMode) Toggle() ViewMode {
	if m == ViewJSON {
		return ViewStructured
	}
	return ViewJSON
}

// ParseViewMode maps user input to a view, defaulting to structured.
func ParseViewMode(s string) ViewMode {
	if strings.EqualFold(strings.TrimSpace(s), string(ViewJSON)) {
		return ViewJSON
	}
	return ViewStructured
}

// Render returns the profile in the requested view.
func Render(profile models.CustomerProfile, mode ViewMode) (string, error) {
	if mode == ViewJSON {
		data, err := Encode(profile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return RenderMarkdown(profile), nil
}

// RenderMarkdown renders the structured breakdown as markdown. Empty persona
// fields and empty sections are left out.
func RenderMarkdown(profile models.CustomerProfile) string {
	var builder strings.Builder

	if len(profile.Personas) > 0 {
		builder.WriteString("## Customer Personas\n")
		builder.WriteString("_Key decision makers and influencers in your target market_\n")
		for i, persona := range profile.Personas {
			builder.WriteString(fmt.Sprintf("\n### %s (Persona %d)\n", persona.Title, i+1))

			if len(persona.JobTitles) > 0 {
				builder.WriteString(fmt.Sprintf("- **Job Titles:** %s\n", strings.Join(persona.JobTitles, ", ")))
			}
			if persona.CompanyStage != "" {
				builder.WriteString(fmt.Sprintf("- **Stage:** %s\n", persona.CompanyStage))
			}
			if persona.TeamSize != "" {
				builder.WriteString(fmt.Sprintf("- **Team Size:** %s\n", persona.TeamSize))
			}
			if len(persona.Industry) > 0 {
				builder.WriteString(fmt.Sprintf("- **Industry:** %s\n", strings.Join(persona.Industry, ", ")))
			}
			if len(persona.Region) > 0 {
				builder.WriteString(fmt.Sprintf("- **Region:** %s\n", strings.Join(persona.Region, ", ")))
			}

			writeList(&builder, "Pain Points", persona.PainPoints)
			writeList(&builder, "Growth Signals", persona.GrowthSignals)
		}
	}

	if len(profile.FilterLogic) > 0 {
		builder.WriteString("\n## Filter Logic\n")
		builder.WriteString("_Use these filters in LinkedIn Sales Navigator, Apollo.io, or similar platforms_\n\n")
		for _, entry := range profile.FilterLogic {
			builder.WriteString(fmt.Sprintf("- **%s:** %s\n", FilterLabel(entry.Name), entry.Value.String()))
		}
	}

	if len(profile.SampleKeywords) > 0 {
		builder.WriteString("\n## Sample Keywords\n")
		tags := make([]string, len(profile.SampleKeywords))
		for i, kw := range profile.SampleKeywords {
			tags[i] = "`" + kw + "`"
		}
		builder.WriteString(strings.Join(tags, " "))
		builder.WriteString("\n")
	}

	if len(profile.IntentSignals) > 0 {
		builder.WriteString("\n## Intent Signals\n")
		for _, signal := range profile.IntentSignals {
			builder.WriteString(fmt.Sprintf("- %s\n", strings.TrimSpace(signal)))
		}
	}

	return builder.String()
}

func writeList(builder *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	builder.WriteString(fmt.Sprintf("\n**%s:**\n", heading))
	for _, item := range items {
		builder.WriteString(fmt.Sprintf("- %s\n", strings.TrimSpace(item)))
	}
}

// FilterLabel turns a filter key like "job_title_contains" into
// "Job Title Contains".
func FilterLabel(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
