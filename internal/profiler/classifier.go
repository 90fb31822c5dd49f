package profiler

import (
	"strings"

	"github.com/BerylCAtieno/icp-generator/internal/models"
)

var (
	linkedInKeywords = []string{"linkedin", "outreach", "prospecting"}
	b2bSaaSKeywords  = []string{"saas", "b2b", "software"}
	aiToolKeywords   = []string{"ai", "artificial intelligence", "machine learning"}
)

// Classify evaluates the keyword predicates against a lowercased copy of the
// description. Matching is plain substring containment, so "ai" also matches
// words like "maintain".
func Classify(description string) models.Signals {
	text := strings.ToLower(description)
	return models.Signals{
		LinkedInTool: containsAny(text, linkedInKeywords),
		B2BSaaS:      containsAny(text, b2bSaaSKeywords),
		AITool:       containsAny(text, aiToolKeywords),
	}
}

// TemplateFor picks the template for a set of signals. First match wins:
// LinkedIn/outreach, then B2B SaaS, then the default. AITool is not
// consulted.
func TemplateFor(s models.Signals) models.TemplateKey {
	switch {
	case s.LinkedInTool:
		return models.TemplateLinkedInOutreach
	case s.B2BSaaS:
		return models.TemplateB2BSaaS
	default:
		return models.TemplateDefault
	}
}

// SelectProfile returns a fresh copy of the template matching description.
// It never fails; an empty description yields the default template.
func SelectProfile(description string) models.CustomerProfile {
	profile, _ := Template(TemplateFor(Classify(description)))
	return profile
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
