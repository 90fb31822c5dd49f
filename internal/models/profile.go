package models

import "time"

// TemplateKey names the profile template a response was built from.
type TemplateKey string

const (
	TemplateLinkedInOutreach TemplateKey = "linkedin_outreach"
	TemplateB2BSaaS          TemplateKey = "b2b_saas"
	TemplateDefault          TemplateKey = "default"
	// TemplateExternal marks a profile produced by an external generator.
	TemplateExternal TemplateKey = "external"
)

// CustomerProfile is an Ideal Customer Profile. Field order is the order of
// the serialized form.
type CustomerProfile struct {
	Personas       []Persona   `json:"personas"`
	FilterLogic    FilterLogic `json:"filter_logic"`
	SampleKeywords []string    `json:"sample_keywords"`
	IntentSignals  []string    `json:"intent_signals"`
}

// Persona is one decision-maker sub-segment of a profile. Only Title is
// required.
type Persona struct {
	Title         string   `json:"title"`
	JobTitles     []string `json:"job_titles,omitempty"`
	CompanyStage  string   `json:"company_stage,omitempty"`
	Industry      []string `json:"industry,omitempty"`
	TeamSize      string   `json:"team_size,omitempty"`
	Region        []string `json:"region,omitempty"`
	PainPoints    []string `json:"pain_points,omitempty"`
	GrowthSignals []string `json:"growth_signals,omitempty"`
}

// Signals holds the keyword predicates evaluated against a description.
type Signals struct {
	LinkedInTool bool `json:"linkedin_tool"`
	B2BSaaS      bool `json:"b2b_saas"`
	AITool       bool `json:"ai_tool"`
}

// ProfileResponse wraps a generated profile for transport.
type ProfileResponse struct {
	Description string          `json:"description"`
	Template    TemplateKey     `json:"template"`
	Signals     Signals         `json:"signals"`
	Profile     CustomerProfile `json:"profile"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// Clone returns a deep copy that shares no backing arrays with p.
func (p CustomerProfile) Clone() CustomerProfile {
	out := CustomerProfile{
		FilterLogic:    p.FilterLogic.Clone(),
		SampleKeywords: cloneStrings(p.SampleKeywords),
		IntentSignals:  cloneStrings(p.IntentSignals),
	}
	if p.Personas != nil {
		out.Personas = make([]Persona, len(p.Personas))
		for i, persona := range p.Personas {
			out.Personas[i] = persona.Clone()
		}
	}
	return out
}

func (p Persona) Clone() Persona {
	return Persona{
		Title:         p.Title,
		JobTitles:     cloneStrings(p.JobTitles),
		CompanyStage:  p.CompanyStage,
		Industry:      cloneStrings(p.Industry),
		TeamSize:      p.TeamSize,
		Region:        cloneStrings(p.Region),
		PainPoints:    cloneStrings(p.PainPoints),
		GrowthSignals: cloneStrings(p.GrowthSignals),
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
