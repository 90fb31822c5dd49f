package profiler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BerylCAtieno/icp-generator/internal/logger"
	"github.com/BerylCAtieno/icp-generator/internal/models"
	"github.com/BerylCAtieno/icp-generator/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, delay time.Duration) (*TemplateGenerator, *[]time.Duration) {
	t.Helper()
	var slept []time.Duration
	g := NewTemplateGenerator(delay, logger.NewTestLogger(t))
	g.sleep = func(d time.Duration) { slept = append(slept, d) }
	g.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return g, &slept
}

func TestTemplateGenerator_Generate(t *testing.T) {
	g, slept := newTestGenerator(t, DefaultDelay)

	resp, err := g.GenerateCustomerProfile(context.Background(), "  AI-powered LinkedIn outreach tool for B2B SaaS founders \n")
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{DefaultDelay}, *slept)
	assert.Equal(t, "AI-powered LinkedIn outreach tool for B2B SaaS founders", resp.Description)
	assert.Equal(t, models.TemplateLinkedInOutreach, resp.Template)
	assert.Equal(t, models.Signals{LinkedInTool: true, B2BSaaS: true, AITool: true}, resp.Signals)
	assert.Equal(t, mustTemplate(t, models.TemplateLinkedInOutreach), resp.Profile)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), resp.GeneratedAt)
}

func TestTemplateGenerator_RejectsEmptyBeforeWaiting(t *testing.T) {
	g, slept := newTestGenerator(t, DefaultDelay)

	for _, input := range []string{"", "   ", "\n\t"} {
		resp, err := g.GenerateCustomerProfile(context.Background(), input)
		assert.Nil(t, resp)
		assert.True(t, errors.Is(err, ErrEmptyDescription))
	}
	assert.Empty(t, *slept)
}

func TestTemplateGenerator_ZeroDelaySkipsWait(t *testing.T) {
	g, slept := newTestGenerator(t, 0)

	resp, err := g.GenerateCustomerProfile(context.Background(), "A generic productivity app")
	require.NoError(t, err)
	assert.Equal(t, models.TemplateDefault, resp.Template)
	assert.Empty(t, *slept)
}

func TestTemplateGenerator_NegativeDelayClamped(t *testing.T) {
	g := NewTemplateGenerator(-time.Second, logger.NewNoOpLogger())
	assert.Equal(t, time.Duration(0), g.delay)
}

func TestTemplateGenerator_IgnoresCancellation(t *testing.T) {
	g, slept := newTestGenerator(t, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := g.GenerateCustomerProfile(ctx, "Our B2B SaaS platform helps growth teams")
	require.NoError(t, err)
	assert.Equal(t, models.TemplateB2BSaaS, resp.Template)
	assert.Len(t, *slept, 1)
}

func TestParseProfile(t *testing.T) {
	valid := `{
  "personas": [{"title": "Clinic Owner", "job_titles": ["Owner"], "team_size": "1-20"}],
  "filter_logic": {"job_title_contains": ["owner"], "company_size_range": "1-20"},
  "sample_keywords": ["clinic software"],
  "intent_signals": ["Hiring front desk staff"]
}`

	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{name: "plain json", text: valid},
		{name: "fenced json", text: "```json\n" + valid + "\n```"},
		{name: "bare fence", text: "```\n" + valid + "\n```"},
		{name: "prose", text: "Here is your profile!", wantErr: true},
		{name: "missing title", text: `{"personas":[{}],"filter_logic":{},"sample_keywords":[],"intent_signals":[]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := parseProfile(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, validation.ErrInvalidProfile))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Clinic Owner", profile.Personas[0].Title)
			assert.Equal(t, []string{"job_title_contains", "company_size_range"}, profile.FilterLogic.Names())
			size, _ := profile.FilterLogic.Get("company_size_range")
			assert.False(t, size.IsList())
		})
	}
}

func TestBuildPrompt_IncludesDescription(t *testing.T) {
	prompt := buildPrompt("Dental clinic scheduling")
	assert.Contains(t, prompt, `"Dental clinic scheduling"`)
	assert.Contains(t, prompt, "filter_logic")
}
