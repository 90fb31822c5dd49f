package presenter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BerylCAtieno/icp-generator/internal/models"
	"github.com/BerylCAtieno/icp-generator/internal/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allTemplates(t *testing.T) map[models.TemplateKey]models.CustomerProfile {
	t.Helper()
	out := map[models.TemplateKey]models.CustomerProfile{}
	for _, key := range []models.TemplateKey{models.TemplateLinkedInOutreach, models.TemplateB2BSaaS, models.TemplateDefault} {
		p, ok := profiler.Template(key)
		require.True(t, ok)
		out[key] = p
	}
	return out
}

func TestEncode_RoundTrip(t *testing.T) {
	for key, profile := range allTemplates(t) {
		t.Run(string(key), func(t *testing.T) {
			data, err := Encode(profile)
			require.NoError(t, err)

			decoded, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, profile, decoded)

			again, err := Encode(decoded)
			require.NoError(t, err)
			assert.Equal(t, string(data), string(again))
		})
	}
}

func TestEncode_CanonicalLayout(t *testing.T) {
	data, err := Encode(profiler.SelectProfile("A generic productivity app"))
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "{\n  \"personas\": [\n    {\n      \"title\": \"Business Decision Maker\",\n"))
	assert.False(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, out, "  \"filter_logic\": {\n    \"job_title_contains\": [\n      \"ceo\",")
	assert.Contains(t, out, "\"company_size_range\": \"10-200\",")

	order := []string{`"personas"`, `"filter_logic"`, `"sample_keywords"`, `"intent_signals"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(out, key)
		require.Greater(t, idx, last, "key %s out of order", key)
		last = idx
	}

	filters := []string{`"job_title_contains"`, `"company_size_range"`, `"industry_keywords"`, `"geography"`, `"company_growth_indicators"`}
	last = -1
	for _, key := range filters {
		idx := strings.Index(out, key)
		require.Greater(t, idx, last, "filter %s out of order", key)
		last = idx
	}
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte(`{"personas": "nope"}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"filter_logic": {"geography": 7}}`))
	assert.True(t, errors.Is(err, models.ErrInvalidFilterValue))
}

func TestViewMode(t *testing.T) {
	assert.Equal(t, ViewJSON, ViewStructured.Toggle())
	assert.Equal(t, ViewStructured, ViewJSON.Toggle())
	assert.Equal(t, ViewJSON, ViewMode("").Toggle())

	assert.Equal(t, ViewJSON, ParseViewMode(" JSON "))
	assert.Equal(t, ViewStructured, ParseViewMode("structured"))
	assert.Equal(t, ViewStructured, ParseViewMode("whatever"))
}

func TestRender(t *testing.T) {
	profile := profiler.SelectProfile("linkedin")

	jsonView, err := Render(profile, ViewJSON)
	require.NoError(t, err)
	encoded, err := Encode(profile)
	require.NoError(t, err)
	assert.Equal(t, string(encoded), jsonView)

	structured, err := Render(profile, ViewStructured)
	require.NoError(t, err)
	assert.Equal(t, RenderMarkdown(profile), structured)
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown(profiler.SelectProfile("Our B2B SaaS platform helps growth teams"))

	for _, want := range []string{
		"## Customer Personas",
		"### SaaS Founder / Product Leader (Persona 1)",
		"### Marketing Director / Growth Lead (Persona 2)",
		"- **Job Titles:** Founder, CEO, Product Manager, Head of Product",
		"- **Stage:** Seed to Series B",
		"- **Team Size:** 5-100",
		"**Pain Points:**",
		"**Growth Signals:**",
		"## Filter Logic",
		"- **Company Size Range:** 5-500",
		"- **Company Type:** Private, Startup, Scale-up",
		"## Sample Keywords",
		"`B2B SaaS` `product analytics`",
		"## Intent Signals",
		"- Attending SaaS or product conferences",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderMarkdown_OmitsEmptyFields(t *testing.T) {
	out := RenderMarkdown(models.CustomerProfile{
		Personas: []models.Persona{{Title: "Solo Founder"}},
	})

	assert.Contains(t, out, "### Solo Founder (Persona 1)")
	for _, absent := range []string{"Job Titles", "Stage", "Team Size", "Pain Points", "Filter Logic", "Sample Keywords", "Intent Signals"} {
		assert.NotContains(t, out, absent)
	}
}

func TestRenderTerminal(t *testing.T) {
	out := RenderTerminal(profiler.SelectProfile("linkedin"))

	for _, want := range []string{
		"Startup Founder / CEO",
		"Persona 2",
		"Filter Logic",
		"Company Growth Stage:",
		"[cold email]",
		"Intent Signals",
		"• Engages with sales methodology content on LinkedIn",
	} {
		assert.Contains(t, out, want)
	}
}

func TestFilterLabel(t *testing.T) {
	assert.Equal(t, "Job Title Contains", FilterLabel("job_title_contains"))
	assert.Equal(t, "Geography", FilterLabel("geography"))
	assert.Equal(t, "", FilterLabel(""))
}

func TestWriteDownload(t *testing.T) {
	dir := t.TempDir()
	profile := profiler.SelectProfile("prospecting")

	path, err := WriteDownload(dir, profile)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ideal-customer-profile.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	expected, err := Encode(profile)
	require.NoError(t, err)
	assert.Equal(t, expected, data)
}

func TestWriteDownload_MissingDir(t *testing.T) {
	_, err := WriteDownload(filepath.Join(t.TempDir(), "missing"), profiler.SelectProfile(""))
	assert.Error(t, err)
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func TestCopy(t *testing.T) {
	profile := profiler.SelectProfile("saas")
	cb := &fakeClipboard{}

	require.NoError(t, Copy(profile, cb))
	expected, _ := Encode(profile)
	assert.Equal(t, string(expected), cb.text)

	failing := &fakeClipboard{err: errors.New("no display")}
	err := Copy(profile, failing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")
}
