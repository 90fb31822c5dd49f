package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterValue_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		value    FilterValue
		expected string
	}{
		{name: "single", value: Single("1-200"), expected: `"1-200"`},
		{name: "list", value: List("Seed", "Series A"), expected: `["Seed","Series A"]`},
		{name: "empty list", value: List(), expected: `[]`},
		{name: "no html escaping", value: Single("R&D <ops>"), expected: `"R&D <ops>"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestFilterValue_UnmarshalJSON(t *testing.T) {
	var single FilterValue
	require.NoError(t, json.Unmarshal([]byte(`"10-200"`), &single))
	assert.False(t, single.IsList())
	assert.Equal(t, "10-200", single.String())
	assert.Equal(t, []string{"10-200"}, single.Values())

	var list FilterValue
	require.NoError(t, json.Unmarshal([]byte(` ["US", "UK"] `), &list))
	assert.True(t, list.IsList())
	assert.Equal(t, []string{"US", "UK"}, list.Values())
	assert.Equal(t, "US, UK", list.String())

	for _, bad := range []string{`42`, `true`, `{"a":"b"}`, `[1,2]`, `null`} {
		var v FilterValue
		err := json.Unmarshal([]byte(bad), &v)
		assert.True(t, errors.Is(err, ErrInvalidFilterValue), "input %s: %v", bad, err)
	}
}

func TestFilterValue_Equal(t *testing.T) {
	assert.True(t, Single("a").Equal(Single("a")))
	assert.False(t, Single("a").Equal(List("a")))
	assert.False(t, List("a", "b").Equal(List("b", "a")))
	assert.True(t, List("a", "b").Equal(List("a", "b")))
}

func TestFilterLogic_KeepsKeyOrder(t *testing.T) {
	var logic FilterLogic
	logic.Set("zeta", Single("z"))
	logic.Set("alpha", List("a1", "a2"))
	logic.Set("mid", Single("m"))

	out, err := json.Marshal(logic)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":"z","alpha":["a1","a2"],"mid":"m"}`, string(out))

	var decoded FilterLogic
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, decoded.Names())
	assert.Equal(t, logic, decoded)
}

func TestFilterLogic_SetReplaces(t *testing.T) {
	var logic FilterLogic
	logic.Set("geography", List("US"))
	logic.Set("geography", List("UK"))

	require.Len(t, logic, 1)
	v, ok := logic.Get("geography")
	require.True(t, ok)
	assert.Equal(t, []string{"UK"}, v.Values())

	_, ok = logic.Get("missing")
	assert.False(t, ok)
}

func TestFilterLogic_UnmarshalErrors(t *testing.T) {
	var logic FilterLogic
	assert.Error(t, json.Unmarshal([]byte(`["not","an","object"]`), &logic))

	err := json.Unmarshal([]byte(`{"company_size_range": 200}`), &logic)
	assert.True(t, errors.Is(err, ErrInvalidFilterValue))
}

func TestCustomerProfile_Clone(t *testing.T) {
	original := CustomerProfile{
		Personas: []Persona{{
			Title:     "Founder",
			JobTitles: []string{"CEO"},
		}},
		FilterLogic:    FilterLogic{{Name: "geography", Value: List("US")}},
		SampleKeywords: []string{"automation"},
		IntentSignals:  []string{"hiring"},
	}

	clone := original.Clone()
	assert.Equal(t, original, clone)

	clone.Personas[0].JobTitles[0] = "mutated"
	clone.FilterLogic[0].Value.items[0] = "mutated"
	clone.SampleKeywords[0] = "mutated"

	assert.Equal(t, "CEO", original.Personas[0].JobTitles[0])
	assert.Equal(t, []string{"US"}, original.FilterLogic[0].Value.Values())
	assert.Equal(t, "automation", original.SampleKeywords[0])
}
