package ai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"plain":              {`{"a":1}`, `{"a":1}`},
		"json fence":         {"```json\n{\"a\":1}\n```", `{"a":1}`},
		"bare fence":         {"```\n{\"a\":1}\n```", `{"a":1}`},
		"surrounding space":  {"  \n```json\n{\"a\":1}\n```\n  ", `{"a":1}`},
		"no closing fence":   {"```json\n{\"a\":1}", `{"a":1}`},
		"empty":              {"", ""},
		"whitespace only":    {"   \n\t", ""},
		"fence inside value": {`{"a":"` + "``" + `"}`, `{"a":"` + "``" + `"}`},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripCodeFences(tc.in))
		})
	}
}

func TestParseObject(t *testing.T) {
	obj, err := ParseObject("```json\n{\"title\":\"Plan\",\"error\":false}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Plan", obj["title"])
	assert.Equal(t, false, obj["error"])
}

func TestParseObjectFailsClosed(t *testing.T) {
	_, err := ParseObject("")
	assert.Error(t, err)

	_, err = ParseObject("The patient should rest.")
	assert.ErrorIs(t, err, ErrNotObject)

	// A JSON array is not the contract either.
	_, err = ParseObject(`[{"a":1}]`)
	assert.ErrorIs(t, err, ErrNotObject)

	// Truncated JSON must not yield partial data.
	_, err = ParseObject(`{"title":"Plan",`)
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestErrorFlag(t *testing.T) {
	msg, flagged := ErrorFlag(map[string]interface{}{"error": true, "errorMessage": "Not a prescription"})
	assert.True(t, flagged)
	assert.Equal(t, "Not a prescription", msg)

	msg, flagged = ErrorFlag(map[string]interface{}{"error": true, "errorMessage": ""})
	assert.True(t, flagged)
	assert.NotEmpty(t, msg)

	_, flagged = ErrorFlag(map[string]interface{}{"error": false})
	assert.False(t, flagged)

	_, flagged = ErrorFlag(map[string]interface{}{"title": "Plan"})
	assert.False(t, flagged)

	// A non-boolean error field is not a declared failure.
	_, flagged = ErrorFlag(map[string]interface{}{"error": "true"})
	assert.False(t, flagged)
}

// Translating must be lossless for the source: parsing a response and
// re-encoding it preserves every key, so the original/translated toggle never
// mutates stored content.
func TestParseObjectPreservesShape(t *testing.T) {
	source := `{"title":"Plan","sections":[{"title":"Diet","items":[{"subtitle":"Hydrate","description":"Drink water."}]}],"note":"General guidance."}`

	obj, err := ParseObject(source)
	require.NoError(t, err)

	encoded, err := json.Marshal(obj)
	require.NoError(t, err)

	var a, b map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(source), &a))
	require.NoError(t, json.Unmarshal(encoded, &b))
	assert.Equal(t, a, b)
}
