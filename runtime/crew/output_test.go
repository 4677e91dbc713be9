package crew

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputSchemaValidate(t *testing.T) {
	s := MustOutputSchema("translation_output", "Translated text", []byte(translationSchema))

	cases := map[string]struct {
		raw     string
		want    string
		invalid bool
	}{
		"bare object":        {raw: `{"translation": "hola"}`, want: "hola"},
		"fenced json":        {raw: "```json\n{\"translation\": \"bonjour\"}\n```", want: "bonjour"},
		"fenced no info":     {raw: "```\n{\"translation\": \"hallo\"}\n```", want: "hallo"},
		"surrounding prose":  {raw: "Sure! Here it is: {\"translation\": \"ciao\"} Enjoy.", want: "ciao"},
		"extra fields":       {raw: `{"translation": "olá", "notes": "pt"}`, want: "olá"},
		"empty object":       {raw: `{}`, invalid: true},
		"non-text value":     {raw: `{"translation": 42}`, invalid: true},
		"null value":         {raw: `{"translation": null}`, invalid: true},
		"no json":            {raw: "hola", invalid: true},
		"malformed json":     {raw: `{"translation": "hola"`, invalid: true},
		"top-level array":    {raw: `["hola"]`, invalid: true},
		"array of object":    {raw: `[{"translation": "hola"}]`, invalid: true},
		"fenced array":       {raw: "```json\n[{\"translation\": \"hola\"}]\n```", invalid: true},
		"wrong field name":   {raw: `{"translated": "hola"}`, invalid: true},
		"whitespace padding": {raw: "\n\n  {\"translation\": \" x \"}  \n", want: " x "},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := s.Validate(c.raw)
			if c.invalid {
				require.Error(t, err)
				assert.True(t, IsValidationError(err))
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, c.raw, ve.Raw)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, doc["translation"])
		})
	}
}

func TestNewOutputSchemaErrors(t *testing.T) {
	_, err := NewOutputSchema("", "", []byte(translationSchema))
	assert.ErrorContains(t, err, "name is required")

	_, err = NewOutputSchema("bad", "", []byte(`{"type":`))
	assert.ErrorContains(t, err, "decode")

	_, err = NewOutputSchema("bad", "", []byte(`{"$ref": "#/$defs/missing"}`))
	assert.ErrorContains(t, err, "compile")

	assert.Panics(t, func() { MustOutputSchema("bad", "", []byte(`{`)) })
}

func TestOutputSchemaFormat(t *testing.T) {
	s := MustOutputSchema("translation_output", "Translated text", []byte(translationSchema))
	f := s.Format()
	assert.Equal(t, "translation_output", f.Name)
	assert.Equal(t, "Translated text", f.Description)
	assert.JSONEq(t, translationSchema, string(f.Schema))
	assert.Equal(t, "translation_output", s.Name())
}

func TestDecodeWithoutStructuredOutput(t *testing.T) {
	_, err := Decode[map[string]any](&TaskOutput{Task: "t", Raw: "text"})
	assert.Error(t, err)
	_, err = Decode[map[string]any](nil)
	assert.Error(t, err)
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Task: "translation_task", Err: errNoJSONObject}
	assert.Equal(t, `crew: task "translation_task": invalid output: output does not contain a JSON object`, err.Error())
	assert.ErrorIs(t, err, errNoJSONObject)
}
