package translateflashcard

import (
	"encoding/json"
	"testing"
	"unicode"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmakoed/wordpan/runtime/crew"
)

func TestParseTranslation(t *testing.T) {
	out, err := ParseTranslation(`{"translation": "hola"}`)
	require.NoError(t, err)
	assert.Equal(t, &TranslationOutput{Translation: "hola"}, out)

	_, err = ParseTranslation(`{}`)
	require.Error(t, err)
	assert.True(t, crew.IsValidationError(err))

	out, err = ParseTranslation("```json\n{\"translation\": \"\"}\n```")
	require.NoError(t, err)
	assert.Empty(t, out.Translation, "empty strings are valid text")
}

func TestParseTranslationProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	exposesText := func(s string) bool {
		raw, err := json.Marshal(map[string]any{"translation": s})
		if err != nil {
			return false
		}
		out, err := ParseTranslation(string(raw))
		return err == nil && out.Translation == s
	}
	properties.Property("ascii translation text is exposed unchanged", prop.ForAll(exposesText, gen.AsciiString()))
	properties.Property("cyrillic translation text is exposed unchanged", prop.ForAll(exposesText, gen.UnicodeString(unicode.Cyrillic)))
	properties.Property("han translation text is exposed unchanged", prop.ForAll(exposesText, gen.UnicodeString(unicode.Han)))

	properties.Property("extra fields do not hide the translation", prop.ForAll(
		func(s, extra string) bool {
			raw, _ := json.Marshal(map[string]any{"translation": s, "notes": extra})
			out, err := ParseTranslation(string(raw))
			return err == nil && out.Translation == s
		},
		gen.AlphaString(), gen.AlphaString(),
	))

	rejected := func(v any) bool {
		raw, err := json.Marshal(v)
		if err != nil {
			return false
		}
		_, err = ParseTranslation(string(raw))
		return crew.IsValidationError(err)
	}
	properties.Property("missing translation field fails validation", prop.ForAll(
		func(key, value string) bool { return rejected(map[string]any{key: value}) },
		gen.Identifier().SuchThat(func(k string) bool { return k != "translation" }),
		gen.AlphaString(),
	))
	properties.Property("integer translation fails validation", prop.ForAll(
		func(n int) bool { return rejected(map[string]any{"translation": n}) },
		gen.Int(),
	))
	properties.Property("float translation fails validation", prop.ForAll(
		func(f float64) bool { return rejected(map[string]any{"translation": f}) },
		gen.Float64Range(-1e9, 1e9),
	))
	properties.Property("boolean translation fails validation", prop.ForAll(
		func(b bool) bool { return rejected(map[string]any{"translation": b}) },
		gen.Bool(),
	))
	properties.Property("list translation fails validation", prop.ForAll(
		func(ss []string) bool { return rejected(map[string]any{"translation": ss}) },
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
