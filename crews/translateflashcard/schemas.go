package translateflashcard

import (
	_ "embed"

	"github.com/vmakoed/wordpan/runtime/crew"
)

// TranslationOutput is the structured result of the translation task.
type TranslationOutput struct {
	// Translation is the translated text in the target language.
	Translation string `json:"translation"`
}

//go:embed schemas/translation_output.json
var translationOutputSchema []byte

// TranslationSchema constrains the output of the translation task.
var TranslationSchema = crew.MustOutputSchema(
	"translation_output",
	"The translated text in the target language",
	translationOutputSchema,
)

// ParseTranslation validates raw model text against TranslationSchema and
// returns the decoded output. Validation failures are *crew.ValidationError.
func ParseTranslation(raw string) (*TranslationOutput, error) {
	doc, err := TranslationSchema.Validate(raw)
	if err != nil {
		return nil, err
	}
	return crew.Decode[TranslationOutput](&crew.TaskOutput{Task: TaskName, Raw: raw, JSON: doc})
}
