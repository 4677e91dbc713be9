package telemetry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"goa.design/clue/log"
)

func TestKVSliceToClueExtractsError(t *testing.T) {
	boom := errors.New("boom")
	fielders, err := kvSliceToClue("task failed", []any{"task", "translation_task", "err", boom, 42, "skipped", "dangling"})

	require.Equal(t, boom, err)
	require.Len(t, fielders, 3)
	assert.Equal(t, log.KV{K: "msg", V: "task failed"}, fielders[0])
	assert.Equal(t, log.KV{K: "task", V: "translation_task"}, fielders[1])
	assert.Equal(t, log.KV{K: "dangling", V: nil}, fielders[2])
}

func TestKVSliceToClueKeepsNonErrorErrKey(t *testing.T) {
	fielders, err := kvSliceToClue("msg", []any{"err", "not an error"})
	assert.NoError(t, err)
	assert.Equal(t, log.KV{K: "err", V: "not an error"}, fielders[1])
}

func TestTagsToAttrs(t *testing.T) {
	attrs := tagsToAttrs([]string{"crew", "translate_flashcard", "task"})
	assert.Equal(t, []attribute.KeyValue{
		attribute.String("crew", "translate_flashcard"),
		attribute.String("task", ""),
	}, attrs)
}

func TestKVSliceToAttrs(t *testing.T) {
	attrs := kvSliceToAttrs([]any{"s", "v", "i", 3, "b", true, "f", 1.5, "n", nil, "o", []int{1}})
	assert.Equal(t, []attribute.KeyValue{
		attribute.String("s", "v"),
		attribute.Int("i", 3),
		attribute.Bool("b", true),
		attribute.Float64("f", 1.5),
		attribute.String("n", ""),
		attribute.String("o", "[1]"),
	}, attrs)
}
