package flashcards

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"goa.design/clue/log"
	goa "goa.design/goa/v3/pkg"

	"github.com/vmakoed/wordpan/crews/translateflashcard"
	genflashcards "github.com/vmakoed/wordpan/gen/flashcards"
	"github.com/vmakoed/wordpan/runtime/agent/model"
	"github.com/vmakoed/wordpan/runtime/crew"
)

type stubTranslator struct {
	mu    sync.Mutex
	out   string
	err   error
	calls []string
}

func (s *stubTranslator) Translate(_ context.Context, text, language string) (*translateflashcard.TranslationOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, language+":"+text)
	if s.err != nil {
		return nil, s.err
	}
	return &translateflashcard.TranslationOutput{Translation: s.out}, nil
}

type memCache struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
	setErr error
}

func newMemCache() *memCache { return &memCache{values: make(map[string]string)} }

func (c *memCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.values[key] = value
	return nil
}

func testContext() context.Context {
	return log.Context(context.Background(), log.WithFormat(log.FormatJSON))
}

func payload(text, language string) *genflashcards.TranslateFlashcardPayload {
	return &genflashcards.TranslateFlashcardPayload{Text: &text, Language: &language}
}

func serviceErrorName(t *testing.T, err error) string {
	t.Helper()
	var se *goa.ServiceError
	require.ErrorAs(t, err, &se)
	return se.Name
}

func TestTranslateFlashcard(t *testing.T) {
	tr := &stubTranslator{out: "hola"}
	svc, err := NewService(ServiceOptions{Translator: tr})
	require.NoError(t, err)

	res, err := svc.TranslateFlashcard(testContext(), payload("  hello ", " es "))
	require.NoError(t, err)
	assert.Equal(t, "hola", res.Translation)
	assert.Equal(t, []string{"es:hello"}, tr.calls)
}

func TestTranslateFlashcardValidation(t *testing.T) {
	svc, err := NewService(ServiceOptions{Translator: &stubTranslator{out: "x"}})
	require.NoError(t, err)

	cases := map[string]struct {
		payload *genflashcards.TranslateFlashcardPayload
		msg     string
	}{
		"nil payload":      {payload: nil, msg: "request body is required"},
		"both missing":     {payload: &genflashcards.TranslateFlashcardPayload{}, msg: "text and language are required"},
		"blank text":       {payload: payload("   ", "es"), msg: "text is required"},
		"missing language": {payload: payload("hello", ""), msg: "language is required"},
		"text too long":    {payload: payload(strings.Repeat("a", MaxTextLength+1), "es"), msg: fmt.Sprintf("at most %d characters", MaxTextLength)},
		"bad language":     {payload: payload("hello", "Spanish!"), msg: "not a valid language code"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.TranslateFlashcard(testContext(), c.payload)
			require.Error(t, err)
			assert.Equal(t, "bad_request", serviceErrorName(t, err))
			assert.Contains(t, err.Error(), c.msg)
		})
	}
}

func TestTranslateFlashcardAcceptsLanguageTags(t *testing.T) {
	svc, err := NewService(ServiceOptions{Translator: &stubTranslator{out: "x"}})
	require.NoError(t, err)
	for _, lang := range []string{"es", "fra", "pt-BR", "zh_Hant", "sr-Latn-RS"} {
		_, err := svc.TranslateFlashcard(testContext(), payload("hello", lang))
		assert.NoError(t, err, lang)
	}
	// Limit counts characters, not bytes.
	_, err = svc.TranslateFlashcard(testContext(), payload(strings.Repeat("я", MaxTextLength), "ru"))
	assert.NoError(t, err)
}

func TestTranslateFlashcardErrors(t *testing.T) {
	cases := map[string]struct {
		err  error
		name string
	}{
		"validation":   {err: &crew.ValidationError{Task: "translation_task", Raw: "{}", Err: errors.New("missing translation")}, name: "invalid_output"},
		"rate limited": {err: fmt.Errorf("crew: %w", model.ErrRateLimited), name: "rate_limited"},
		"other":        {err: errors.New("boom"), name: "fault"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			svc, err := NewService(ServiceOptions{Translator: &stubTranslator{err: c.err}})
			require.NoError(t, err)
			_, err = svc.TranslateFlashcard(testContext(), payload("hello", "es"))
			require.Error(t, err)
			assert.Equal(t, c.name, serviceErrorName(t, err))
			assert.NotContains(t, err.Error(), "boom")
		})
	}
}

func TestTranslateFlashcardCache(t *testing.T) {
	tr := &stubTranslator{out: "hola"}
	cache := newMemCache()
	svc, err := NewService(ServiceOptions{Translator: tr, Cache: cache})
	require.NoError(t, err)
	ctx := testContext()

	for range 3 {
		res, err := svc.TranslateFlashcard(ctx, payload("hello", "es"))
		require.NoError(t, err)
		assert.Equal(t, "hola", res.Translation)
	}
	assert.Len(t, tr.calls, 1)
	assert.Equal(t, "hola", cache.values[cacheKey("es", "hello")])

	// Language codes are case insensitive.
	_, err = svc.TranslateFlashcard(ctx, payload("hello", "ES"))
	require.NoError(t, err)
	assert.Len(t, tr.calls, 1)

	_, err = svc.TranslateFlashcard(ctx, payload("hello", "fr"))
	require.NoError(t, err)
	assert.Len(t, tr.calls, 2)
}

func TestTranslateFlashcardCacheErrorsIgnored(t *testing.T) {
	tr := &stubTranslator{out: "hola"}
	cache := newMemCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	svc, err := NewService(ServiceOptions{Translator: tr, Cache: cache})
	require.NoError(t, err)

	res, err := svc.TranslateFlashcard(testContext(), payload("hello", "es"))
	require.NoError(t, err)
	assert.Equal(t, "hola", res.Translation)
}

func TestValidationFailuresAreNotCached(t *testing.T) {
	cache := newMemCache()
	svc, err := NewService(ServiceOptions{
		Translator: &stubTranslator{err: &crew.ValidationError{Err: errors.New("bad")}},
		Cache:      cache,
	})
	require.NoError(t, err)
	_, err = svc.TranslateFlashcard(testContext(), payload("hello", "es"))
	require.Error(t, err)
	assert.Empty(t, cache.values)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, cacheKey("es", "hello"), cacheKey("ES", "hello"))
	assert.NotEqual(t, cacheKey("es", "hello"), cacheKey("es", "Hello"))
	assert.NotEqual(t, cacheKey("e", "shello"), cacheKey("es", "hello"))
	assert.Len(t, cacheKey("es", "hello"), 64)
}

func TestNewServiceRequiresTranslator(t *testing.T) {
	_, err := NewService(ServiceOptions{})
	assert.Error(t, err)
}

func invalidOutputErr() error {
	return &crew.ValidationError{Task: "translation_task", Raw: "{}", Err: errors.New("missing translation")}
}

func TestJWTAuth(t *testing.T) {
	svc, err := NewService(ServiceOptions{Translator: &stubTranslator{out: "x"}, Auth: StaticTokens{"secret"}})
	require.NoError(t, err)
	ctx := testContext()

	_, err = svc.JWTAuth(ctx, "secret", nil)
	assert.NoError(t, err)
	for _, token := range []string{"", "  ", "wrong"} {
		_, err = svc.JWTAuth(ctx, token, nil)
		require.Error(t, err, token)
		assert.Equal(t, "unauthorized", serviceErrorName(t, err))
	}
}

func TestJWTAuthDefaultsToAnyToken(t *testing.T) {
	svc, err := NewService(ServiceOptions{Translator: &stubTranslator{out: "x"}})
	require.NoError(t, err)
	_, err = svc.JWTAuth(testContext(), "anything", nil)
	assert.NoError(t, err)
	_, err = svc.JWTAuth(testContext(), "", nil)
	assert.Error(t, err)
}
