// Package flashcards exposes the flashcard translation crew to the web client.
package flashcards

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"goa.design/clue/log"
	goa "goa.design/goa/v3/pkg"
	"goa.design/goa/v3/security"

	"github.com/vmakoed/wordpan/crews/translateflashcard"
	genflashcards "github.com/vmakoed/wordpan/gen/flashcards"
	"github.com/vmakoed/wordpan/runtime/agent/model"
	"github.com/vmakoed/wordpan/runtime/crew"
)

// MaxTextLength is the maximum number of characters accepted for translation.
const MaxTextLength = 2000

var languagePattern = regexp.MustCompile(`^[A-Za-z]{2,3}(?:[-_][A-Za-z0-9]{2,8})*$`)

type (
	// Translator translates flashcard text. *translateflashcard.Crew
	// implements it.
	Translator interface {
		Translate(ctx context.Context, text, language string) (*translateflashcard.TranslationOutput, error)
	}

	// Cache stores translations by key. Get reports a miss with ok false and a
	// nil error.
	Cache interface {
		Get(ctx context.Context, key string) (value string, ok bool, err error)
		Set(ctx context.Context, key, value string) error
	}

	// ServiceOptions configures the service.
	ServiceOptions struct {
		// Translator runs the translation crew. Required.
		Translator Translator
		// Cache is optional.
		Cache Cache
		// Auth validates bearer tokens. Defaults to AnyToken.
		Auth Authenticator
	}

	// Service implements the generated flashcards service and its JWT
	// authorization.
	Service struct {
		translator Translator
		cache      Cache
		auth       Authenticator
	}
)

var (
	_ genflashcards.Service = (*Service)(nil)
	_ genflashcards.Auther  = (*Service)(nil)
)

// NewService returns the flashcard service.
func NewService(opts ServiceOptions) (*Service, error) {
	if opts.Translator == nil {
		return nil, errors.New("translator is required")
	}
	auth := opts.Auth
	if auth == nil {
		auth = AnyToken{}
	}
	return &Service{translator: opts.Translator, cache: opts.Cache, auth: auth}, nil
}

// JWTAuth implements genflashcards.Auther. The scheme prefix of the
// Authorization header is already stripped from token.
func (s *Service) JWTAuth(ctx context.Context, token string, _ *security.JWTScheme) (context.Context, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ctx, genflashcards.MakeUnauthorized(errMissingToken)
	}
	if err := s.auth.Authenticate(ctx, token); err != nil {
		log.Debug(ctx, log.KV{K: "msg", V: "bearer token rejected"}, log.KV{K: "err", V: err.Error()})
		return ctx, genflashcards.MakeUnauthorized(errMissingToken)
	}
	return ctx, nil
}

// TranslateFlashcard translates the payload text into the payload language.
func (s *Service) TranslateFlashcard(ctx context.Context, p *genflashcards.TranslateFlashcardPayload) (*genflashcards.TranslateFlashcardResult, error) {
	text, language, err := validatePayload(p)
	if err != nil {
		return nil, err
	}
	key := cacheKey(language, text)
	if s.cache != nil {
		v, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Error(ctx, err, log.KV{K: "msg", V: "translation cache lookup failed"})
		case ok:
			log.Debug(ctx, log.KV{K: "msg", V: "translation cache hit"}, log.KV{K: "language", V: language})
			return &genflashcards.TranslateFlashcardResult{Translation: v}, nil
		}
	}

	out, err := s.translator.Translate(ctx, text, language)
	if err != nil {
		return nil, translateError(ctx, err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, out.Translation); err != nil {
			log.Error(ctx, err, log.KV{K: "msg", V: "translation cache store failed"})
		}
	}
	return &genflashcards.TranslateFlashcardResult{Translation: out.Translation}, nil
}

var errMissingToken = errors.New("missing or invalid bearer token")

func validatePayload(p *genflashcards.TranslateFlashcardPayload) (text, language string, err error) {
	if p == nil {
		return "", "", badRequest("request body is required")
	}
	text = strings.TrimSpace(deref(p.Text))
	language = strings.TrimSpace(deref(p.Language))
	switch {
	case text == "" && language == "":
		return "", "", badRequest("text and language are required")
	case text == "":
		return "", "", badRequest("text is required")
	case language == "":
		return "", "", badRequest("language is required")
	case utf8.RuneCountInString(text) > MaxTextLength:
		return "", "", badRequest("text must be at most %d characters", MaxTextLength)
	case !languagePattern.MatchString(language):
		return "", "", badRequest("language %q is not a valid language code", language)
	}
	return text, language, nil
}

func badRequest(format string, args ...any) error {
	return genflashcards.MakeBadRequest(fmt.Errorf(format, args...))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// translateError maps crew failures to service errors. Details of internal
// failures are logged and not returned to the caller.
func translateError(ctx context.Context, err error) error {
	switch {
	case crew.IsValidationError(err):
		log.Error(ctx, err, log.KV{K: "msg", V: "model output failed validation"})
		return genflashcards.MakeInvalidOutput(errors.New("the model returned an invalid translation"))
	case errors.Is(err, model.ErrRateLimited):
		log.Error(ctx, err, log.KV{K: "msg", V: "model provider rate limited"})
		return genflashcards.MakeRateLimited(errors.New("translation service is busy, retry later"))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	log.Error(ctx, err, log.KV{K: "msg", V: "translation failed"})
	return goa.Fault("translation failed")
}

// cacheKey derives the cache key of a translation. The separator cannot
// appear in a valid language code.
func cacheKey(language, text string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(language) + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
