package flashcards

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	goahttp "goa.design/goa/v3/http"
	goa "goa.design/goa/v3/pkg"
)

type (
	// Authenticator validates bearer tokens.
	Authenticator interface {
		Authenticate(ctx context.Context, token string) error
	}

	// StaticTokens accepts a fixed set of tokens.
	StaticTokens []string

	// AnyToken accepts any non-empty token. It only checks that the client
	// sent credentials, leaving verification to an upstream gateway.
	AnyToken struct{}

	// ErrorBody is the {"error": message} body written for every failed
	// request.
	ErrorBody struct {
		Error  string `json:"error"`
		status int
	}
)

// StatusCode implements goahttp.Statuser.
func (b *ErrorBody) StatusCode() int { return b.status }

// FormatError renders err as an ErrorBody. It is the error formatter of the
// generated HTTP server: designed errors keep the status declared in the
// design, other errors get the status returned here. Messages of internal
// failures are not exposed.
func FormatError(_ context.Context, err error) goahttp.Statuser {
	var se *goa.ServiceError
	if !errors.As(err, &se) {
		if errors.Is(err, context.DeadlineExceeded) {
			return &ErrorBody{Error: "translation timed out", status: http.StatusGatewayTimeout}
		}
		return &ErrorBody{Error: "internal server error", status: http.StatusInternalServerError}
	}
	switch se.Name {
	case "bad_request", goa.MissingField, goa.InvalidLength, goa.InvalidPattern:
		return &ErrorBody{Error: se.Message, status: http.StatusBadRequest}
	case goa.MissingPayload, goa.DecodePayload:
		return &ErrorBody{Error: "invalid request body", status: http.StatusBadRequest}
	case goa.UnsupportedMediaType:
		return &ErrorBody{Error: se.Message, status: http.StatusUnsupportedMediaType}
	case "unauthorized":
		return &ErrorBody{Error: se.Message, status: http.StatusUnauthorized}
	case "invalid_output":
		return &ErrorBody{Error: se.Message, status: http.StatusBadGateway}
	case "rate_limited":
		return &ErrorBody{Error: se.Message, status: http.StatusTooManyRequests}
	}
	if se.Timeout {
		return &ErrorBody{Error: "translation timed out", status: http.StatusGatewayTimeout}
	}
	return &ErrorBody{Error: "internal server error", status: http.StatusInternalServerError}
}

// Authenticate implements Authenticator.
func (t StaticTokens) Authenticate(_ context.Context, token string) error {
	for _, want := range t {
		if subtle.ConstantTimeCompare([]byte(want), []byte(token)) == 1 {
			return nil
		}
	}
	return errors.New("unknown token")
}

// Authenticate implements Authenticator.
func (AnyToken) Authenticate(_ context.Context, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	return nil
}
