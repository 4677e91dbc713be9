// Package design describes the wordpan HTTP API. Run
//
//	goa gen github.com/vmakoed/wordpan/design
//
// to regenerate the gen/ packages after editing it.
package design

import (
	. "goa.design/goa/v3/dsl"
	cors "goa.design/plugins/v3/cors/dsl"
)

var _ = API("wordpan", func() {
	Title("Wordpan AI API")
	Description("Language model features of the wordpan flashcard app")
	Version("1.0")
	Server("wordpan", func() {
		Services("flashcards")
		Host("localhost", func() {
			URI("http://localhost:8000")
		})
	})
})

// JWTAuth is the session token of the web client, sent as a bearer token.
var JWTAuth = JWTSecurity("jwt", func() {
	Description("Session token issued to the web client")
})

var _ = Service("flashcards", func() {
	Description("Flashcard translation backed by the translate_flashcard crew")

	cors.Origin("*", func() {
		cors.Methods("POST")
		cors.Headers("Authorization", "Content-Type")
		cors.MaxAge(600)
	})

	Error("bad_request", ErrorResult, "Invalid request payload")
	Error("unauthorized", ErrorResult, "Missing or invalid bearer token")

	Method("translate_flashcard", func() {
		Description("Translate flashcard text into the target language")
		Security(JWTAuth)
		Payload(func() {
			Token("token", String, "Bearer session token")
			Attribute("text", String, "Flashcard text to translate", func() {
				Example("good morning")
			})
			Attribute("language", String, "Target language code", func() {
				Example("es")
			})
		})
		Result(func() {
			Attribute("translation", String, "The translated text in the target language", func() {
				Example("buenos días")
			})
			Required("translation")
		})
		Error("invalid_output", ErrorResult, "The model output did not match the translation schema")
		Error("rate_limited", ErrorResult, "The model provider is throttling requests", func() {
			Temporary()
		})

		HTTP(func() {
			POST("/api/translate-flashcard")
			Header("token:Authorization")
			Response(StatusOK)
			Response("bad_request", StatusBadRequest)
			Response("unauthorized", StatusUnauthorized)
			Response("invalid_output", StatusBadGateway)
			Response("rate_limited", StatusTooManyRequests)
		})
	})
})
