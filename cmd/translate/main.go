// Command translate runs the flashcard translation crew once and prints the
// validated result as JSON.
//
//	translate -text "good morning" -language es
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"time"

	"goa.design/clue/log"

	"github.com/vmakoed/wordpan/crews/base"
	"github.com/vmakoed/wordpan/crews/translateflashcard"
	"github.com/vmakoed/wordpan/runtime/agent/telemetry"
)

func main() {
	var (
		textF     = flag.String("text", "", "Text to translate")
		languageF = flag.String("language", "", "Target language")
		timeoutF  = flag.Duration("timeout", 2*time.Minute, "Translation timeout")
		dbgF      = flag.Bool("debug", false, "Enable debug logs")
	)
	flag.Parse()

	format := log.FormatJSON
	if log.IsTerminal() {
		format = log.FormatTerminal
	}
	ctx := log.Context(context.Background(), log.WithFormat(format))
	if *dbgF {
		ctx = log.Context(ctx, log.WithDebug())
	}
	if *textF == "" || *languageF == "" {
		log.Fatalf(ctx, errors.New("missing flags"), "both -text and -language are required")
	}

	cfg, err := base.LoadLLMConfig()
	if err != nil {
		log.Fatalf(ctx, err, "invalid model configuration")
	}
	ctx, cancel := context.WithTimeout(ctx, *timeoutF)
	defer cancel()

	logger := telemetry.NewClueLogger()
	llm, err := base.DefaultLLM(ctx, cfg, base.LLMOptions{Logger: logger})
	if err != nil {
		log.Fatalf(ctx, err, "create model client")
	}
	c, err := translateflashcard.New(llm, translateflashcard.Options{Logger: logger})
	if err != nil {
		log.Fatalf(ctx, err, "create translation crew")
	}
	out, err := c.Translate(ctx, *textF, *languageF)
	if err != nil {
		log.Fatalf(ctx, err, "translate")
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf(ctx, err, "encode result")
	}
}
