// Command wordpan serves the flashcard translation API.
//
// Model provider settings are read from the environment, see
// crews/base.LoadLLMConfig. Server settings:
//
//	WORDPAN_API_TOKENS    - comma separated bearer tokens (default: accept any token)
//	WORDPAN_REDIS_ADDR    - Redis address enabling the translation cache and the
//	                        shared rate limit budget (optional)
//	WORDPAN_REDIS_PASSWORD
//	WORDPAN_CACHE_TTL     - cached translation lifetime (default: "24h")
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"goa.design/clue/debug"
	"goa.design/clue/log"
	"goa.design/pulse/rmap"

	"github.com/vmakoed/wordpan/crews/base"
	"github.com/vmakoed/wordpan/crews/translateflashcard"
	genflashcards "github.com/vmakoed/wordpan/gen/flashcards"
	rediscache "github.com/vmakoed/wordpan/features/cache/redis"
	"github.com/vmakoed/wordpan/runtime/agent/telemetry"
	"github.com/vmakoed/wordpan/service/flashcards"
)

type serverConfig struct {
	Tokens        []string
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration
}

func main() {
	var (
		httpPortF = flag.String("http-port", "8000", "HTTP port")
		dbgF      = flag.Bool("debug", false, "Log request and response bodies")
	)
	flag.Parse()

	format := log.FormatJSON
	if log.IsTerminal() {
		format = log.FormatTerminal
	}
	ctx := log.Context(context.Background(), log.WithFormat(format))
	if *dbgF {
		ctx = log.Context(ctx, log.WithDebug())
		log.Debugf(ctx, "debug logs enabled")
	}
	log.Print(ctx, log.KV{K: "http-port", V: *httpPortF})

	cfg := loadServerConfig()
	llmCfg, err := base.LoadLLMConfig()
	if err != nil {
		log.Fatalf(ctx, err, "invalid model configuration")
	}
	log.Print(ctx, log.KV{K: "provider", V: llmCfg.Provider}, log.KV{K: "model", V: llmCfg.Model})

	var (
		cache   flashcards.Cache
		cluster *rmap.Map
	)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Printf(ctx, "close redis: %v", err)
			}
		}()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf(ctx, err, "connect to redis at %q", cfg.RedisAddr)
		}
		c, err := rediscache.New(rdb, rediscache.Options{TTL: cfg.CacheTTL})
		if err != nil {
			log.Fatalf(ctx, err, "create translation cache")
		}
		cache = c
		cluster, err = rmap.Join(ctx, "wordpan-ratelimit", rdb)
		if err != nil {
			log.Fatalf(ctx, err, "join rate limit map")
		}
		defer cluster.Close()
	}

	ctx, cancel := context.WithCancel(ctx)

	var auth flashcards.Authenticator = flashcards.AnyToken{}
	if len(cfg.Tokens) > 0 {
		auth = flashcards.StaticTokens(cfg.Tokens)
	} else {
		log.Printf(ctx, "WORDPAN_API_TOKENS not set: accepting any bearer token")
	}

	var svc *flashcards.Service
	{
		var (
			logger  = telemetry.NewClueLogger()
			metrics = telemetry.NewClueMetrics()
		)
		llm, err := base.DefaultLLM(ctx, llmCfg, base.LLMOptions{Cluster: cluster, Logger: logger, Metrics: metrics})
		if err != nil {
			log.Fatalf(ctx, err, "create model client")
		}
		translator, err := translateflashcard.New(llm, translateflashcard.Options{
			Logger:  logger,
			Metrics: metrics,
			Tracer:  telemetry.NewClueTracer(),
		})
		if err != nil {
			log.Fatalf(ctx, err, "create translation crew")
		}
		svc, err = flashcards.NewService(flashcards.ServiceOptions{Translator: translator, Cache: cache, Auth: auth})
		if err != nil {
			log.Fatalf(ctx, err, "create service")
		}
	}

	// Wrap the service in endpoints that can be invoked from other services
	// potentially running in different processes.
	var endpoints *genflashcards.Endpoints
	{
		endpoints = genflashcards.NewEndpoints(svc)
		endpoints.Use(debug.LogPayloads())
		endpoints.Use(log.Endpoint)
	}

	// Create channel used by both the signal handler and server goroutines
	// to notify the main goroutine when to stop the server. It is buffered so
	// the listener can report http.ErrServerClosed after main stopped reading.
	errc := make(chan error, 2)

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errc <- fmt.Errorf("%s", <-c)
	}()

	var wg sync.WaitGroup
	handleHTTPServer(ctx, ":"+*httpPortF, endpoints, &wg, errc, *dbgF)

	// Wait for signal.
	log.Printf(ctx, "exiting (%v)", <-errc)

	// Send cancellation signal to the goroutines.
	cancel()

	wg.Wait()
	log.Printf(ctx, "exited")
}

func loadServerConfig() *serverConfig {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("WORDPAN_CACHE_TTL", "24h")
	return &serverConfig{
		Tokens:        splitList(v.GetString("WORDPAN_API_TOKENS")),
		RedisAddr:     strings.TrimSpace(v.GetString("WORDPAN_REDIS_ADDR")),
		RedisPassword: v.GetString("WORDPAN_REDIS_PASSWORD"),
		CacheTTL:      v.GetDuration("WORDPAN_CACHE_TTL"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
