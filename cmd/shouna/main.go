package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erazemk/shouna/internal/api"
	"github.com/erazemk/shouna/internal/assistant"
	"github.com/erazemk/shouna/internal/auth"
	"github.com/erazemk/shouna/internal/chat"
	"github.com/erazemk/shouna/internal/config"
	"github.com/erazemk/shouna/internal/db"
	"github.com/erazemk/shouna/internal/inventory"
	"github.com/erazemk/shouna/internal/store"
	"github.com/erazemk/shouna/internal/web"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. Production uses JSON lines,
// development the text handler. If logPath is non-empty, all levels are
// also written to that file.
func setupLogger(logPath, env string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	newHandler := func(w io.Writer) slog.Handler { return slog.NewTextHandler(w, opts) }
	if env == "production" {
		newHandler = func(w io.Writer) slog.Handler { return slog.NewJSONHandler(w, opts) }
	}

	slog.SetDefault(slog.New(&levelRouter{
		stdout: newHandler(stdoutW),
		stderr: newHandler(stderrW),
	}))
	return cleanup, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("shouna", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "")
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "")

	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "")
	fs.StringVar(&cfg.LogPath, "l", cfg.LogPath, "")

	fs.StringVar(&cfg.Seed, "seed", cfg.Seed, "")
	fs.StringVar(&cfg.Seed, "s", cfg.Seed, "")

	fs.StringVar(&cfg.Provider, "provider", cfg.Provider, "")
	fs.StringVar(&cfg.Provider, "p", cfg.Provider, "")

	fs.StringVar(&cfg.Model, "model", cfg.Model, "")
	fs.StringVar(&cfg.Model, "m", cfg.Model, "")

	fs.StringVar(&cfg.Password, "password", cfg.Password, "")
	fs.StringVar(&cfg.AnalysisFailure, "analysis-failure", cfg.AnalysisFailure, "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: shouna [flags]

Flags:
  -a, -addr <host:port>       listen address (default: :8080)
  -l, -log <path>             log file path (default: no file, stdout/stderr only)
  -s, -seed <default|none|path>
                              starting catalog (default: built-in sample)
  -p, -provider <name>        assistant provider: gemini or openai (default: gemini)
  -m, -model <name>           model name (default depends on provider)
      -password <phrase>      require this passphrase (default: open access)
      -analysis-failure <silent|notify>
                              report failed photo analyses (default: silent)
  -h, -help                   show this help and exit

Environment:
  GEMINI_API_KEY, OPENAI_API_KEY, OPENAI_BASE_URL and SHOUNA_* variables,
  also read from .env outside production.
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := setupLogger(cfg.LogPath, cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	// The catalog lives for the lifetime of the process.
	database, err := db.Open(db.Memory)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		slog.Error("failed to ensure database schema", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	inv := inventory.New(database)
	if err := loadSeed(ctx, inv, cfg.Seed); err != nil {
		slog.Error("failed to load seed catalog", "seed", cfg.Seed, "error", err)
		os.Exit(1)
	}

	sessionSecret, err := store.GetSessionSecret(ctx, database)
	if err != nil {
		slog.Error("failed to get session secret", "error", err)
		os.Exit(1)
	}

	pass, err := auth.NewPassphrase(cfg.Password)
	if err != nil {
		slog.Error("failed to set up passphrase", "error", err)
		os.Exit(1)
	}

	gateway := assistant.New(newProvider(cfg), assistant.Options{
		Timeout:   cfg.AssistantTimeout,
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL,
	})
	if cfg.APIKey() == "" {
		slog.Warn("no API key configured, photo analysis will fail and chat will use the fallback reply", "provider", cfg.Provider)
	}
	transcript := chat.New(gateway, inv)

	apiRouter := api.NewRouter(api.Deps{
		DB:         database,
		Inventory:  inv,
		Analyzer:   gateway,
		Chat:       transcript,
		Passphrase: pass,
		JWTSecret:  sessionSecret,
	})
	webRouter, err := web.NewRouter(&web.Server{
		DB:                    database,
		Inventory:             inv,
		Analyzer:              gateway,
		Chat:                  transcript,
		Passphrase:            pass,
		JWTSecret:             sessionSecret,
		NotifyAnalysisFailure: cfg.NotifyAnalysisFailure(),
	})
	if err != nil {
		slog.Error("failed to set up web router", "error", err)
		os.Exit(1)
	}

	// Combine: API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("GET /metrics", api.MetricsHandler(pass, sessionSecret, database))
	mux.Handle("/", webRouter)

	handler := api.LoggingMiddleware(mux)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Chat and analysis requests wait on the provider.
		WriteTimeout: cfg.AssistantTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started",
		"addr", cfg.Addr,
		"provider", cfg.Provider,
		"model", cfg.Model,
		"passphrase", pass.Enabled(),
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped, catalog discarded")
}

// loadSeed fills the catalog from the built-in sample, nothing, or a YAML file.
func loadSeed(ctx context.Context, inv *inventory.Inventory, seed string) error {
	var (
		s   *inventory.Seed
		err error
	)
	switch seed {
	case config.SeedNone:
		return nil
	case config.SeedDefault, "":
		s, err = inventory.DefaultSeed()
	default:
		s, err = inventory.LoadSeedFile(seed)
	}
	if err != nil {
		return err
	}
	return inv.Load(ctx, s)
}

func newProvider(cfg *config.Config) assistant.Provider {
	if cfg.Provider == config.ProviderOpenAI {
		return assistant.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model)
	}
	return assistant.NewGemini(cfg.GeminiAPIKey, cfg.Model)
}
