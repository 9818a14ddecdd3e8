package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-caseform"
	"github.com/goliatone/go-caseform/internal/config"
	"github.com/goliatone/go-caseform/pkg/draft"
	"github.com/goliatone/go-caseform/pkg/layout"
	"github.com/goliatone/go-caseform/pkg/notify"
	"github.com/goliatone/go-caseform/pkg/prompt"
	"github.com/goliatone/go-caseform/pkg/session"
	"github.com/goliatone/go-caseform/pkg/submit"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	caseType := flag.String("case", cfg.CaseType, "case type to open")
	layoutDir := flag.String("layouts", cfg.LayoutDir, "directory of variant layouts (bundled variants if empty)")
	messagesDir := flag.String("messages", cfg.MessagesDir, "directory of notice templates overriding the bundled ones")
	storeKind := flag.String("store", cfg.Store, "draft store: memory, file or redis")
	draftDir := flag.String("drafts", cfg.DraftDir, "draft directory for the file store")
	redisURL := flag.String("redis-url", cfg.Redis.URL, "redis URL for the redis store")
	debounce := flag.Duration("debounce", cfg.Debounce, "quiet period before a draft is saved")
	logLevel := flag.String("log-level", cfg.LogLevel.String(), "debug, info, warn or error")
	metricsFile := flag.String("metrics-file", cfg.MetricsFile, "write prometheus metrics to this textfile on exit")
	list := flag.Bool("list", false, "list case types and exit")
	flag.Parse()

	cfg.CaseType = *caseType
	cfg.LayoutDir = *layoutDir
	cfg.MessagesDir = *messagesDir
	cfg.Store = *storeKind
	cfg.DraftDir = *draftDir
	cfg.Redis.URL = *redisURL
	cfg.Debounce = *debounce
	cfg.MetricsFile = *metricsFile
	if cfg.LogLevel, err = config.ParseLevel(*logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	variants, err := loadVariants(cfg.LayoutDir)
	if err != nil {
		logger.Error("load layouts", "error", err)
		return 1
	}
	if *list {
		for _, ct := range variants.CaseTypes() {
			v, _ := variants.Variant(ct)
			fmt.Printf("%-20s %s\n", ct, v.Title)
		}
		return 0
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("open draft store", "store", cfg.Store, "error", err)
		return 1
	}
	defer closeStore()

	var msgOpts []notify.MessageOption
	if cfg.MessagesDir != "" {
		msgOpts = append(msgOpts, notify.WithMessagesDir(cfg.MessagesDir))
	}
	messages, err := notify.NewMessages(msgOpts...)
	if err != nil {
		logger.Error("load messages", "error", err)
		return 1
	}

	registry := prometheus.NewRegistry()
	metrics := session.NewMetrics(registry)
	runner := prompt.New(prompt.WithLogger(logger))

	opts := []session.Option{
		session.WithStore(store),
		session.WithNotifier(runner.Notifier()),
		session.WithMessages(messages),
		session.WithLogger(logger),
		session.WithMetrics(metrics),
		session.WithSubmitter(submit.NewLogSubmitter(submit.WithLogger(logger))),
		session.WithSaverOptions(draft.WithDelay(cfg.Debounce)),
	}

	sess, err := caseform.OpenVariant(ctx, variants, cfg.CaseType, opts...)
	if errors.Is(err, draft.ErrMalformedDraft) {
		logger.Warn("discarding unreadable draft", "case_type", cfg.CaseType, "error", err)
		if delErr := store.Delete(ctx, draft.Key(cfg.CaseType)); delErr != nil {
			logger.Error("discard draft", "error", delErr)
			return 1
		}
		sess, err = caseform.OpenVariant(ctx, variants, cfg.CaseType, opts...)
	}
	if err != nil {
		logger.Error("open session", "case_type", cfg.CaseType, "error", err)
		return 1
	}

	code := 0
	res, runErr := runner.Run(ctx, sess)
	switch {
	case errors.Is(runErr, prompt.ErrAborted), errors.Is(runErr, context.Canceled):
		logger.Info("aborted; keeping draft", "case_type", cfg.CaseType)
		code = 130
	case runErr != nil:
		logger.Error("prompt", "error", runErr)
		code = 1
	case res.Outcome == prompt.OutcomeSubmitted:
		logger.Info("case submitted", "receipt", res.Receipt.ID)
	default:
		logger.Info("draft kept", "key", sess.Key())
	}

	if err := sess.Close(); err != nil {
		logger.Error("save draft on exit", "error", err)
		code = 1
	}
	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, registry); err != nil {
			logger.Error("write metrics", "path", cfg.MetricsFile, "error", err)
		}
	}
	return code
}

func loadVariants(dir string) (*layout.Store, error) {
	if dir == "" {
		return layout.Default()
	}
	store, err := layout.LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	if store.Empty() {
		return nil, fmt.Errorf("no layouts found in %s", dir)
	}
	return store, nil
}

func openStore(ctx context.Context, cfg config.Config) (draft.Store, func(), error) {
	noop := func() {}
	switch cfg.Store {
	case config.StoreMemory:
		return draft.NewMemoryStore(), noop, nil
	case config.StoreFile:
		store, err := draft.NewFileStore(cfg.DraftDir)
		return store, noop, err
	case config.StoreRedis:
		client, err := newRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		var opts []draft.RedisOption
		if cfg.Redis.TTL > 0 {
			opts = append(opts, draft.WithTTL(cfg.Redis.TTL))
		}
		if cfg.Redis.Namespace != "" {
			opts = append(opts, draft.WithNamespace(cfg.Redis.Namespace))
		}
		return draft.NewRedisStore(client, opts...), func() { _ = client.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

func newRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout+time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}
