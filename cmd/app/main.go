// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telegram-contact-bot/internal/config"
	"telegram-contact-bot/internal/domain/ports/repository"
	tele "telegram-contact-bot/internal/infra/adapters/telegram"
	httpapi "telegram-contact-bot/internal/infra/http"
	"telegram-contact-bot/internal/infra/i18n"
	"telegram-contact-bot/internal/infra/logging"
	"telegram-contact-bot/internal/infra/memory"
	"telegram-contact-bot/internal/infra/metrics"
	red "telegram-contact-bot/internal/infra/redis"
	"telegram-contact-bot/internal/infra/sched"
)

// set with -ldflags "-X main.version=... -X main.commit=..."
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "", "path to optional YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, debug level)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config file] [-dev] <bot-token>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Pass the bot token as unique program argument.")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*cfgPath, flag.Arg(0), *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}
	logger.Info().Str("token", logging.Redact(cfg.Bot.Token, cfg.Runtime.Dev)).Str("version", version).Msg("starting contact bot")

	metrics.MustRegister(nil)
	metrics.SetBuildInfo(version, commit)

	// ---- Forward link store ----
	checks := map[string]httpapi.HealthCheck{}
	var links repository.ForwardLinkRepository
	switch cfg.Store.Backend {
	case config.BackendRedis:
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		links = red.NewForwardLinkRepo(redisClient, cfg.Store.TTL)
		checks["redis"] = redisClient.Ping
	default:
		memLinks := memory.NewForwardLinkRepo(cfg.Store.TTL)
		links = memLinks
		// redis expires keys itself; the in-process map needs a sweep
		sweeper := sched.NewLinkSweeper(time.Hour, memLinks, logger)
		go func() { _ = sweeper.Run(ctx) }()
	}
	logger.Info().Str("backend", cfg.Store.Backend).Dur("ttl", cfg.Store.TTL).Msg("forward link store ready")

	translator, err := i18n.NewTranslator(i18n.LocalesFS, i18n.DefaultLang)
	if err != nil {
		logger.Fatal().Err(err).Msg("i18n")
	}

	// ---- Telegram ----
	botAdapter, err := tele.NewRealTelegramBotAdapter(&cfg.Bot, links, translator, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}
	go func() {
		if err := botAdapter.StartPolling(ctx); err != nil {
			logger.Error().Err(err).Msg("telegram polling stopped")
		}
	}()

	// ---- Ops HTTP server ----
	var ops *httpapi.Server
	if cfg.Metrics.Addr != "" {
		ops = httpapi.NewServer(cfg.Metrics.Addr, nil, checks, logger)
		go func() {
			if err := ops.Start(); err != nil {
				logger.Error().Err(err).Msg("ops http server error")
			}
		}()
	}

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	botAdapter.StopPolling()
	cancel()

	if ops != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := ops.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("ops http server shutdown")
		}
	}
}
