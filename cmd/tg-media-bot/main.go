package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/tg-media-bot/internal/bot"
	"github.com/ytget/tg-media-bot/internal/config"
	"github.com/ytget/tg-media-bot/internal/extract"
	"github.com/ytget/tg-media-bot/internal/gateway"
	"github.com/ytget/tg-media-bot/internal/session"
)

const appName = "tg-media-bot"

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	// A local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: configuration: %v\n", appName, err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	logger.Info().Str("version", version).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.DownloadDir).Msg("cannot create download directory")
	}

	// Make sure a yt-dlp binary is available before accepting any work.
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		logger.Fatal().Err(err).Msg("yt-dlp is not available")
	}

	tg, err := gateway.NewTelegram(cfg.TelegramToken, logger.With().Str("component", "gateway").Logger())
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram gateway init failed")
	}

	sessions, err := session.New(cfg.SessionMaxEntries, cfg.SessionTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("session store init failed")
	}

	extractor := extract.NewService(cfg.DownloadDir)

	svc := bot.NewService(tg, extractor, sessions, bot.Options{
		ProbeTimeout: cfg.ProbeTimeout,
		FetchTimeout: cfg.FetchTimeout,
	}, logger.With().Str("component", "bot").Logger())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		svc.Run(ctx, tg.Poll(ctx))
		return nil
	})

	logger.Info().Msg("bot is running")
	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("run failed")
	}
	logger.Info().Msg("shutdown complete")
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out = zerolog.New(os.Stderr)
	if cfg.LogPretty {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return out.Level(level).With().Timestamp().Str("app", appName).Logger()
}
