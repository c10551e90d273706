package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"sodexo-webhook/config"
	"sodexo-webhook/logging"
	"sodexo-webhook/lunch"
	"sodexo-webhook/scheduler"
	"sodexo-webhook/sodexo"
	"sodexo-webhook/webhook"
)

func main() {
	cfg, err := config.Load(config.DefaultEnvFile, config.DefaultConfigFile)
	if err != nil {
		// No logger yet.
		_, _ = os.Stderr.WriteString("config error: " + err.Error() +
			", please check that you have defined sodexo_url and webhook_url\n")
		os.Exit(2)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	if cfg.PostTimeDefaulted {
		log.Info("no post_time specified, using default", zap.String("post_time", config.DefaultPostTime))
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("invalid timezone", zap.Error(err))
	}

	httpClient := &http.Client{}
	fetcher := sodexo.NewClient(httpClient, cfg.SourceURL, log)
	poster := webhook.NewClient(httpClient, cfg.WebhookURL)
	runner := lunch.NewRunner(fetcher, poster, loc, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	at := scheduler.ParsePostTime(cfg.PostTime)
	sched := scheduler.New(loc, log)
	sched.Schedule(at, func() {
		// Failures are already logged; the next tick runs on schedule regardless.
		_ = runner.Run(ctx)
	})
	sched.Start()
	log.Info("scheduler started",
		zap.String("post_time", cfg.PostTime),
		zap.Time("next_run", sched.NextRun(time.Now())),
	)

	<-ctx.Done()
	log.Info("shutdown signal received")

	<-sched.Stop().Done()
	log.Info("shutdown complete")
}
