package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/metinatakli/movie-checkout/internal/mailer"
	"github.com/metinatakli/movie-checkout/internal/queue"
	"github.com/metinatakli/movie-checkout/internal/vcs"
)

type config struct {
	amqpURL  string
	timeZone string
	smtp     struct {
		host     string
		port     int
		username string
		password string
		sender   string
	}
}

func main() {
	// A missing .env is fine, the environment may be set by the platform.
	_ = godotenv.Load()

	var cfg config

	flag.StringVar(&cfg.amqpURL, "amqp-url", os.Getenv("AMQP_URL"), "RabbitMQ URL")
	flag.StringVar(&cfg.timeZone, "timezone", "Asia/Seoul", "Time zone that screening times are rendered in")

	flag.StringVar(&cfg.smtp.host, "smtp-host", os.Getenv("SMTP_HOST"), "SMTP host")
	flag.IntVar(&cfg.smtp.port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.smtp.username, "smtp-username", os.Getenv("SMTP_USERNAME"), "SMTP username")
	flag.StringVar(&cfg.smtp.password, "smtp-password", os.Getenv("SMTP_PASSWORD"), "SMTP password")
	flag.StringVar(&cfg.smtp.sender, "smtp-sender", "Movie Checkout <no-reply@moviecheckout.example>", "SMTP sender")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", vcs.Version())
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(cfg, logger); err != nil {
		logger.Error("notifier stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config, logger *slog.Logger) error {
	if cfg.amqpURL == "" {
		return errors.New("amqp url is required")
	}

	loc, err := time.LoadLocation(cfg.timeZone)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := mailer.NewSMTPMailer(cfg.smtp.host, cfg.smtp.port, cfg.smtp.username, cfg.smtp.password, cfg.smtp.sender)
	notifier := queue.NewMailNotifier(m, loc, logger)

	logger.Info("starting notifier", "version", vcs.Version())

	return queue.NewConsumer(cfg.amqpURL, notifier, logger).Run(ctx)
}
