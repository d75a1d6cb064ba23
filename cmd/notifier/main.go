package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"culinary-hub/internal/notify"
	"culinary-hub/pkg/cache"
	"culinary-hub/pkg/config"
	"culinary-hub/pkg/logger"
	"culinary-hub/pkg/mailer"
	"culinary-hub/pkg/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()
	defer log.Sync()

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v", err)
		panic(err)
	}
	defer queueClient.Close()

	var m mailer.Mailer
	if cfg.SendGridAPIKey != "" {
		m = mailer.NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailSenderAddress, cfg.MailSenderName)
	} else {
		log.Warn("SENDGRID_API_KEY not set, emails will only be logged")
		m = mailer.NewLogMailer(log)
	}

	var pusher notify.Pusher
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Redis unavailable, live notifications disabled: %v", err)
	} else {
		defer redisClient.Close()
		pusher = notify.NewFeed(redisClient)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := notify.NewHandler(m, pusher, log)
	log.Info("Notifier started")
	if err := queueClient.Consume(ctx, handler.Handle); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Notifier stopped: %v", err)
		os.Exit(1)
	}
	log.Info("Notifier exited")
}
