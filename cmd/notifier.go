/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/car-service/apiserver/config"
	"github.com/car-service/apiserver/internal/mq"
	"github.com/car-service/apiserver/internal/notifier"
)

// notifierCmd represents the notifier worker command. It consumes
// queued notifications and delivers them over SMTP.
var notifierCmd = &cobra.Command{
	Use:   "notifier",
	Short: "Starts the notification delivery worker",
	Long: `Starts the notification delivery worker. Usage:

	carservice notifier
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() {
			_ = logger.Sync()
		}()

		queue, err := newWorkerQueue(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() {
			_ = queue.Close()
		}()

		sender, err := notifier.NewSMTPNotifier(cfg.SMTP)
		if err != nil {
			return fmt.Errorf("init smtp sender: %w", err)
		}

		worker := notifier.NewWorker(queue, sender, logger)
		logger.Info("notifier worker started")
		return worker.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(notifierCmd)
}

func newWorkerQueue(ctx context.Context, cfg config.Config) (*mq.MQ, error) {
	switch cfg.MQ.Backend {
	case "rabbitmq":
		client, err := mq.NewRabbitMQClient(cfg.MQ.RabbitMQ)
		if err != nil {
			return nil, fmt.Errorf("init rabbitmq: %w", err)
		}
		return mq.New(client, notifier.NotificationChannel), nil
	case "pubsub":
		client, err := mq.NewPubSubClient(ctx, cfg.MQ.PubSub)
		if err != nil {
			return nil, fmt.Errorf("init pubsub: %w", err)
		}
		return mq.New(client, notifier.NotificationChannel), nil
	default:
		return nil, fmt.Errorf("mq backend %q cannot drive the notifier worker", cfg.MQ.Backend)
	}
}
