package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/fivemlab/commute-expense/internal/application/port"
	"github.com/fivemlab/commute-expense/internal/config"
	"github.com/fivemlab/commute-expense/internal/domain/entity"
	"github.com/fivemlab/commute-expense/internal/infrastructure/external/slack"
)

// Isolated test for the Slack webhook. Fires a sample notice at the
// configured webhook without touching the database.
func main() {
	fmt.Println("=== Slack Notification Test ===")
	fmt.Println("This tool posts a sample submission notice to the configured webhook")
	fmt.Println()

	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Slack.WebhookURL == "" {
		fmt.Println("slack.webhook_url is not set (SLACK_WEBHOOK_URL)")
		os.Exit(1)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	notifier := slack.NewNotifier(cfg.Slack.WebhookURL, cfg.Slack.AppURL, cfg.Slack.Timeout, logger)

	notice := port.SubmissionNotice{
		ApplicantName: "テスト太郎",
		Date:          time.Now().Format("2006/01/02"),
		TotalAmount:   1150,
		ItemCount:     2,
		Lines: []entity.ExpenseLine{
			{Kind: entity.KindOneTime, From: "渋谷", To: "新宿", Amount: "150", TravelDate: time.Now().Format("2006-01-02"), Carrier: "JR"},
			{Kind: entity.KindRegular, From: "横浜", To: "品川", Amount: "1000", PeriodStart: "2024-06-01", PeriodEnd: "2024-06-30", Carrier: "京急", Notes: "テスト通知"},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := notifier.NotifySubmission(ctx, notice); err != nil {
		fmt.Printf("FAILED: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("OK: notice delivered, check the Slack channel")
}
