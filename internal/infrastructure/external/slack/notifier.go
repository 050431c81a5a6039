package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fivemlab/commute-expense/internal/application/port"
	"github.com/fivemlab/commute-expense/internal/expense"
)

const defaultTimeout = 10 * time.Second

// Notifier posts submission notices to a Slack incoming webhook.
// Implements port.Notifier interface
type Notifier struct {
	webhookURL string
	appURL     string
	client     *http.Client
	logger     *zap.Logger
}

// NewNotifier creates a new Slack webhook notifier. appURL is the address
// linked from the review button in the message.
func NewNotifier(webhookURL, appURL string, timeout time.Duration, logger *zap.Logger) *Notifier {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Notifier{
		webhookURL: webhookURL,
		appURL:     appURL,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// message is the Slack webhook payload: a fallback text plus Block Kit blocks.
type message struct {
	Text   string  `json:"text"`
	Blocks []block `json:"blocks"`
}

type block struct {
	Type     string        `json:"type"`
	Text     *blockText    `json:"text,omitempty"`
	Fields   []blockText   `json:"fields,omitempty"`
	Elements []interface{} `json:"elements,omitempty"`
}

type blockText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// button is an actions-block element. Context blocks take blockText
// elements directly.
type button struct {
	Type  string    `json:"type"`
	Text  blockText `json:"text"`
	URL   string    `json:"url"`
	Style string    `json:"style,omitempty"`
}

// NotifySubmission sends the notice to the configured webhook.
// Implements port.Notifier interface
func (n *Notifier) NotifySubmission(ctx context.Context, notice port.SubmissionNotice) error {
	if n.webhookURL == "" {
		return fmt.Errorf("webhook URL not configured")
	}

	payload, err := json.Marshal(n.buildMessage(notice))
	if err != nil {
		return fmt.Errorf("marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post slack message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("slack webhook returned %d: %s", resp.StatusCode, string(body))
	}

	n.logger.Info("Slack notification sent",
		zap.String("applicant", notice.ApplicantName),
		zap.Int("items", notice.ItemCount))
	return nil
}

func (n *Notifier) buildMessage(notice port.SubmissionNotice) message {
	total := expense.FormatAmount(strconv.FormatInt(notice.TotalAmount, 10))
	if total == "" {
		total = "0"
	}

	msg := message{
		Text: "💰 新しい交通費申請がありました！",
		Blocks: []block{
			{
				Type: "header",
				Text: &blockText{Type: "plain_text", Text: "💰 新しい交通費申請"},
			},
			{
				Type: "section",
				Fields: []blockText{
					{Type: "mrkdwn", Text: fmt.Sprintf("*申請者:*\n%s", notice.ApplicantName)},
					{Type: "mrkdwn", Text: fmt.Sprintf("*申請日:*\n%s", notice.Date)},
					{Type: "mrkdwn", Text: fmt.Sprintf("*合計金額:*\n¥%s", total)},
					{Type: "mrkdwn", Text: fmt.Sprintf("*項目数:*\n%d件", notice.ItemCount)},
				},
			},
			{
				Type: "section",
				Text: &blockText{Type: "mrkdwn", Text: fmt.Sprintf("*申請内容:*\n%s", itemizeLines(notice))},
			},
		},
	}

	if n.appURL != "" {
		msg.Blocks = append(msg.Blocks, block{
			Type: "actions",
			Elements: []interface{}{
				button{
					Type:  "button",
					Text:  blockText{Type: "plain_text", Text: "📋 申請を確認・承認"},
					URL:   n.appURL,
					Style: "primary",
				},
			},
		})
	}

	msg.Blocks = append(msg.Blocks, block{
		Type: "context",
		Elements: []interface{}{
			blockText{Type: "mrkdwn", Text: "交通費精算システムからの自動通知"},
		},
	})
	return msg
}

// itemizeLines renders one numbered entry per expense line.
func itemizeLines(notice port.SubmissionNotice) string {
	entries := make([]string, 0, len(notice.Lines))
	for i, line := range notice.Lines {
		entry := fmt.Sprintf("%d. *%s* (%s)\n   %s → %s: *%s円*",
			i+1, line.KindLabel(), line.DateLabel(), line.From, line.To, line.Amount)
		if line.Notes != "" {
			entry += fmt.Sprintf("\n   備考: %s", line.Notes)
		}
		entries = append(entries, entry)
	}
	return strings.Join(entries, "\n\n")
}
