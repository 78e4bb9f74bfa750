package notification

import (
	"context"

	"github.com/slack-go/slack"
)

// Sender delivers one notification message to the outbound channel.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SlackWebhookSender delivers messages to a Slack incoming webhook as a
// single colored attachment.
type SlackWebhookSender struct {
	WebhookURL string
}

// Send posts the message to the webhook.
func (s *SlackWebhookSender) Send(ctx context.Context, msg Message) error {
	fields := make([]slack.AttachmentField, len(msg.Fields))
	for i, f := range msg.Fields {
		fields[i] = slack.AttachmentField{
			Title: f.Title,
			Value: f.Value,
			Short: f.Short,
		}
	}

	return slack.PostWebhookContext(ctx, s.WebhookURL, &slack.WebhookMessage{
		Attachments: []slack.Attachment{{
			Color:  msg.Color,
			Title:  msg.Title,
			Fields: fields,
		}},
	})
}
