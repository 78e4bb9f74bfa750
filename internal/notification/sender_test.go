package notification

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlackWebhookSender_Send(t *testing.T) {
	var received slack.WebhookMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	sender := &SlackWebhookSender{WebhookURL: server.URL}
	err := sender.Send(context.Background(), Message{
		Title: "Blue Ocean Dome (HOH0)",
		Color: "#FFD34F",
		Fields: []Field{
			{Title: "Time Slot", Value: "10:40", Short: true},
			{Title: "Current Status", Value: "Limited ⚠️", Short: true},
		},
	})
	require.NoError(t, err)

	require.Len(t, received.Attachments, 1)
	att := received.Attachments[0]
	assert.Equal(t, "Blue Ocean Dome (HOH0)", att.Title)
	assert.Equal(t, "#FFD34F", att.Color)
	require.Len(t, att.Fields, 2)
	assert.Equal(t, "Time Slot", att.Fields[0].Title)
	assert.Equal(t, "10:40", att.Fields[0].Value)
}

func TestSlackWebhookSender_SendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sender := &SlackWebhookSender{WebhookURL: server.URL}
	err := sender.Send(context.Background(), Message{Title: "x"})
	assert.Error(t, err)
}
