package zammad

import (
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("defaults", func(t *testing.T) {
		client := NewClient("https://helpdesk.example.com", "agent", "secret", logger)
		assert.Equal(t, "https://helpdesk.example.com", client.Host())
		assert.Equal(t, UserAgent, client.userAgent)
		assert.Equal(t, DefaultTimeout, client.http.GetClient().Timeout)
	})

	t.Run("host is used verbatim", func(t *testing.T) {
		client := NewClient("http://localhost:3000/", "agent", "secret", logger)
		assert.Equal(t, "http://localhost:3000//api/v1/tickets", client.URL(TicketsPath))
	})

	t.Run("url", func(t *testing.T) {
		client := NewClient("https://helpdesk.example.com", "agent", "secret", logger)
		assert.Equal(t, "https://helpdesk.example.com/api/v1/users/me", client.URL(UserMePath))
		assert.Equal(t, "https://helpdesk.example.com/api/v1/ticket_articles/by_ticket/5", client.URL(TicketArticleByTicketPath+"5"))
	})
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client := NewClient("http://localhost", "agent", "secret", logger, WithTimeout(5*time.Second))
		assert.Equal(t, 5*time.Second, client.http.GetClient().Timeout)
	})

	t.Run("negative timeout is ignored", func(t *testing.T) {
		client := NewClient("http://localhost", "agent", "secret", logger, WithTimeout(-time.Second))
		assert.Equal(t, DefaultTimeout, client.http.GetClient().Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client := NewClient("http://localhost", "agent", "secret", logger, WithHTTPClient(custom))
		assert.Same(t, custom, client.http.GetClient())
		assert.Equal(t, 10*time.Second, client.http.GetClient().Timeout)
	})

	t.Run("custom http client with timeout", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client := NewClient("http://localhost", "agent", "secret", logger,
			WithHTTPClient(custom),
			WithTimeout(2*time.Second),
		)
		assert.Equal(t, 2*time.Second, client.http.GetClient().Timeout)
	})

	t.Run("with user agent", func(t *testing.T) {
		client := NewClient("http://localhost", "agent", "secret", logger, WithUserAgent("helpdesk-sync/2.0"))
		assert.Equal(t, "helpdesk-sync/2.0", client.userAgent)
	})

	t.Run("empty user agent keeps default", func(t *testing.T) {
		client := NewClient("http://localhost", "agent", "secret", logger, WithUserAgent(""))
		assert.Equal(t, UserAgent, client.userAgent)
	})
}
