package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/lightsout-league/pickem/internal/platform/resilience"
)

type stubSender struct {
	sent []*mail.SGMailV3
	resp *rest.Response
	err  error
}

func (s *stubSender) Send(message *mail.SGMailV3) (*rest.Response, error) {
	s.sent = append(s.sent, message)
	if s.resp == nil {
		return &rest.Response{StatusCode: 202}, s.err
	}
	return s.resp, s.err
}

func newTestClient(sender *stubSender) *Client {
	c := NewClient("key", "Lights Out League", "no-reply@lightsout.league", resilience.CircuitBreakerConfig{})
	c.sender = sender
	return c
}

func TestClient_SendVerificationCode(t *testing.T) {
	t.Parallel()

	sender := &stubSender{}
	c := newTestClient(sender)

	if err := c.SendVerificationCode(context.Background(), "racer@example.com", "123456"); err != nil {
		t.Fatalf("SendVerificationCode() error = %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}

	msg := sender.sent[0]
	if msg.From.Address != "no-reply@lightsout.league" {
		t.Fatalf("from = %q", msg.From.Address)
	}
	if got := msg.Personalizations[0].To[0].Address; got != "racer@example.com" {
		t.Fatalf("to = %q", got)
	}
	var html string
	for _, content := range msg.Content {
		if content.Type == "text/html" {
			html = content.Value
		}
	}
	if !strings.Contains(html, "123456") {
		t.Fatalf("html body missing code: %q", html)
	}
}

func TestClient_SendPasswordResetEmbedsLink(t *testing.T) {
	t.Parallel()

	sender := &stubSender{}
	c := newTestClient(sender)

	link := "https://lightsout.league/reset-password?token=abc"
	if err := c.SendPasswordReset(context.Background(), "racer@example.com", link); err != nil {
		t.Fatalf("SendPasswordReset() error = %v", err)
	}

	var html string
	for _, content := range sender.sent[0].Content {
		if content.Type == "text/html" {
			html = content.Value
		}
	}
	if !strings.Contains(html, link) {
		t.Fatalf("html body missing reset link: %q", html)
	}
}

func TestClient_SendReportsProviderErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		stub *stubSender
	}{
		{"transport error", &stubSender{err: errors.New("dial tcp: timeout")}},
		{"rejected request", &stubSender{resp: &rest.Response{StatusCode: 400, Body: "bad payload"}}},
		{"provider outage", &stubSender{resp: &rest.Response{StatusCode: 503}}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(tc.stub)
			if err := c.SendVerificationCode(context.Background(), "racer@example.com", "000000"); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestClient_BreakerOpensAfterRepeatedOutages(t *testing.T) {
	t.Parallel()

	sender := &stubSender{resp: &rest.Response{StatusCode: 502}}
	c := NewClient("key", "Lights Out League", "no-reply@lightsout.league", resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
	})
	c.sender = sender

	for i := 0; i < 2; i++ {
		if err := c.SendVerificationCode(context.Background(), "racer@example.com", "000000"); err == nil {
			t.Fatal("expected error while provider is down")
		}
	}

	before := len(sender.sent)
	if err := c.SendVerificationCode(context.Background(), "racer@example.com", "000000"); err == nil {
		t.Fatal("expected breaker rejection")
	}
	if len(sender.sent) != before {
		t.Fatal("breaker should have short-circuited the send")
	}
}
