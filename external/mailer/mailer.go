package mailer

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/valyala/bytebufferpool"

	"github.com/lightsout-league/pickem/internal/platform/resilience"
)

// Client sends the league's transactional mail through SendGrid. A
// circuit breaker sheds sends while the provider is failing so request
// handlers do not queue up behind a dead dependency.
type Client struct {
	sender    sender
	fromName  string
	fromEmail string
	breaker   *resilience.CircuitBreaker
}

// sender is the slice of the SendGrid client the mailer uses.
type sender interface {
	Send(message *mail.SGMailV3) (*rest.Response, error)
}

func NewClient(apiKey, fromName, fromEmail string, breakerCfg resilience.CircuitBreakerConfig) *Client {
	breakerCfg = resilience.NormalizeCircuitBreakerConfig(breakerCfg)
	var breaker *resilience.CircuitBreaker
	if breakerCfg.Enabled {
		breaker = resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq)
	}
	return &Client{
		sender:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
		breaker:   breaker,
	}
}

func (c *Client) SendVerificationCode(_ context.Context, email, code string) error {
	html := renderVerificationBody(code)
	plain := fmt.Sprintf("Your Lights Out League verification code is %s. It expires in 10 minutes.", code)
	return c.send(email, "Your verification code", plain, html)
}

func (c *Client) SendPasswordReset(_ context.Context, email, link string) error {
	html := renderPasswordResetBody(link)
	plain := fmt.Sprintf("Reset your Lights Out League password: %s", link)
	return c.send(email, "Reset your password", plain, html)
}

func (c *Client) send(to, subject, plain, html string) error {
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return crerr.Wrap(err, "mail provider unavailable")
		}
	}

	from := mail.NewEmail(c.fromName, c.fromEmail)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), plain, html)

	response, err := c.sender.Send(message)
	if err != nil {
		if c.breaker != nil {
			c.breaker.RecordFailure()
		}
		return crerr.Wrap(err, "send mail")
	}
	if response.StatusCode >= 500 {
		if c.breaker != nil {
			c.breaker.RecordFailure()
		}
		return crerr.Newf("send mail: status %d", response.StatusCode)
	}
	if c.breaker != nil {
		c.breaker.RecordSuccess()
	}
	if response.StatusCode >= 400 {
		return crerr.Newf("send mail: status %d - %s", response.StatusCode, response.Body)
	}
	return nil
}

func renderVerificationBody(code string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString("<html><body>")
	buf.WriteString("<h2>Lights Out League</h2>")
	buf.WriteString("<p>Your verification code is:</p>")
	buf.WriteString(`<p style="font-size:24px;font-weight:bold;letter-spacing:4px">`)
	buf.WriteString(code)
	buf.WriteString("</p>")
	buf.WriteString("<p>The code expires in 10 minutes. If you didn't request it, ignore this email.</p>")
	buf.WriteString("</body></html>")
	return buf.String()
}

func renderPasswordResetBody(link string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString("<html><body>")
	buf.WriteString("<h2>Lights Out League</h2>")
	buf.WriteString("<p>A password reset was requested for your account. The link below is valid for 30 minutes:</p>")
	buf.WriteString(`<p><a href="`)
	buf.WriteString(link)
	buf.WriteString(`">Reset password</a></p>`)
	buf.WriteString("<p>If you didn't request this, you can safely ignore this email.</p>")
	buf.WriteString("</body></html>")
	return buf.String()
}
