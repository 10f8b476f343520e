// Package notification sends the next-action digest: a mail listing
// customers whose predicted booking falls due soon, sent after each rebuild.
package notification

import (
	"context"
	"fmt"
	"html/template"
	"net"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"

	"kundekort_backend/internal/cards/domain"
	"kundekort_backend/internal/cards/repository"
	"kundekort_backend/platform/config"
	"kundekort_backend/platform/logger"
)

const digestSubject = "Kommende faste rengøringer"

var digestTemplate = template.Must(template.New("digest").Parse(`<html>
<body>
<h2>Kommende faste rengøringer</h2>
<p>{{len .Cards}} kunder har en næste handling inden {{.Until.Format "02-01-2006"}}.</p>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>Kunde</th><th>Handling</th><th>Forventet dato</th><th>Livstidsværdi</th></tr>
{{range .Cards}}<tr>
<td>{{.Name}}</td>
<td>{{if .NextAction}}{{.NextAction}}{{end}}</td>
<td>{{if .NextActionDue}}{{.NextActionDue.Format "02-01-2006"}}{{end}}</td>
<td>{{printf "%.0f kr" .LifetimeValue}}</td>
</tr>
{{end}}</table>
</body>
</html>`))

// Digest collects due next actions and mails them to the configured
// recipient.
type Digest struct {
	repo repository.Repository
	cfg  config.EmailConfig
	log  *logger.Logger
	now  func() time.Time
}

// NewDigest creates a digest sender.
func NewDigest(repo repository.Repository, cfg config.EmailConfig, log *logger.Logger) *Digest {
	return &Digest{repo: repo, cfg: cfg, log: log, now: time.Now}
}

// Send mails the digest of cards with a next action due inside the
// configured window. It is a no-op when sending is disabled or nothing is
// due.
func (d *Digest) Send(ctx context.Context) error {
	if !d.cfg.GetEmailEnabled() || d.cfg.GetDigestRecipient() == "" {
		d.log.Debug("digest disabled, skipping")
		return nil
	}

	until := d.now().Add(d.cfg.GetDigestWindow())
	cards, err := d.repo.ListCardsWithActionDue(ctx, until)
	if err != nil {
		return fmt.Errorf("list due cards: %w", err)
	}
	if len(cards) == 0 {
		d.log.Debug("no next actions due, skipping digest")
		return nil
	}

	var body strings.Builder
	err = digestTemplate.Execute(&body, struct {
		Cards []domain.CustomerCard
		Until time.Time
	}{Cards: cards, Until: until})
	if err != nil {
		return fmt.Errorf("render digest: %w", err)
	}

	if err := d.send(ctx, body.String()); err != nil {
		return err
	}

	d.log.Info("next-action digest sent", "cards", len(cards), "recipient", d.cfg.GetDigestRecipient())
	return nil
}

func (d *Digest) send(ctx context.Context, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.From(d.cfg.GetEmailFromAddress()); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(d.cfg.GetDigestRecipient()); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(digestSubject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(d.cfg.GetSMTPHost(),
		gomail.WithPort(d.cfg.GetSMTPPort()),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(d.cfg.GetSMTPUsername()),
		gomail.WithPassword(d.cfg.GetSMTPPassword()),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
