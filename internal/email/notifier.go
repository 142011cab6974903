package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/hrunx/sprintly-mvp/internal/logger"
	"github.com/hrunx/sprintly-mvp/pkg/config"
)

// MatchNotification carries the details of a high-scoring match for the
// notification email.
type MatchNotification struct {
	CompanyName    string
	InvestorName   string
	InvestorEmail  string
	MatchScore     int
	SectorScore    int
	StageScore     int
	TractionScore  int
	CheckSizeScore int
	GeoScore       int
	ThesisScore    int
	Explanation    string
}

// Notifier sends match notification emails
type Notifier interface {
	SendMatchNotification(ctx context.Context, data MatchNotification) error
	Enabled() bool
}

// sesNotifier delivers notifications through Amazon SES
type sesNotifier struct {
	client    *ses.Client
	from      string
	recipient string
	log       logger.Logger
}

// nopNotifier is used when email is not configured; sends are silently skipped
type nopNotifier struct{}

func (nopNotifier) SendMatchNotification(context.Context, MatchNotification) error { return nil }
func (nopNotifier) Enabled() bool                                                  { return false }

// NewNotifier builds an SES notifier from configuration, falling back to a
// no-op notifier when sender or recipient is unset.
func NewNotifier(ctx context.Context, cfg *config.Config, log logger.Logger) (Notifier, error) {
	if !cfg.HasEmailNotifications() {
		log.Warn("email notifications disabled", "reason", "EMAIL_FROM or NOTIFICATION_EMAIL not set")
		return nopNotifier{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &sesNotifier{
		client:    ses.NewFromConfig(awsCfg),
		from:      cfg.EmailFrom,
		recipient: cfg.NotificationEmail,
		log:       log,
	}, nil
}

func (n *sesNotifier) Enabled() bool { return true }

// SendMatchNotification emails a summary of a high-scoring match
func (n *sesNotifier) SendMatchNotification(ctx context.Context, data MatchNotification) error {
	subject := fmt.Sprintf("High-Quality Match Found: %s (%d%% match)", data.InvestorName, data.MatchScore)

	input := &ses.SendEmailInput{
		Source: aws.String(n.from),
		Destination: &types.Destination{
			ToAddresses: []string{n.recipient},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(renderMatchText(data)),
					Charset: aws.String("UTF-8"),
				},
				Html: &types.Content{
					Data:    aws.String(renderMatchHTML(data)),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send match notification: %w", err)
	}

	n.log.Info("match notification sent",
		"company", data.CompanyName,
		"investor", data.InvestorName,
		"score", data.MatchScore,
	)
	return nil
}

func renderMatchText(data MatchNotification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "High-quality match found.\n\n")
	fmt.Fprintf(&b, "Company:  %s\n", data.CompanyName)
	fmt.Fprintf(&b, "Investor: %s\n", data.InvestorName)
	if data.InvestorEmail != "" {
		fmt.Fprintf(&b, "Contact:  %s\n", data.InvestorEmail)
	}
	fmt.Fprintf(&b, "\nOverall score: %d%%\n\n", data.MatchScore)
	fmt.Fprintf(&b, "Sector:     %d%%\n", data.SectorScore)
	fmt.Fprintf(&b, "Stage:      %d%%\n", data.StageScore)
	fmt.Fprintf(&b, "Traction:   %d%%\n", data.TractionScore)
	fmt.Fprintf(&b, "Check size: %d%%\n", data.CheckSizeScore)
	fmt.Fprintf(&b, "Geography:  %d%%\n", data.GeoScore)
	fmt.Fprintf(&b, "Thesis:     %d%%\n", data.ThesisScore)
	if data.Explanation != "" {
		fmt.Fprintf(&b, "\n%s\n", data.Explanation)
	}
	return b.String()
}

func renderMatchHTML(data MatchNotification) string {
	var b strings.Builder
	b.WriteString("<html><body style=\"font-family: sans-serif; color: #333;\">")
	b.WriteString("<h2>High-Quality Match Found</h2>")
	fmt.Fprintf(&b, "<p style=\"font-size: 32px; font-weight: bold; color: #10b981;\">%d%%</p>", data.MatchScore)
	fmt.Fprintf(&b, "<p><strong>Company:</strong> %s<br>", data.CompanyName)
	fmt.Fprintf(&b, "<strong>Investor:</strong> %s", data.InvestorName)
	if data.InvestorEmail != "" {
		fmt.Fprintf(&b, "<br><strong>Contact:</strong> %s", data.InvestorEmail)
	}
	b.WriteString("</p><table cellpadding=\"6\" style=\"border-collapse: collapse;\">")
	rows := []struct {
		label string
		score int
	}{
		{"Sector", data.SectorScore},
		{"Stage", data.StageScore},
		{"Traction", data.TractionScore},
		{"Check size", data.CheckSizeScore},
		{"Geography", data.GeoScore},
		{"Thesis", data.ThesisScore},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "<tr><td style=\"color: #6b7280;\">%s</td><td><strong>%d%%</strong></td></tr>", row.label, row.score)
	}
	b.WriteString("</table>")
	if data.Explanation != "" {
		fmt.Fprintf(&b, "<p>%s</p>", data.Explanation)
	}
	b.WriteString("</body></html>")
	return b.String()
}
