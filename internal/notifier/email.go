package notifier

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	config "github.com/fiaz291/ecommerce-korean-backend/configs"
)

// Mailer sends transactional email through AWS SES. Send failures are the
// caller's to log; they never roll back the store operation that triggered
// them.
type Mailer struct {
	client *ses.Client
	cfg    config.EmailConfig
	log    *zap.Logger
}

func NewMailer(ctx context.Context, cfg config.EmailConfig, log *zap.Logger) (*Mailer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS SDK config: %w", err)
	}

	return &Mailer{client: ses.NewFromConfig(awsCfg), cfg: cfg, log: log}, nil
}

// SendVerificationEmail mails the 5-digit signup code together with a
// verification link.
func (m *Mailer) SendVerificationEmail(ctx context.Context, email, code string) error {
	link := fmt.Sprintf("%s/verify-email?code=%s&email=%s", m.cfg.VerifyBaseURL, code, email)

	bodyHTML := fmt.Sprintf(`
        <html>
        <body>
            <p>Welcome to THE KOREAN STORE!</p>
            <p>Your verification code is <strong>%s</strong>.</p>
            <p>You can also verify your email by clicking <a href="%s">this link</a>.</p>
            <p>If you did not create an account, you can ignore this email.</p>
        </body>
        </html>`, code, link)

	bodyText := fmt.Sprintf(
		"Welcome to THE KOREAN STORE!\n\nYour verification code is %s.\n\n"+
			"You can also verify your email at: %s\n\n"+
			"If you did not create an account, you can ignore this email.",
		code, link)

	return m.send(ctx, email, "Verify Your Email - THE KOREAN STORE", bodyHTML, bodyText)
}

// SendPasswordResetEmail mails a reset code to an existing account.
func (m *Mailer) SendPasswordResetEmail(ctx context.Context, email, code string) error {
	bodyHTML := fmt.Sprintf(`
        <html>
        <body>
            <p>We received a request to reset your password.</p>
            <p>Your reset code is <strong>%s</strong>.</p>
            <p>If you did not request this, you can ignore this email.</p>
        </body>
        </html>`, code)

	bodyText := fmt.Sprintf(
		"We received a request to reset your password.\n\nYour reset code is %s.\n\n"+
			"If you did not request this, you can ignore this email.", code)

	return m.send(ctx, email, "Password Reset - THE KOREAN STORE", bodyHTML, bodyText)
}

func (m *Mailer) send(ctx context.Context, recipient, subject, bodyHTML, bodyText string) error {
	if m.cfg.SenderEmail == "" {
		return fmt.Errorf("sender email address is not configured")
	}
	if recipient == "" {
		return fmt.Errorf("recipient email address is empty")
	}

	input := &ses.SendEmailInput{
		Source: aws.String(m.cfg.SenderEmail),
		Destination: &types.Destination{
			ToAddresses: []string{recipient},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyHTML),
				},
				Text: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyText),
				},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		m.log.Warn("email send failed", zap.String("recipient", recipient), zap.Error(err))
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info("email sent", zap.String("recipient", recipient), zap.String("subject", subject))
	return nil
}
