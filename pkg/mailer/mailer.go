package mailer

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Mailer sends the one-time passcode mail. It is an interface so the OTP
// handlers can be tested without talking to SES.
type Mailer interface {
	Configured() bool
	SendOTP(ctx context.Context, to, code string) error
}

type SESMailer struct {
	client *ses.Client
	from   string
}

// NewSESMailer builds a mailer from the ambient AWS configuration. An empty
// from address yields an unconfigured mailer; send-otp then answers with
// the same "not configured" failure the frontend already handles.
func NewSESMailer(ctx context.Context, from string) (*SESMailer, error) {
	if from == "" {
		return &SESMailer{}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &SESMailer{
		client: ses.NewFromConfig(cfg),
		from:   from,
	}, nil
}

func (m *SESMailer) Configured() bool {
	return m.client != nil && m.from != ""
}

func (m *SESMailer) SendOTP(ctx context.Context, to, code string) error {
	if !m.Configured() {
		return fmt.Errorf("mailer is not configured")
	}

	subject := "Your OTP Code - DayFlow"
	text := fmt.Sprintf("Your OTP is: %s. It expires in 5 minutes.", code)
	html := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">DayFlow Password Reset</h2>
  <p>Your verification code is:</p>
  <div style="background-color: #f3f4f6; padding: 20px; text-align: center; font-size: 32px; font-weight: bold; letter-spacing: 8px; color: #2563eb; border-radius: 8px; margin: 20px 0;">
    %s
  </div>
  <p style="color: #6b7280; font-size: 14px;">This code will expire in 5 minutes.</p>
  <p style="color: #6b7280; font-size: 14px;">If you didn't request this code, please ignore this email.</p>
</div>`, code)

	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: &m.from,
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: &subject},
			Body: &types.Body{
				Text: &types.Content{Data: &text},
				Html: &types.Content{Data: &html},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}
