package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService handles sending transactional email via Amazon SES.
// Runs disabled when no from-address is configured, so local development
// needs no AWS credentials.
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWelcomeEmail sends a welcome email to new users
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): welcome to %s", toEmail)
		return nil
	}

	if toName == "" {
		toName = "there"
	}

	subject := "Welcome to SessionLog"
	htmlBody := fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; color: #333; line-height: 1.6;">
	<h2>Welcome to SessionLog!</h2>
	<p>Hi %s,</p>
	<p>Your account is ready. Log a practice session and SessionLog will start
	building your practice heatmap, streaks and song statistics.</p>
	<p>A few things to try first:</p>
	<ul>
		<li>Add the songs you are working on, with target tempos</li>
		<li>Log each practice session, down to the song section</li>
		<li>Set a daily or weekly practice goal</li>
	</ul>
	<p><a href="%s">Open SessionLog</a></p>
	<p style="font-size: 12px; color: #666;">This is an automated email. Please do not reply.</p>
</body>
</html>`, toName, s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

Your SessionLog account is ready. Log a practice session and SessionLog will
start building your practice heatmap, streaks and song statistics.

A few things to try first:
- Add the songs you are working on, with target tempos
- Log each practice session, down to the song section
- Set a daily or weekly practice goal

Open SessionLog: %s

This is an automated email. Please do not reply.
`, toName, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendPasswordResetEmail sends a password reset email with a reset link
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, toName, resetToken string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): password reset to %s", toEmail)
		return nil
	}

	if toName == "" {
		toName = "there"
	}
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.appBaseURL, resetToken)

	subject := "Reset your SessionLog password"
	htmlBody := fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; color: #333; line-height: 1.6;">
	<h2>Password reset</h2>
	<p>Hi %s,</p>
	<p>We received a request to reset your SessionLog password. Use the link
	below to choose a new one:</p>
	<p><a href="%s">Reset password</a></p>
	<p>Or paste this link into your browser:</p>
	<p style="word-break: break-all; font-size: 12px; color: #666;">%s</p>
	<p><strong>This link expires in 1 hour.</strong></p>
	<p>If you did not request a reset, you can safely ignore this email.</p>
</body>
</html>`, toName, resetLink, resetLink)

	textBody := fmt.Sprintf(`Hi %s,

We received a request to reset your SessionLog password. Use the link below
to choose a new one:

%s

This link expires in 1 hour.

If you did not request a reset, you can safely ignore this email.
`, toName, resetLink)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendWeeklyDigestEmail sends a summary of the past week's practice
func (s *EmailService) SendWeeklyDigestEmail(ctx context.Context, toEmail, toName string, weekMinutes, weekSessions, currentStreak int) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): weekly digest to %s", toEmail)
		return nil
	}

	if toName == "" {
		toName = "there"
	}

	subject := "Your week in practice"
	htmlBody := fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; color: #333; line-height: 1.6;">
	<h2>Your week in practice</h2>
	<p>Hi %s,</p>
	<p>Here is how your practice went over the last seven days:</p>
	<ul>
		<li><strong>%d minutes</strong> practiced</li>
		<li><strong>%d sessions</strong> logged</li>
		<li>Current streak: <strong>%d days</strong></li>
	</ul>
	<p><a href="%s">See the full breakdown</a></p>
	<p style="font-size: 12px; color: #666;">This is an automated email. Please do not reply.</p>
</body>
</html>`, toName, weekMinutes, weekSessions, currentStreak, s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

Here is how your practice went over the last seven days:

- %d minutes practiced
- %d sessions logged
- Current streak: %d days

See the full breakdown: %s

This is an automated email. Please do not reply.
`, toName, weekMinutes, weekSessions, currentStreak, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent: to=%s, subject=%s", toEmail, subject)
	return nil
}
