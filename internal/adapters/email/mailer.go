package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"eventhub/internal/domain"
)

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// MailerConfig holds configuration for creating a mailer.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// NewMailer creates a mailer from config. Provider "ses" uses AWS SES; "noop" or unknown uses a no-op mailer.
func NewMailer(config MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	switch config.Provider {
	case "ses":
		if config.FromAddress == "" {
			return nil, fmt.Errorf("ses mailer requires a from address")
		}
		if config.SES.InsecureSkipVerify {
			logger.Warn("TLS certificate verification is disabled for SES; use only in development")
		}
		httpClient := &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: config.SES.InsecureSkipVerify,
					MinVersion:         tls.VersionTLS12,
				},
			},
		}
		awsCfg := aws.Config{
			Region: config.SES.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(config.SES.AccessKeyID, config.SES.SecretAccessKey, ""),
			),
			HTTPClient: httpClient,
		}
		return &sesMailer{
			client:      ses.NewFromConfig(awsCfg),
			fromAddress: config.FromAddress,
			fromName:    config.FromName,
			logger:      logger,
		}, nil
	case "noop", "":
		return &noopMailer{logger: logger}, nil
	default:
		logger.Warn("unknown email provider, using noop", "provider", config.Provider)
		return &noopMailer{logger: logger}, nil
	}
}

// sesAPI is the subset of the SES client the mailer uses.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type sesMailer struct {
	client      sesAPI
	fromAddress string
	fromName    string
	logger      *slog.Logger
}

func (s *sesMailer) Send(to, subject, html, text string) error {
	input := buildSendEmailInput(s.source(), to, subject, html, text)
	result, err := s.client.SendEmail(context.Background(), input)
	if err != nil {
		return fmt.Errorf("failed to send email via SES: %w", err)
	}
	s.logger.Info("email sent via SES", "message_id", aws.ToString(result.MessageId))
	return nil
}

func (s *sesMailer) source() string {
	if s.fromName != "" {
		return fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	}
	return s.fromAddress
}

func buildSendEmailInput(source, to, subject, html, text string) *ses.SendEmailInput {
	input := &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: utf8Content(subject),
			Body:    &types.Body{},
		},
	}
	if html != "" {
		input.Message.Body.Html = utf8Content(html)
	}
	if text != "" {
		input.Message.Body.Text = utf8Content(text)
	}
	return input
}

func utf8Content(s string) *types.Content {
	return &types.Content{Data: aws.String(s), Charset: aws.String("UTF-8")}
}

type noopMailer struct {
	logger *slog.Logger
}

func (n *noopMailer) Send(to, subject, html, text string) error {
	n.logger.Info("email would be sent (noop)", "to", to, "subject", subject)
	return nil
}
