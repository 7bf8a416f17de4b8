package bootstrap

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	appconfig "github.com/wolfman30/rollerup-site/internal/config"
	"github.com/wolfman30/rollerup-site/internal/notify"
	"github.com/wolfman30/rollerup-site/pkg/logging"
)

// Email providers accepted by EMAIL_PROVIDER.
const (
	EmailAuto     = "auto"
	EmailSendGrid = "sendgrid"
	EmailSES      = "ses"
	EmailStub     = "stub"
)

// BuildEmailSender picks the sender for fallback alerts. auto prefers
// SendGrid when an API key is set and otherwise logs through the stub.
func BuildEmailSender(ctx context.Context, cfg *appconfig.Config, loadAWS AWSConfigLoader, logger *logging.Logger) (notify.EmailSender, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	provider := cfg.EmailProvider
	if provider == "" {
		provider = EmailAuto
	}
	sendGridCfg := notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}

	switch provider {
	case EmailAuto:
		if sender := notify.NewSendGridSender(sendGridCfg, logger); sender != nil {
			logger.Info("fallback alerts via sendgrid")
			return sender, nil
		}
		logger.Info("fallback alerts via stub sender")
		return notify.NewStubEmailSender(logger), nil

	case EmailSendGrid:
		sender := notify.NewSendGridSender(sendGridCfg, logger)
		if sender == nil {
			return nil, fmt.Errorf("bootstrap: EMAIL_PROVIDER=sendgrid requires SENDGRID_API_KEY")
		}
		return sender, nil

	case EmailSES:
		if loadAWS == nil {
			return nil, fmt.Errorf("bootstrap: ses sender requires an AWS config loader")
		}
		awsCfg, err := loadAWS(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load aws config: %w", err)
		}
		return notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger), nil

	case EmailStub:
		return notify.NewStubEmailSender(logger), nil

	default:
		return nil, fmt.Errorf("bootstrap: unknown EMAIL_PROVIDER %q", provider)
	}
}
