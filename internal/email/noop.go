package email

import "heyprodata_backend/internal/logger"

// NoopProvider logs instead of sending. Used when email is disabled
// (local development, tests).
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) Send(msg *Message) error {
	logger.Debug("email sending disabled, dropping message",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}

func (p *NoopProvider) Close() error {
	return nil
}
