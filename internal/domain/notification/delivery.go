package notification

import (
	"github.com/Scalium-Tech/aligned/pkg/logger"
	"go.uber.org/zap"
)

// Deliverer pushes a reminder to the user. Delivery is best-effort: an
// implementation that is unsupported or denied permission no-ops silently.
type Deliverer interface {
	Deliver(userID, title, body string) error
}

// LogDeliverer writes reminders to the log. It stands in for a real push
// channel in environments without one.
type LogDeliverer struct {
	logger *logger.Logger
}

func NewLogDeliverer(log *logger.Logger) *LogDeliverer {
	return &LogDeliverer{logger: log}
}

func (d *LogDeliverer) Deliver(userID, title, body string) error {
	d.logger.Info("reminder delivered",
		zap.String("user_id", userID),
		zap.String("title", title),
		zap.String("body", body))
	return nil
}

// NoopDeliverer drops every reminder, used when notifications are
// disabled.
type NoopDeliverer struct{}

func (NoopDeliverer) Deliver(userID, title, body string) error { return nil }
