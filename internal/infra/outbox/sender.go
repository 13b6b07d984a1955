package outbox

import (
	"context"
	"log/slog"
	"strings"

	"gear-ledger/internal/usecase/shared"
)

// Sender delivers one decoded job to the outside world.
type Sender interface {
	Send(ctx context.Context, job shared.NotificationJob, msg BatchMessage) error
}

// LogSender writes the notification to the structured log instead of
// delivering it. It is the default until a mail gateway is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, job shared.NotificationJob, msg BatchMessage) error {
	names := make([]string, 0, len(msg.Assets))
	for _, a := range msg.Assets {
		names = append(names, a.Name)
	}
	s.logger.InfoContext(ctx, "notification delivered",
		"job_id", job.ID.String(),
		"kind", job.Kind,
		"topic", job.Topic,
		"action", msg.Action,
		"recipients", strings.Join(msg.Recipients, ","),
		"assets", strings.Join(names, ", "),
		"attempt", job.Attempts+1)
	return nil
}
