package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogGateway writes notifications to the log instead of delivering them.
// Used when no AMQP transport is configured.
type LogGateway struct {
	logger zerolog.Logger
}

func NewLogGateway(logger zerolog.Logger) *LogGateway {
	return &LogGateway{logger: logger}
}

func (g *LogGateway) Send(_ context.Context, msg Message) error {
	event := g.logger.Info().Str("kind", string(msg.Kind))
	if msg.Email != "" {
		event = event.Str("email", msg.Email)
	}
	if msg.Phone != "" {
		event = event.Str("phone", msg.Phone)
	}
	for key, value := range msg.Payload {
		event = event.Str(key, value)
	}
	event.Msg("notification")
	return nil
}
