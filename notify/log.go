// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"log/slog"
	"time"
)

// LogNotifier writes notifications to the structured log instead of sending
// them. Used when no SMTP server is configured.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, msg Message) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}

	subject, body := Render(msg, time.Now())
	logger.InfoContext(ctx, "notification queued", "to", msg.To, "subject", subject)
	// The body names the receiver; keep it out of normal logs.
	logger.DebugContext(ctx, "notification body", "to", msg.To, "body", body)
	return nil
}
