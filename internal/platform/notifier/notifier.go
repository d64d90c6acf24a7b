// Package notifier delivers best-effort reminder mail. Delivery failures are
// reported to the caller but carry no business meaning; callers log and move
// on.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/familypoints/familypoints_app/internal/core/domain"
	portssvc "github.com/familypoints/familypoints_app/internal/core/ports/services"
)

// SMTPNotifier sends reminders through a plain SMTP relay.
type SMTPNotifier struct {
	addr string // host:port of the relay
	from string
}

// NewSMTPNotifier creates a notifier that sends through the given relay.
func NewSMTPNotifier(addr, from string) *SMTPNotifier {
	return &SMTPNotifier{addr: addr, from: from}
}

var _ portssvc.Notifier = (*SMTPNotifier)(nil)

// NotifyChildOfPendingTask mails the child a reminder about a pending item.
// Child usernames double as their mail address, as registration enforces.
func (n *SMTPNotifier) NotifyChildOfPendingTask(_ context.Context, child domain.User, description string) error {
	name := child.Name
	if name == "" {
		name = child.Username
	}
	body := strings.Join([]string{
		"From: " + n.from,
		"To: " + child.Username,
		"Subject: Reminder: Task Pending",
		"",
		fmt.Sprintf("Hi %s, remember: %s", name, description),
		"",
	}, "\r\n")

	if err := smtp.SendMail(n.addr, nil, n.from, []string{child.Username}, []byte(body)); err != nil {
		return fmt.Errorf("failed to send reminder mail: %w", err)
	}
	return nil
}

// LogNotifier records reminders in the log instead of delivering them. Used
// when no SMTP relay is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

var _ portssvc.Notifier = (*LogNotifier)(nil)

// NotifyChildOfPendingTask logs the reminder and succeeds.
func (n *LogNotifier) NotifyChildOfPendingTask(_ context.Context, child domain.User, description string) error {
	n.logger.Info("Reminder (mail disabled)",
		slog.String("child_id", child.UserID),
		slog.String("description", description),
	)
	return nil
}
