// Package notify contains alarm platform adapters.
package notify

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/ramitsuri/chores-client-sub000/internal/ports/secondary"
)

// ConsoleNotifier implements secondary.AlarmPlatform by printing alarm
// operations to a writer. It is the default wiring for the CLI, where a
// cron-driven `chores sync` owns scheduling and an external notifier daemon
// owns delivery; the console output doubles as the audit trail of what was
// armed and disarmed.
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier creates a console notifier writing to out.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

// ScheduleOneShot prints the armed timer. Printing the same slot again is
// the idempotent replace.
func (n *ConsoleNotifier) ScheduleOneShot(ctx context.Context, slotID int64, atMillis int64, payload secondary.AlarmPayload) error {
	at := time.UnixMilli(atMillis).Format(time.RFC3339)
	fmt.Fprintf(n.out, "%s slot %d at %s: %s\n", color.GreenString("⏰ armed"), slotID, at, payload.TaskName)
	return nil
}

// Cancel prints the disarmed timer.
func (n *ConsoleNotifier) Cancel(ctx context.Context, slotID int64) error {
	fmt.Fprintf(n.out, "%s slot %d\n", color.YellowString("⏰ disarmed"), slotID)
	return nil
}

// CancelNotification prints the dismissed notification.
func (n *ConsoleNotifier) CancelNotification(ctx context.Context, slotID int64) error {
	fmt.Fprintf(n.out, "%s slot %d\n", color.YellowString("🔕 dismissed"), slotID)
	return nil
}

// Ensure ConsoleNotifier implements the interface
var _ secondary.AlarmPlatform = (*ConsoleNotifier)(nil)
