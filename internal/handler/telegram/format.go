package telegram

import (
	"strings"

	"github.com/asadbek002/checkin-bot/internal/domain/attendance"
)

// formatHistory renders events one per line:
// "2025-08-29 09:05 — Kelgan (Ofisda) — traffic"
func formatHistory(events []attendance.Event) string {
	if len(events) == 0 {
		return msgNoHistory
	}

	var b strings.Builder
	for i, ev := range events {
		if i > 0 {
			b.WriteByte('\n')
		}
		reason := ev.Reason
		if reason == "" {
			reason = "–"
		}
		b.WriteString(ev.Date.Format("2006-01-02"))
		b.WriteByte(' ')
		b.WriteString(ev.Time)
		b.WriteString(" — ")
		b.WriteString(string(ev.Status))
		b.WriteString(" (")
		b.WriteString(ev.Location)
		b.WriteString(") — ")
		b.WriteString(reason)
	}
	return b.String()
}
