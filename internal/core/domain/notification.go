package domain

import (
	"context"
	"time"
)

const historySubjectPrefix = "Account Transfer History "

// HistorySubject is the subject line of a history email sent on the given day.
func HistorySubject(on time.Time) string {
	return historySubjectPrefix + on.Format(time.DateOnly)
}

// sendHistory delivers body through n. A notifier error counts as a failed send.
func sendHistory(ctx context.Context, n Notifier, now time.Time, body, address string) bool {
	if n == nil {
		return false
	}
	sent, err := n.Send(ctx, HistorySubject(now), body, address)
	if err != nil {
		return false
	}
	return sent
}
