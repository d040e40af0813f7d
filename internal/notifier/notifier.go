package notifier

import "time"

// SyncSummary is the outcome of one sync run, as posted to the channel.
type SyncSummary struct {
	Season          string
	Mode            string
	RecordsUpdated  int
	MatchdaysSynced int
	Failed          bool
	Error           string
	Duration        time.Duration
}

// Notifier posts sync outcomes to a channel. Notification failures are
// logged, never propagated; a sync does not fail because a message did not
// send.
type Notifier interface {
	NotifySyncResult(summary SyncSummary)
}

// Noop discards all notifications. Used when no Slack credentials are
// configured.
type Noop struct{}

func (Noop) NotifySyncResult(SyncSummary) {}
