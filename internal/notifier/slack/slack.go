package slack

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/jhagedorn/dartliga/internal/notifier"
)

// Notifier posts sync summaries to a Slack channel using Block Kit.
type Notifier struct {
	api       *slack.Client
	channelID string
}

// New creates a Slack notifier.
func New(token, channelID string) *Notifier {
	return &Notifier{
		api:       slack.New(token),
		channelID: channelID,
	}
}

// NewWithAPI creates a notifier with a custom API client. Used for testing.
func NewWithAPI(api *slack.Client, channelID string) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
	}
}

// NotifySyncResult posts the outcome of a sync run. Failures to post are
// logged and swallowed.
func (n *Notifier) NotifySyncResult(summary notifier.SyncSummary) {
	if n.api == nil || n.channelID == "" {
		log.Warn("Slack client or channel ID is not configured. Skipping notification.")
		return
	}

	msg := formatSyncResult(summary)
	if _, _, err := n.api.PostMessage(n.channelID, slack.MsgOptionBlocks(msg.Blocks.BlockSet...)); err != nil {
		log.Error("Failed to send Slack message", "error", err, "season", summary.Season)
	}
}

func formatSyncResult(summary notifier.SyncSummary) slack.Message {
	blocks := make([]slack.Block, 0)

	title := "🎯 League sync finished"
	if summary.Failed {
		title = "🎯 League sync failed"
	}
	headerText := slack.NewTextBlockObject("plain_text", title, true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Season: %s\nMode: %s\nRecords updated: %d\nMatchdays synced: %d\nDuration: %s",
		summary.Season, summary.Mode, summary.RecordsUpdated, summary.MatchdaysSynced, summary.Duration.Round(time.Millisecond))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	if summary.Failed && summary.Error != "" {
		errText := slack.NewTextBlockObject("plain_text", "Error: "+summary.Error, true, false)
		blocks = append(blocks, slack.NewContextBlock("", errText))
	}

	return slack.NewBlockMessage(blocks...)
}
