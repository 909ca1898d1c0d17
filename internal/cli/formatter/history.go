package formatter

import (
	"time"

	"github.com/alexanderramin/moodflix/internal/domain"
)

// RenderHistory lists turns in the order given (the store returns newest
// first) with relative timestamps.
func RenderHistory(turns []*domain.Turn, now time.Time) string {
	if len(turns) == 0 {
		return Dim("No turns recorded.") + "\n"
	}
	t := NewTable(
		Column{Header: "WHEN"},
		Column{Header: "KIND"},
		Column{Header: "USER", Max: 40},
		Column{Header: "BOT", Max: 60},
	)
	for _, turn := range turns {
		t.Row(
			Dim(HumanTimestamp(turn.CreatedAt, now)),
			KindBadge(turn.ReplyKind),
			turn.UserMessage,
			turn.BotResponse,
		)
	}
	return t.String()
}
