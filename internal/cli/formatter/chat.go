package formatter

import (
	"strings"

	"github.com/alexanderramin/moodflix/internal/domain"
)

const botPrefix = "🍿 "

// BotReply renders a bot message. Continuation lines are indented under
// the prefix and the kind picks the color of the prefix.
func BotReply(text, kind string) string {
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = "   " + lines[i]
		}
	}
	return KindStyle(kind).Render(botPrefix) + strings.Join(lines, "\n")
}

// Prompt is shown before each user line on interactive terminals.
func Prompt() string {
	return StyleHeader.Render("vos › ")
}

// SlotsSummary lists the filled slots of s as "key=value" pairs.
func SlotsSummary(s domain.Slots) string {
	var parts []string
	add := func(key, v string) {
		if v != "" {
			parts = append(parts, key+"="+v)
		}
	}
	add("type", string(s.ContentType))
	add("genres", strings.Join(s.Genres, ","))
	add("tone", string(s.Tone))
	add("recency", string(s.Recency))
	add("duration", string(s.MovieDuration))
	add("seasons", string(s.SeasonCount))
	add("episodes", string(s.TotalEpisodes))
	add("episode_duration", string(s.EpisodeDuration))
	add("social", string(s.SocialContext))
	add("popularity", string(s.Popularity))
	add("restrictions", strings.Join(s.Restrictions, ","))
	if len(parts) == 0 {
		return "--"
	}
	return strings.Join(parts, " ")
}
