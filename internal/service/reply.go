package service

import (
	"cmp"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/moodflix/internal/domain"
)

// ReplyKind classifies a bot reply for transports, metrics and history.
type ReplyKind string

const (
	ReplyWelcome        ReplyKind = "welcome"
	ReplyFarewell       ReplyKind = "farewell"
	ReplyQuestion       ReplyKind = "question"
	ReplyRecommendation ReplyKind = "recommendation"
	ReplyClarification  ReplyKind = "clarification"
	ReplyNoContext      ReplyKind = "no_context"
	ReplyNoResults      ReplyKind = "no_results"
	ReplyCatalogError   ReplyKind = "catalog_error"
)

// Reply is the outcome of one chat turn.
type Reply struct {
	Text      string             `json:"text"`
	Kind      ReplyKind          `json:"kind"`
	Question  domain.SlotKey     `json:"question,omitempty"`
	Items     []domain.Candidate `json:"items,omitempty"`
	Exhausted bool               `json:"exhausted,omitempty"`
}

const (
	welcomeText = "👋 Hola, soy tu bot de recomendaciones de películas y series.\n\n" +
		"Te voy a ir haciendo algunas preguntas para encontrar algo que encaje " +
		"con lo que tenés ganas de ver.\n\n" +
		"Podés empezar diciendo cosas como:\n" +
		"• \"Recomendame una peli de terror cortita\"\n" +
		"• \"Quiero una serie de comedia para ver con mi pareja\""

	farewellText = "¡Gracias por usar el bot! Cuando quieras volvemos a buscar algo para ver 🍿"

	clarificationText = "No estoy segura de haber entendido 😅.\n" +
		"Podés decirme cosas como:\n" +
		"• \"Recomendame una película de comedia\"\n" +
		"• \"Quiero una serie cortita para ver en familia\""

	noContextText = "Todavía no te recomendé nada 🙂. Contame qué tenés ganas de ver y arrancamos."

	catalogErrorText = "Error con la API, probá en un ratito."

	noResultsText = "Con lo que me contaste no encontré nada 😕. Probá cambiando algún filtro."

	exhaustedText = "Ya te mostré todo lo que encontré con estos filtros, así que vuelvo a empezar 🔁"

	closingText = "Decime *\"otra\"* para más opciones o cambiá algún filtro."

	maxSynopsisChars = 380
)

func textReply(kind ReplyKind, text string) *Reply {
	return &Reply{Kind: kind, Text: text}
}

// formatRecommendations renders the recommendation message. more selects
// the "otra opción" intro used after a show-more request.
func formatRecommendations(items []domain.Candidate, ct domain.ContentType, more, exhausted bool) string {
	var b strings.Builder

	if exhausted {
		b.WriteString(exhaustedText + "\n\n")
	}
	intro := "Te dejo una recomendación"
	if len(items) > 1 {
		intro = "Mirá estas recomendaciones"
	}
	if more {
		intro = "Te dejo otra opción:"
	}
	b.WriteString(intro + " 👇\n\n")

	for _, c := range items {
		fmt.Fprintf(&b, "🎬 *%s* (%s)\n", c.Title, cmp.Or(c.Year, "N/D"))
		fmt.Fprintf(&b, "• Géneros: %s\n", genresLine(c.GenreNames))
		fmt.Fprintf(&b, "• Duración: %s\n", durationLine(c.DurationMinutes, ct))
		if ct == domain.ContentSeries {
			if c.Seasons != nil {
				fmt.Fprintf(&b, "• Temporadas: %d\n", *c.Seasons)
			}
			if c.Episodes != nil {
				fmt.Fprintf(&b, "• Episodios: %d\n", *c.Episodes)
			}
		}
		fmt.Fprintf(&b, "\n📝 %s\n\n", truncateSynopsis(cmp.Or(c.Synopsis, "Sin sinopsis disponible.")))
		if c.AvailabilityText != "" {
			b.WriteString(c.AvailabilityText + "\n\n")
		}
	}

	b.WriteString(closingText)
	return b.String()
}

func genresLine(names []string) string {
	if len(names) == 0 {
		return "Género N/D"
	}
	if len(names) > 3 {
		names = names[:3]
	}
	return strings.Join(names, ", ")
}

func durationLine(minutes *int, ct domain.ContentType) string {
	m := 0
	if minutes != nil {
		m = *minutes
	}
	switch {
	case m <= 0:
		return "Duración N/D"
	case ct == domain.ContentSeries:
		return fmt.Sprintf("%d min/episodio", m)
	default:
		return fmt.Sprintf("%d min", m)
	}
}

// truncateSynopsis cuts long synopses on a word boundary.
func truncateSynopsis(s string) string {
	if utf8.RuneCountInString(s) <= maxSynopsisChars {
		return s
	}
	cut := string([]rune(s)[:maxSynopsisChars])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
