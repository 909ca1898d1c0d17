package intelligence

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/moodflix/internal/dialogue"
)

const extractSystemPrompt = `Sos el intérprete de un bot que recomienda películas y series.
Leé el mensaje del usuario y devolvé SOLO un objeto JSON, sin texto adicional ni markdown:

{
  "intent": "recommendation" | "answer" | "other",
  "slots": {
    "content_type": "movie" | "series" | "indifferent" | null,
    "genres": ["comedia", "terror", ...],
    "tone": "light" | "intense" | "emotional" | "indifferent" | null,
    "recency": "new" | "classic" | "indifferent" | null,
    "movie_duration": "short" | "long" | "indifferent" | null,
    "season_count": "few" | "many" | "indifferent" | null,
    "total_episodes": "few" | "many" | "indifferent" | null,
    "episode_duration": "short" | "long" | "indifferent" | null,
    "social_context": "alone" | "partner" | "friends" | "family" | "indifferent" | null,
    "popularity": "well_known" | "hidden_gem" | "indifferent" | null,
    "restrictions": ["no_gore" | "no_horror" | "no_romance" | "no_scifi" | "no_crime" | "no_war" | "no_animation"],
    "themes": [],
    "people_like": [],
    "people_dislike": [],
    "max_results": 0
  }
}

Reglas:
1. Completá solo lo que el usuario dijo en ESTE mensaje. Lo que no mencionó va en null o lista vacía.
2. Una respuesta corta ("pocas", "largos", "conocida", "con amigxs", "algo clásico") responde
   la pregunta pendiente y va en el slot de esa pregunta.
3. "me da igual", "cualquiera", "no sé", "como quieras", "sin preferencia" responden la pregunta
   pendiente con "indifferent". Nunca agregues restricciones por eso.
4. Sinónimos: moderno/reciente/de ahora = new; viejo/clásico = classic; popular/famosa = well_known;
   joya oculta/poco conocida = hidden_gem; 1 a 3 temporadas = few; 4 o más = many;
   menos de 30 capítulos = few; 20-30 min por capítulo = short; 40-60 min = long.
5. Contexto: solo/sola = alone; novio/novia/pareja = partner; amigos/amigas/amigxs = friends;
   familia/chicos = family.
6. Restricciones: "no animada"/"no dibujitos" = no_animation; "no terror"/"sin sustos" = no_horror;
   "sin gore"/"no sangrienta"/"no muy violenta" = no_gore; "no romántica" = no_romance;
   "no ciencia ficción"/"sin magia" = no_scifi; "no policiales" = no_crime; "no bélicas" = no_war.
7. Temáticas más específicas que un género (vampiros, abogados, hechos reales) van en "themes"
   en snake_case.
8. "max_results" solo si el usuario pide una cantidad explícita de recomendaciones (1 a 5).
9. intent: "recommendation" si pide algo para ver o cambia de tipo de contenido; "answer" si responde
   la pregunta pendiente; "other" si habla de otra cosa.`

// buildExtractUserPrompt gives the model the pending question and what is
// already known, so short answers can be attributed to the right slot.
func buildExtractUserPrompt(req ExtractionRequest) string {
	var b strings.Builder

	pending := "ninguna"
	if req.LastQuestionKey != "" {
		pending = fmt.Sprintf("%q (slot %s)", flattenPrompt(dialogue.Prompt(req.LastQuestionKey)), req.LastQuestionKey)
	}
	fmt.Fprintf(&b, "Pregunta pendiente: %s\n", pending)

	known, err := json.Marshal(req.PriorSlots)
	if err != nil {
		known = []byte("{}")
	}
	fmt.Fprintf(&b, "Lo que ya sabemos: %s\n", known)
	fmt.Fprintf(&b, "Mensaje del usuario: %s", req.Text)
	return b.String()
}

func flattenPrompt(text string) string {
	text = strings.ReplaceAll(text, "*", "")
	return strings.Join(strings.Fields(text), " ")
}

// validateRawExtraction is a schema validator for ExtractJSON.
func validateRawExtraction(r rawExtraction) error {
	if r.Intent == "" {
		return fmt.Errorf("intent is required")
	}
	if r.Slots.MaxResults < 0 {
		return fmt.Errorf("max_results must be non-negative, got %d", r.Slots.MaxResults)
	}
	return nil
}
