package service

import "github.com/alexanderramin/moodflix/internal/intelligence"

type command int

const (
	cmdNone command = iota
	cmdReset
	cmdGreeting
	cmdFarewell
	cmdMore
)

var commandPhrases = map[string]command{
	"start":     cmdReset,
	"reset":     cmdReset,
	"reiniciar": cmdReset,

	"hola":          cmdGreeting,
	"holaa":         cmdGreeting,
	"holaaa":        cmdGreeting,
	"holis":         cmdGreeting,
	"buenas":        cmdGreeting,
	"buen_dia":      cmdGreeting,
	"buenos_dias":   cmdGreeting,
	"buenas_tardes": cmdGreeting,
	"buenas_noches": cmdGreeting,
	"hey":           cmdGreeting,
	"hello":         cmdGreeting,
	"hi":            cmdGreeting,

	"chau":   cmdFarewell,
	"chao":   cmdFarewell,
	"adios":  cmdFarewell,
	"me_voy": cmdFarewell,
	"end":    cmdFarewell,
	"stop":   cmdFarewell,

	"otra":          cmdMore,
	"otro":          cmdMore,
	"otra_peli":     cmdMore,
	"otra_pelicula": cmdMore,
	"otra_serie":    cmdMore,
	"otra_opcion":   cmdMore,
	"mas":           cmdMore,
	"another":       cmdMore,
	"more":          cmdMore,
}

// classify matches whole messages only, so "hola, quiero una peli de terror"
// is an ordinary message and not a reset.
func classify(text string) command {
	return commandPhrases[intelligence.Fold(text)]
}
