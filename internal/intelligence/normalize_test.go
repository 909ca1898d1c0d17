package intelligence

import (
	"testing"

	"github.com/alexanderramin/moodflix/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "clasico", Fold("  Clásico "))
	assert.Equal(t, "ciencia_ficcion", Fold("Ciencia Ficción"))
	assert.Equal(t, "no_terror", Fold("no-terror"))
	assert.Equal(t, "me_da_igual", Fold("me da   igual"))
	assert.Equal(t, "", Fold("   "))
}

func TestNormalizeEnum(t *testing.T) {
	assert.Equal(t, domain.ContentSeries, normalizeEnum("TV", contentTypeAliases))
	assert.Equal(t, domain.ContentMovie, normalizeEnum("película", contentTypeAliases))
	assert.Equal(t, domain.ContentIndifferent, normalizeEnum("me da igual", contentTypeAliases))
	assert.Equal(t, domain.LengthShort, normalizeEnum("corta", lengthAliases))
	assert.Equal(t, domain.AmountFew, normalizeEnum("pocas", amountAliases))
	assert.Equal(t, domain.RecencyNew, normalizeEnum("nuevo", recencyAliases))
	assert.Equal(t, domain.SocialAlone, normalizeEnum("solo", socialAliases))
	assert.Equal(t, domain.SocialPartner, normalizeEnum("pareja", socialAliases))
	assert.Equal(t, domain.PopularityWellKnown, normalizeEnum("conocida", popularityAliases))
	assert.Equal(t, domain.Popularity(""), normalizeEnum("null", popularityAliases))
	assert.Equal(t, domain.Tone(""), normalizeEnum("weird", toneAliases))
}

func TestNormalizeGenres(t *testing.T) {
	assert.Equal(t, []string{"accion", "terror"}, normalizeGenres([]string{"Acción", "horror", "terror"}))
	assert.Equal(t, []string{"comedia"}, normalizeGenres([]string{"comedia", "cualquiera"}))
	assert.Equal(t, []string{domain.Indifferent}, normalizeGenres([]string{"me da igual"}))
	assert.Equal(t, []string{"k drama"}, normalizeGenres([]string{"K-Drama"}))
	assert.Nil(t, normalizeGenres([]string{"", " "}))
}

func TestNormalizeRestrictions(t *testing.T) {
	got := normalizeRestrictions([]string{"no_animacion", "no_guerra", "no_terror", "no_animation", "bogus"})
	assert.Equal(t, []string{"no_animation", "no_war", "no_horror"}, got)
	assert.Equal(t, []string{domain.Indifferent}, normalizeRestrictions([]string{"indiferente"}))
}

func TestNormalizeSlots_ClampsMaxResults(t *testing.T) {
	assert.Equal(t, 5, normalizeSlots(rawSlots{MaxResults: 12}).MaxResults)
	assert.Equal(t, 0, normalizeSlots(rawSlots{MaxResults: -1}).MaxResults)
}

func TestNormalizeIntent(t *testing.T) {
	assert.Equal(t, domain.IntentRecommendation, normalizeIntent("recommendation"))
	assert.Equal(t, domain.IntentAnswer, normalizeIntent("Answer"))
	assert.Equal(t, domain.IntentOther, normalizeIntent("chit-chat"))
}
