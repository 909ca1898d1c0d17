package dialogue

import (
	"testing"

	"github.com/alexanderramin/moodflix/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMerge_EmptyIncomingKeepsPrevious(t *testing.T) {
	prev := domain.Slots{
		ContentType: domain.ContentMovie,
		Genres:      []string{"comedia"},
		Recency:     domain.RecencyNew,
		MaxResults:  3,
	}

	got := Merge(prev, domain.Slots{})

	assert.Equal(t, prev, got)
}

func TestMerge_ConcreteOverwrites(t *testing.T) {
	prev := domain.Slots{ContentType: domain.ContentMovie, Genres: []string{"comedia"}}
	in := domain.Slots{ContentType: domain.ContentSeries, Genres: []string{"terror", "drama"}}

	got := Merge(prev, in)

	assert.Equal(t, domain.ContentSeries, got.ContentType)
	assert.Equal(t, []string{"terror", "drama"}, got.Genres)
}

func TestMerge_IndifferentNeverDowngradesConcrete(t *testing.T) {
	prev := domain.Slots{
		MovieDuration: domain.LengthShort,
		Genres:        []string{"comedia"},
		SocialContext: domain.SocialFamily,
	}
	in := domain.Slots{
		MovieDuration: domain.LengthIndifferent,
		Genres:        []string{domain.Indifferent},
		SocialContext: domain.SocialIndifferent,
	}

	got := Merge(prev, in)

	assert.Equal(t, domain.LengthShort, got.MovieDuration)
	assert.Equal(t, []string{"comedia"}, got.Genres)
	assert.Equal(t, domain.SocialFamily, got.SocialContext)
}

func TestMerge_IndifferentFillsEmptySlot(t *testing.T) {
	got := Merge(domain.Slots{}, domain.Slots{
		Recency: domain.RecencyIndifferent,
		Genres:  []string{domain.Indifferent},
	})

	assert.Equal(t, domain.RecencyIndifferent, got.Recency)
	assert.Equal(t, []string{domain.Indifferent}, got.Genres)
}

func TestMerge_ConcreteReplacesIndifferent(t *testing.T) {
	prev := domain.Slots{Popularity: domain.PopularityIndifferent}

	got := Merge(prev, domain.Slots{Popularity: domain.PopularityHiddenGem})

	assert.Equal(t, domain.PopularityHiddenGem, got.Popularity)
}

func TestMerge_DoesNotSynthesizeKeys(t *testing.T) {
	got := Merge(domain.Slots{}, domain.Slots{Recency: domain.RecencyClassic})

	assert.Equal(t, domain.Slots{Recency: domain.RecencyClassic}, got)
}

func TestMerge_UnknownValuesPassThrough(t *testing.T) {
	got := Merge(domain.Slots{}, domain.Slots{ContentType: "tv", Restrictions: []string{"no_clowns"}})

	assert.Equal(t, domain.ContentType("tv"), got.ContentType)
	assert.Equal(t, []string{"no_clowns"}, got.Restrictions)
}

func TestMerge_DoesNotAliasInputs(t *testing.T) {
	in := domain.Slots{Genres: []string{"comedia"}}
	prev := domain.Slots{Restrictions: []string{"no_horror"}}

	got := Merge(prev, in)
	got.Genres[0] = "terror"
	got.Restrictions[0] = "no_war"

	assert.Equal(t, "comedia", in.Genres[0])
	assert.Equal(t, "no_horror", prev.Restrictions[0])
}

func TestMerge_Idempotent(t *testing.T) {
	bases := []domain.Slots{
		{},
		{ContentType: domain.ContentMovie, Genres: []string{"drama"}},
		{ContentType: domain.ContentSeries, SeasonCount: domain.AmountIndifferent, Restrictions: []string{"no_gore"}},
	}
	updates := []domain.Slots{
		{},
		{ContentType: domain.ContentSeries},
		{Genres: []string{"comedia", "acción"}, Popularity: domain.PopularityWellKnown, MaxResults: 2},
		{SocialContext: domain.SocialFriends, Restrictions: []string{"no_horror", "no_war"}},
	}

	for _, s := range bases {
		for _, a := range updates {
			once := Merge(s, a)
			twice := Merge(once, a)
			assert.Equal(t, once, twice)
		}
	}
}

func TestMerge_IndifferenceMonotonicity(t *testing.T) {
	s := Merge(domain.Slots{}, domain.Slots{Recency: domain.RecencyClassic})
	for i := 0; i < 3; i++ {
		s = Merge(s, domain.Slots{Recency: domain.RecencyIndifferent})
		assert.Equal(t, domain.RecencyClassic, s.Recency)
	}
}
