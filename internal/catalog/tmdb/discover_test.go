package tmdb

import (
	"testing"

	"github.com/alexanderramin/moodflix/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDiscoverParams_Base(t *testing.T) {
	p := discoverParams(domain.ContentMovie, domain.Slots{}, 0, DefaultConfig())

	assert.Equal(t, "es-AR", p.Get("language"))
	assert.Equal(t, "AR", p.Get("region"))
	assert.Equal(t, "false", p.Get("include_adult"))
	assert.Equal(t, "1", p.Get("page"))
	assert.Equal(t, "vote_average.desc", p.Get("sort_by"))
	assert.Equal(t, "100", p.Get("vote_count.gte"))
	assert.Empty(t, p.Get("with_genres"))
	assert.Empty(t, p.Get("without_genres"))
}

func TestDiscoverParams_Genres(t *testing.T) {
	tests := []struct {
		name string
		ct   domain.ContentType
		in   []string
		want string
	}{
		{"movie comedy and family", domain.ContentMovie, []string{"comedia", "familia"}, "35,10751"},
		{"series scifi composite", domain.ContentSeries, []string{"ciencia ficcion"}, "10765"},
		{"series fantasy dedupes with scifi", domain.ContentSeries, []string{"fantasia", "ciencia ficcion"}, "10765"},
		{"unknown and sentinel skipped", domain.ContentMovie, []string{"vampiros", domain.Indifferent}, ""},
		{"thriller has no series genre", domain.ContentSeries, []string{"thriller"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := discoverParams(tt.ct, domain.Slots{Genres: tt.in}, 1, DefaultConfig())
			assert.Equal(t, tt.want, p.Get("with_genres"))
		})
	}
}

func TestDiscoverParams_Restrictions(t *testing.T) {
	s := domain.Slots{Restrictions: []string{"no_animation", "no_horror", "no_gore", "bogus"}}

	p := discoverParams(domain.ContentMovie, s, 1, DefaultConfig())

	assert.Equal(t, "16,27", p.Get("without_genres"))
}

func TestDiscoverParams_Recency(t *testing.T) {
	movie := discoverParams(domain.ContentMovie, domain.Slots{Recency: domain.RecencyNew}, 1, DefaultConfig())
	assert.Equal(t, "2015-01-01", movie.Get("primary_release_date.gte"))

	series := discoverParams(domain.ContentSeries, domain.Slots{Recency: domain.RecencyClassic}, 1, DefaultConfig())
	assert.Equal(t, "2005-12-31", series.Get("first_air_date.lte"))
	assert.Empty(t, series.Get("primary_release_date.lte"))

	indifferent := discoverParams(domain.ContentMovie, domain.Slots{Recency: domain.RecencyIndifferent}, 1, DefaultConfig())
	assert.Empty(t, indifferent.Get("primary_release_date.gte"))
	assert.Empty(t, indifferent.Get("primary_release_date.lte"))
}

func TestDiscoverParams_Runtime(t *testing.T) {
	short := discoverParams(domain.ContentMovie, domain.Slots{MovieDuration: domain.LengthShort}, 1, DefaultConfig())
	assert.Equal(t, "100", short.Get("with_runtime.lte"))

	long := discoverParams(domain.ContentMovie, domain.Slots{MovieDuration: domain.LengthLong}, 1, DefaultConfig())
	assert.Equal(t, "130", long.Get("with_runtime.gte"))

	episodes := discoverParams(domain.ContentSeries, domain.Slots{
		MovieDuration:   domain.LengthLong,
		EpisodeDuration: domain.LengthShort,
	}, 1, DefaultConfig())
	assert.Equal(t, "30", episodes.Get("with_runtime.lte"))
	assert.Empty(t, episodes.Get("with_runtime.gte"))
}

func TestDiscoverParams_Popularity(t *testing.T) {
	known := discoverParams(domain.ContentMovie, domain.Slots{Popularity: domain.PopularityWellKnown}, 1, DefaultConfig())
	assert.Equal(t, "popularity.desc", known.Get("sort_by"))
	assert.Equal(t, "500", known.Get("vote_count.gte"))

	gem := discoverParams(domain.ContentMovie, domain.Slots{Popularity: domain.PopularityHiddenGem}, 3, DefaultConfig())
	assert.Equal(t, "vote_average.desc", gem.Get("sort_by"))
	assert.Equal(t, "50", gem.Get("vote_count.gte"))
	assert.Equal(t, "2000", gem.Get("vote_count.lte"))
	assert.Equal(t, "3", gem.Get("page"))
}
