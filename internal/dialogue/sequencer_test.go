package dialogue

import (
	"testing"

	"github.com/alexanderramin/moodflix/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextQuestion_ContentTypeFirst(t *testing.T) {
	q := NextQuestion(domain.Slots{Genres: []string{"comedia"}})
	require.NotNil(t, q)
	assert.Equal(t, domain.KeyContentType, q.Key)
	assert.Equal(t, Prompt(domain.KeyContentType), q.Text)
}

func TestNextQuestion_MalformedContentTypeIsAskedAgain(t *testing.T) {
	q := NextQuestion(domain.Slots{ContentType: "tv"})
	require.NotNil(t, q)
	assert.Equal(t, domain.KeyContentType, q.Key)
}

func TestNextQuestion_GenresSecond(t *testing.T) {
	q := NextQuestion(domain.Slots{ContentType: domain.ContentMovie})
	require.NotNil(t, q)
	assert.Equal(t, domain.KeyGenres, q.Key)
}

func TestNextQuestion_MovieOrder(t *testing.T) {
	s := domain.Slots{ContentType: domain.ContentMovie, Genres: []string{"comedia"}}
	var keys []domain.SlotKey
	for q := NextQuestion(s); q != nil; q = NextQuestion(s) {
		keys = append(keys, q.Key)
		answer(&s, q.Key)
	}
	assert.Equal(t, []domain.SlotKey{
		domain.KeyMovieDuration, domain.KeyRecency, domain.KeySocialContext, domain.KeyPopularity,
	}, keys)
}

func TestNextQuestion_SeriesOrder(t *testing.T) {
	s := domain.Slots{ContentType: domain.ContentSeries, Genres: []string{"drama"}}
	var keys []domain.SlotKey
	for q := NextQuestion(s); q != nil; q = NextQuestion(s) {
		keys = append(keys, q.Key)
		answer(&s, q.Key)
	}
	assert.Equal(t, []domain.SlotKey{
		domain.KeySeasonCount, domain.KeyTotalEpisodes, domain.KeyEpisodeDuration,
		domain.KeyRecency, domain.KeySocialContext, domain.KeyPopularity,
	}, keys)
}

func TestNextQuestion_IndifferentSatisfiesGate(t *testing.T) {
	s := domain.Slots{
		ContentType:   domain.ContentMovie,
		Genres:        []string{domain.Indifferent},
		MovieDuration: domain.LengthIndifferent,
		Recency:       domain.RecencyIndifferent,
		SocialContext: domain.SocialIndifferent,
		Popularity:    domain.PopularityIndifferent,
	}
	assert.Nil(t, NextQuestion(s))
}

func TestNextQuestion_IndifferentContentTypeBranchesAsMovie(t *testing.T) {
	s := domain.Slots{ContentType: domain.ContentIndifferent, Genres: []string{"terror"}}
	q := NextQuestion(s)
	require.NotNil(t, q)
	assert.Equal(t, domain.KeyMovieDuration, q.Key)
}

func TestNextQuestion_EmptyStringGenreDoesNotSatisfy(t *testing.T) {
	q := NextQuestion(domain.Slots{ContentType: domain.ContentMovie, Genres: []string{""}})
	require.NotNil(t, q)
	assert.Equal(t, domain.KeyGenres, q.Key)
}

func TestNextQuestion_FamilyComedyScenario(t *testing.T) {
	s := domain.Slots{
		ContentType:   domain.ContentMovie,
		Genres:        []string{"comedia"},
		SocialContext: domain.SocialFamily,
	}
	q := NextQuestion(s)
	require.NotNil(t, q)
	assert.Equal(t, domain.KeyMovieDuration, q.Key)

	s.MovieDuration = domain.LengthIndifferent
	s.Recency = domain.RecencyNew
	s.Popularity = domain.PopularityIndifferent
	assert.Nil(t, NextQuestion(s))
}

func TestNextQuestion_Deterministic(t *testing.T) {
	s := domain.Slots{ContentType: domain.ContentSeries, Genres: []string{"drama"}, SeasonCount: domain.AmountFew}
	first := NextQuestion(s)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, NextQuestion(s))
	}
}

func TestNextQuestion_TerminatesWithinBound(t *testing.T) {
	for _, ct := range []domain.ContentType{domain.ContentMovie, domain.ContentSeries} {
		for _, indifferent := range []bool{true, false} {
			s := domain.Slots{}
			asked := 0
			for q := NextQuestion(s); q != nil; q = NextQuestion(s) {
				asked++
				require.LessOrEqual(t, asked, MaxQuestions(ct), "content type %s", ct)
				if q.Key == domain.KeyContentType {
					s.ContentType = ct
					continue
				}
				if indifferent {
					answerIndifferent(&s, q.Key)
				} else {
					answer(&s, q.Key)
				}
			}
			if ct == domain.ContentSeries {
				assert.LessOrEqual(t, asked, 8)
			} else {
				assert.LessOrEqual(t, asked, 7)
			}
		}
	}
}

func answer(s *domain.Slots, key domain.SlotKey) {
	switch key {
	case domain.KeyContentType:
		s.ContentType = domain.ContentMovie
	case domain.KeyGenres:
		s.Genres = []string{"comedia"}
	case domain.KeyMovieDuration:
		s.MovieDuration = domain.LengthShort
	case domain.KeySeasonCount:
		s.SeasonCount = domain.AmountFew
	case domain.KeyTotalEpisodes:
		s.TotalEpisodes = domain.AmountMany
	case domain.KeyEpisodeDuration:
		s.EpisodeDuration = domain.LengthLong
	case domain.KeyRecency:
		s.Recency = domain.RecencyClassic
	case domain.KeySocialContext:
		s.SocialContext = domain.SocialFriends
	case domain.KeyPopularity:
		s.Popularity = domain.PopularityHiddenGem
	}
}

func answerIndifferent(s *domain.Slots, key domain.SlotKey) {
	switch key {
	case domain.KeyContentType:
		s.ContentType = domain.ContentIndifferent
	case domain.KeyGenres:
		s.Genres = []string{domain.Indifferent}
	case domain.KeyMovieDuration:
		s.MovieDuration = domain.LengthIndifferent
	case domain.KeySeasonCount:
		s.SeasonCount = domain.AmountIndifferent
	case domain.KeyTotalEpisodes:
		s.TotalEpisodes = domain.AmountIndifferent
	case domain.KeyEpisodeDuration:
		s.EpisodeDuration = domain.LengthIndifferent
	case domain.KeyRecency:
		s.Recency = domain.RecencyIndifferent
	case domain.KeySocialContext:
		s.SocialContext = domain.SocialIndifferent
	case domain.KeyPopularity:
		s.Popularity = domain.PopularityIndifferent
	}
}
