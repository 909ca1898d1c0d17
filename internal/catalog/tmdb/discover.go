package tmdb

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/alexanderramin/moodflix/internal/domain"
)

const (
	newSince      = "2015-01-01"
	classicBefore = "2005-12-31"

	shortMovieMaxMinutes   = 100
	longMovieMinMinutes    = 130
	shortEpisodeMaxMinutes = 30
	longEpisodeMinMinutes  = 40
)

// discoverParams builds the /discover query for one content type. Slots
// holding the sentinel or an unknown value add no filter.
func discoverParams(ct domain.ContentType, s domain.Slots, page int, cfg Config) url.Values {
	p := url.Values{}
	p.Set("language", cfg.Language)
	p.Set("region", strings.ToUpper(cfg.Region))
	p.Set("include_adult", "false")
	p.Set("page", strconv.Itoa(max(page, 1)))

	if ids := resolveGenreIDs(ct, s.Genres); len(ids) > 0 {
		p.Set("with_genres", joinInts(ids, ","))
	}

	var without []int
	for _, r := range s.ActiveRestrictions() {
		for _, tag := range r.GenreTags() {
			if !containsInt(without, tag) {
				without = append(without, tag)
			}
		}
	}
	if len(without) > 0 {
		p.Set("without_genres", joinInts(without, ","))
	}

	dateField := "primary_release_date"
	if ct == domain.ContentSeries {
		dateField = "first_air_date"
	}
	switch s.Recency {
	case domain.RecencyNew:
		p.Set(dateField+".gte", newSince)
	case domain.RecencyClassic:
		p.Set(dateField+".lte", classicBefore)
	}

	if ct == domain.ContentSeries {
		switch s.EpisodeDuration {
		case domain.LengthShort:
			p.Set("with_runtime.lte", strconv.Itoa(shortEpisodeMaxMinutes))
		case domain.LengthLong:
			p.Set("with_runtime.gte", strconv.Itoa(longEpisodeMinMinutes))
		}
	} else {
		switch s.MovieDuration {
		case domain.LengthShort:
			p.Set("with_runtime.lte", strconv.Itoa(shortMovieMaxMinutes))
		case domain.LengthLong:
			p.Set("with_runtime.gte", strconv.Itoa(longMovieMinMinutes))
		}
	}

	switch s.Popularity {
	case domain.PopularityWellKnown:
		p.Set("sort_by", "popularity.desc")
		p.Set("vote_count.gte", "500")
	case domain.PopularityHiddenGem:
		p.Set("sort_by", "vote_average.desc")
		p.Set("vote_count.gte", "50")
		p.Set("vote_count.lte", "2000")
	default:
		// Unbounded vote_average sorting surfaces titles with a single vote.
		p.Set("sort_by", "vote_average.desc")
		p.Set("vote_count.gte", "100")
	}
	return p
}

func joinInts(ids []int, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}
