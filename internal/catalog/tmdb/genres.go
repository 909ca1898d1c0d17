package tmdb

import (
	"strings"

	"github.com/alexanderramin/moodflix/internal/domain"
)

// movieGenres maps canonical genre names onto TMDB movie genre IDs.
var movieGenres = map[string]int{
	"accion":          domain.GenreAction,
	"aventura":        domain.GenreAdventure,
	"animacion":       domain.GenreAnimation,
	"comedia":         domain.GenreComedy,
	"crimen":          domain.GenreCrime,
	"documental":      domain.GenreDocumentary,
	"drama":           domain.GenreDrama,
	"familia":         domain.GenreFamily,
	"fantasia":        domain.GenreFantasy,
	"terror":          domain.GenreHorror,
	"misterio":        domain.GenreMystery,
	"romance":         domain.GenreRomance,
	"ciencia ficcion": domain.GenreSciFi,
	"thriller":        domain.GenreThriller,
	"guerra":          domain.GenreWar,
}

// tvGenres uses the TV composites where TMDB has no plain series genre.
var tvGenres = map[string]int{
	"accion":          domain.GenreTVActionAdventure,
	"aventura":        domain.GenreTVActionAdventure,
	"animacion":       domain.GenreAnimation,
	"comedia":         domain.GenreComedy,
	"crimen":          domain.GenreCrime,
	"documental":      domain.GenreDocumentary,
	"drama":           domain.GenreDrama,
	"familia":         domain.GenreFamily,
	"fantasia":        domain.GenreTVSciFiFantasy,
	"misterio":        domain.GenreMystery,
	"ciencia ficcion": domain.GenreTVSciFiFantasy,
	"guerra":          domain.GenreTVWarPolitics,
}

// resolveGenreIDs maps genre names to IDs for the given content type,
// skipping unknown names, the sentinel and duplicates.
func resolveGenreIDs(ct domain.ContentType, names []string) []int {
	genres := movieGenres
	if ct == domain.ContentSeries {
		genres = tvGenres
	}
	var ids []int
	for _, name := range names {
		id, ok := genres[strings.ToLower(strings.TrimSpace(name))]
		if !ok || containsInt(ids, id) {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
