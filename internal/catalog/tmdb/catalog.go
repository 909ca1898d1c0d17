package tmdb

import (
	"cmp"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/alexanderramin/moodflix/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Catalog serves one content type from TMDB. Movies and series are two
// Catalog values sharing a Client.
type Catalog struct {
	client *Client
	ct     domain.ContentType
}

func NewMovieCatalog(client *Client) *Catalog {
	return &Catalog{client: client, ct: domain.ContentMovie}
}

func NewSeriesCatalog(client *Client) *Catalog {
	return &Catalog{client: client, ct: domain.ContentSeries}
}

// FormatLabel is the Spanish noun used in replies.
func (c *Catalog) FormatLabel() string {
	if c.ct == domain.ContentSeries {
		return "serie"
	}
	return "película"
}

func (c *Catalog) pathSegment() string {
	if c.ct == domain.ContentSeries {
		return "tv"
	}
	return "movie"
}

func (c *Catalog) metricLabel() string {
	return "tmdb_" + c.pathSegment()
}

type discoverResponse struct {
	Page    int              `json:"page"`
	Results []discoverResult `json:"results"`
}

type discoverResult struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
	ReleaseDate  string `json:"release_date"`
	FirstAirDate string `json:"first_air_date"`
	Overview     string `json:"overview"`
	GenreIDs     []int  `json:"genre_ids"`
}

// FetchCandidates runs a discover query for the slots and page. Results
// keep TMDB's order; scoring happens downstream.
func (c *Catalog) FetchCandidates(ctx context.Context, q domain.FetchQuery) ([]domain.Candidate, error) {
	params := discoverParams(c.ct, q.Slots, q.Page, c.client.cfg)

	var resp discoverResponse
	if err := c.client.get(ctx, c.metricLabel(), "/discover/"+c.pathSegment(), params, &resp); err != nil {
		return nil, fmt.Errorf("discover %s: %w", c.pathSegment(), err)
	}

	out := make([]domain.Candidate, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.ID == 0 {
			continue
		}
		out = append(out, domain.Candidate{
			ID:        c.candidateID(r.ID),
			Title:     cmp.Or(r.Title, r.Name, r.OriginalName, "Sin título"),
			Year:      yearOf(cmp.Or(r.ReleaseDate, r.FirstAirDate)),
			GenreTags: r.GenreIDs,
			Synopsis:  r.Overview,
		})
	}
	c.client.logger.Debug("tmdb discover", "type", c.pathSegment(), "page", q.Page, "results", len(out))
	return out, nil
}

type detailsResponse struct {
	Title            string `json:"title"`
	OriginalTitle    string `json:"original_title"`
	Name             string `json:"name"`
	OriginalName     string `json:"original_name"`
	ReleaseDate      string `json:"release_date"`
	FirstAirDate     string `json:"first_air_date"`
	Overview         string `json:"overview"`
	Runtime          *int   `json:"runtime"`
	EpisodeRunTime   []int  `json:"episode_run_time"`
	NumberOfSeasons  *int   `json:"number_of_seasons"`
	NumberOfEpisodes *int   `json:"number_of_episodes"`
	Genres           []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

type providersResponse struct {
	Results map[string]struct {
		Flatrate []provider `json:"flatrate"`
		Rent     []provider `json:"rent"`
		Buy      []provider `json:"buy"`
	} `json:"results"`
}

type provider struct {
	Name string `json:"provider_name"`
}

// Enrich fills details and streaming availability for a shortlisted
// candidate. A provider lookup failure leaves AvailabilityText empty.
func (c *Catalog) Enrich(ctx context.Context, cand domain.Candidate) (domain.Candidate, error) {
	id, err := c.tmdbID(cand.ID)
	if err != nil {
		return cand, err
	}
	base := fmt.Sprintf("/%s/%d", c.pathSegment(), id)

	// Details and providers are independent lookups; only details can fail
	// the enrichment.
	var (
		d       detailsResponse
		prov    providersResponse
		provErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		params := url.Values{"language": {c.client.cfg.Language}}
		if err := c.client.get(gctx, c.metricLabel(), base, params, &d); err != nil {
			return fmt.Errorf("details %s: %w", cand.ID, err)
		}
		return nil
	})
	g.Go(func() error {
		provErr = c.client.get(gctx, c.metricLabel(), base+"/watch/providers", nil, &prov)
		return nil
	})
	if err := g.Wait(); err != nil {
		return cand, err
	}

	out := cand
	out.Title = cmp.Or(d.Title, d.Name, d.OriginalTitle, d.OriginalName, cand.Title)
	out.Year = cmp.Or(yearOf(cmp.Or(d.ReleaseDate, d.FirstAirDate)), cand.Year)
	out.Synopsis = cmp.Or(d.Overview, cand.Synopsis)

	out.GenreTags = nil
	out.GenreNames = nil
	for _, genre := range d.Genres {
		out.GenreTags = append(out.GenreTags, genre.ID)
		if genre.Name != "" {
			out.GenreNames = append(out.GenreNames, genre.Name)
		}
	}
	if len(out.GenreTags) == 0 {
		out.GenreTags = cand.GenreTags
	}

	if c.ct == domain.ContentSeries {
		if len(d.EpisodeRunTime) > 0 {
			out.DurationMinutes = &d.EpisodeRunTime[0]
		}
		out.Seasons = d.NumberOfSeasons
		out.Episodes = d.NumberOfEpisodes
	} else if d.Runtime != nil && *d.Runtime > 0 {
		out.DurationMinutes = d.Runtime
	}

	if provErr != nil {
		c.client.logger.Warn("watch providers lookup failed", "id", cand.ID, "error", provErr)
		return out, nil
	}
	region := prov.Results[strings.ToUpper(c.client.cfg.Region)]
	out.AvailabilityText = availabilityText(c.FormatLabel(), names(region.Flatrate), names(region.Rent), names(region.Buy))
	return out, nil
}

// availabilityText renders where an item can be watched in Argentina.
func availabilityText(label string, flatrate, rent, buy []string) string {
	var parts []string
	if len(flatrate) > 0 {
		parts = append(parts, "Incluida en suscripción en: "+strings.Join(flatrate, ", "))
	}
	if len(rent) > 0 {
		parts = append(parts, "Para alquilar en: "+strings.Join(rent, ", "))
	}
	if len(buy) > 0 {
		parts = append(parts, "Para comprar en: "+strings.Join(buy, ", "))
	}
	if len(parts) == 0 {
		return "📍 No se encuentra disponible en plataformas de streaming en Argentina."
	}
	return fmt.Sprintf("📺 Esta %s se puede ver en Argentina en:\n- %s", label, strings.Join(parts, "\n- "))
}

func names(ps []provider) []string {
	var out []string
	for _, p := range ps {
		if p.Name != "" {
			out = append(out, p.Name)
		}
	}
	return out
}

func (c *Catalog) candidateID(id int) string {
	return string(c.ct) + ":" + strconv.Itoa(id)
}

func (c *Catalog) tmdbID(candidateID string) (int, error) {
	prefix, raw, ok := strings.Cut(candidateID, ":")
	if !ok || prefix != string(c.ct) {
		return 0, fmt.Errorf("candidate %q does not belong to the %s catalog", candidateID, c.ct)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("candidate %q: %w", candidateID, err)
	}
	return id, nil
}

func yearOf(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}
