package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlots_EffectiveContentType(t *testing.T) {
	assert.Equal(t, ContentSeries, Slots{ContentType: ContentSeries}.EffectiveContentType())
	assert.Equal(t, ContentMovie, Slots{ContentType: ContentMovie}.EffectiveContentType())
	assert.Equal(t, ContentMovie, Slots{ContentType: ContentIndifferent}.EffectiveContentType())
	assert.Equal(t, ContentMovie, Slots{}.EffectiveContentType())
	assert.Equal(t, ContentMovie, Slots{ContentType: "tv"}.EffectiveContentType(), "malformed falls back to movie")
}

func TestSlots_CloneDoesNotAlias(t *testing.T) {
	orig := Slots{Genres: []string{"comedia"}, Restrictions: []string{"no_horror"}}
	cp := orig.Clone()
	cp.Genres[0] = "terror"
	cp.Restrictions = append(cp.Restrictions, "no_war")

	assert.Equal(t, "comedia", orig.Genres[0])
	assert.Len(t, orig.Restrictions, 1)
}

func TestSlots_IsEmpty(t *testing.T) {
	assert.True(t, Slots{}.IsEmpty())
	assert.False(t, Slots{MaxResults: 2}.IsEmpty())
	assert.False(t, Slots{Genres: []string{Indifferent}}.IsEmpty())
}

func TestSlots_ActiveRestrictionsSkipsUnknown(t *testing.T) {
	s := Slots{Restrictions: []string{"no_horror", "no_clowns", Indifferent, "no_war"}}
	assert.Equal(t, []Restriction{NoHorror, NoWar}, s.ActiveRestrictions())
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, ContentIndifferent.Valid())
	assert.False(t, ContentType("tv").Valid())
	assert.True(t, SocialFamily.Valid())
	assert.False(t, SocialContext("coworkers").Valid())
	assert.True(t, AmountIndifferent.Valid())
	assert.False(t, Length("").Valid())
	assert.True(t, PopularityHiddenGem.Valid())
	assert.False(t, Recency("old").Valid())
}

func TestSession_ResetKeepsOwner(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	s := NewSession("u1", now)
	s.Slots.ContentType = ContentMovie
	s.LastQuestionKey = KeyGenres
	s.Page = 4
	s.MarkSeen("tmdb:movie:1")
	s.LastRecommendedIDs = []string{"tmdb:movie:1"}

	s.Reset()

	require.Equal(t, "u1", s.UserID)
	assert.True(t, s.Slots.IsEmpty())
	assert.Empty(t, s.LastQuestionKey)
	assert.Equal(t, 1, s.Page)
	assert.Empty(t, s.SeenItemIDs)
	assert.False(t, s.HasRecommended())
	assert.Equal(t, now, s.LastActivity)
}

func TestSession_IdleSince(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	s := NewSession("u1", now)

	assert.False(t, s.IdleSince(now.Add(5*time.Minute), 5*time.Minute), "exactly at threshold is not idle")
	assert.True(t, s.IdleSince(now.Add(5*time.Minute+time.Second), 5*time.Minute))
	assert.False(t, s.IdleSince(now.Add(time.Hour), 0), "zero ttl disables expiry")
}

func TestSession_ClearSeenRewindsPage(t *testing.T) {
	s := NewSession("u1", time.Now())
	s.MarkSeen("a")
	s.Page = 3

	s.ClearSeen()

	assert.False(t, s.HasSeen("a"))
	assert.Equal(t, 1, s.Page)
}

func TestClampInt(t *testing.T) {
	tests := []struct {
		v, lo, hi, want int
	}{
		{0, 1, 5, 1},
		{-3, 0, 5, 0},
		{3, 1, 5, 3},
		{5, 1, 5, 5},
		{9, 1, 5, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampInt(tt.v, tt.lo, tt.hi), "ClampInt(%d, %d, %d)", tt.v, tt.lo, tt.hi)
	}
}
