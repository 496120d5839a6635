package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rankNow = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func signalsAt(id uint, views, likes, enrollments int, age time.Duration) CourseSignals {
	published := rankNow.Add(-age)
	return CourseSignals{
		ID:              id,
		ViewCount:       views,
		LikeCount:       likes,
		EnrollmentCount: enrollments,
		PublishedAt:     &published,
		CreatedAt:       published.Add(-time.Hour),
	}
}

func TestGravityScoreWeights(t *testing.T) {
	// engagement = 10 enrollments*3 + 20 views*1 + 5 likes*2 = 60,
	// age 6h: 60 / 8^1.5.
	score := GravityScore(signalsAt(1, 20, 5, 10, 6*time.Hour), rankNow)
	assert.InDelta(t, 60.0/22.627416997969522, score, 1e-9)
}

func TestGravityScoreYoungerRanksHigher(t *testing.T) {
	young := signalsAt(1, 100, 10, 50, 2*time.Hour)
	old := signalsAt(2, 100, 10, 50, 200*time.Hour)

	assert.Greater(t, GravityScore(young, rankNow), GravityScore(old, rankNow))
}

func TestGravityScoreUnpublishedFallsBackToCreatedAt(t *testing.T) {
	created := rankNow.Add(-10 * time.Hour)
	c := CourseSignals{ID: 1, ViewCount: 12, CreatedAt: created}

	expected := GravityScore(CourseSignals{ID: 1, ViewCount: 12, PublishedAt: &created, CreatedAt: created}, rankNow)
	assert.Equal(t, expected, GravityScore(c, rankNow))
}

func TestGravityScoreFutureTimestampClamps(t *testing.T) {
	// Clock skew can put publishedAt slightly ahead of now; age clamps to 0
	// instead of producing a negative base.
	future := rankNow.Add(30 * time.Minute)
	c := CourseSignals{ID: 1, ViewCount: 8, PublishedAt: &future, CreatedAt: rankNow}

	assert.InDelta(t, 8.0/2.8284271247461903, GravityScore(c, rankNow), 1e-9)
}

func TestTopTrendingOrdersAndTruncates(t *testing.T) {
	courses := []CourseSignals{
		signalsAt(1, 10, 0, 0, time.Hour),
		signalsAt(2, 1000, 50, 200, time.Hour),
		signalsAt(3, 500, 20, 80, time.Hour),
	}

	ranked := TopTrending(courses, 2, rankNow)
	require.Len(t, ranked, 2)
	assert.Equal(t, uint(2), ranked[0].CourseID)
	assert.Equal(t, uint(3), ranked[1].CourseID)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestTopTrendingTieBreaksByCourseID(t *testing.T) {
	courses := []CourseSignals{
		signalsAt(9, 100, 10, 40, 3*time.Hour),
		signalsAt(4, 100, 10, 40, 3*time.Hour),
	}

	ranked := TopTrending(courses, -1, rankNow)
	require.Len(t, ranked, 2)
	assert.Equal(t, uint(4), ranked[0].CourseID)
	assert.Equal(t, uint(9), ranked[1].CourseID)
}

func TestTopTrendingEmptyInput(t *testing.T) {
	assert.Empty(t, TopTrending(nil, 10, rankNow))
}
