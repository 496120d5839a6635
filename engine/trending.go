package engine

import (
	"math"
	"sort"
	"time"
)

const (
	enrollmentWeight = 3
	viewWeight       = 1
	likeWeight       = 2

	gravityExponent    = 1.5
	gravityOffsetHours = 2.0
)

// CourseSignals is the read-only per-course snapshot the rankers score.
// Counters come from the catalog side; Rating is the 0-5 review average and
// CompletionRate the 0-100 percentage of enrollments that finished.
type CourseSignals struct {
	ID              uint
	Category        string
	Tags            []string
	ViewCount       int
	LikeCount       int
	EnrollmentCount int
	Rating          float64
	CompletionRate  float64
	PublishedAt     *time.Time
	CreatedAt       time.Time
}

// RankedCourse pairs a course with the score that ordered it.
type RankedCourse struct {
	CourseID uint
	Score    float64
}

// GravityScore computes the time-decayed popularity score: weighted
// engagement divided by (age in hours + 2)^1.5. The offset keeps brand-new
// courses from dividing by a near-zero age.
func GravityScore(c CourseSignals, now time.Time) float64 {
	engagement := float64(c.EnrollmentCount*enrollmentWeight +
		c.ViewCount*viewWeight +
		c.LikeCount*likeWeight)

	ref := c.CreatedAt
	if c.PublishedAt != nil {
		ref = *c.PublishedAt
	}
	ageHours := now.Sub(ref).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	return engagement / math.Pow(ageHours+gravityOffsetHours, gravityExponent)
}

// TopTrending scores every course and returns the top limit in descending
// score order. Equal scores order by ascending course ID so repeated calls
// return the same list. limit < 0 means no truncation.
func TopTrending(courses []CourseSignals, limit int, now time.Time) []RankedCourse {
	ranked := make([]RankedCourse, 0, len(courses))
	for _, c := range courses {
		ranked = append(ranked, RankedCourse{CourseID: c.ID, Score: GravityScore(c, now)})
	}
	sortRanked(ranked)
	return truncate(ranked, limit)
}

func sortRanked(ranked []RankedCourse) {
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].CourseID < ranked[j].CourseID
	})
}

func truncate(ranked []RankedCourse, limit int) []RankedCourse {
	if limit >= 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}
