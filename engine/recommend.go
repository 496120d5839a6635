package engine

import (
	"math"
	"strings"
)

const (
	categoryWeight = 0.4
	tagWeight      = 0.6

	ratedRatingWeight     = 0.4
	ratedEnrollmentWeight = 0.3
	ratedCompletionWeight = 0.3

	// Enrollment counts normalize against this ceiling for the weighted
	// top-rated score; anything above it counts as maximally popular.
	enrollmentNormCeiling = 1000.0
)

// LearnerProfile is the transient interest profile built from a learner's
// enrollment history: per-category enrollment share plus the union of
// normalized tags of enrolled courses.
type LearnerProfile struct {
	CategoryWeight map[string]float64
	Tags           map[string]struct{}
}

// BuildProfile derives a profile from the courses the learner is enrolled in.
// An empty history produces an empty profile (the caller falls back to the
// top-rated list).
func BuildProfile(enrolled []CourseSignals) LearnerProfile {
	profile := LearnerProfile{
		CategoryWeight: make(map[string]float64),
		Tags:           make(map[string]struct{}),
	}
	if len(enrolled) == 0 {
		return profile
	}

	for _, c := range enrolled {
		if c.Category != "" {
			profile.CategoryWeight[c.Category]++
		}
		for tag := range tagSet(c.Tags) {
			profile.Tags[tag] = struct{}{}
		}
	}
	total := float64(len(enrolled))
	for category := range profile.CategoryWeight {
		profile.CategoryWeight[category] /= total
	}
	return profile
}

// Jaccard returns |A∩B| / |A∪B|, and 0 when both sets are empty.
func Jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for t := range a {
		if _, ok := b[t]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// RelevanceScore blends category affinity with tag overlap.
func RelevanceScore(profile LearnerProfile, candidate CourseSignals) float64 {
	return categoryWeight*profile.CategoryWeight[candidate.Category] +
		tagWeight*Jaccard(profile.Tags, tagSet(candidate.Tags))
}

// WeightedScore is the popularity fallback score: rating, enrollments and
// completion rate, each normalized to [0,1], blended and scaled to 0-100.
func WeightedScore(c CourseSignals) float64 {
	normRating := c.Rating / 5
	normEnrollments := math.Min(float64(c.EnrollmentCount)/enrollmentNormCeiling, 1)
	normCompletion := c.CompletionRate / 100

	score := ratedRatingWeight*normRating +
		ratedEnrollmentWeight*normEnrollments +
		ratedCompletionWeight*normCompletion
	return round2(score * 100)
}

// TopRated orders courses by weighted score descending with ascending ID
// tie-break. limit < 0 means no truncation.
func TopRated(courses []CourseSignals, limit int) []RankedCourse {
	ranked := make([]RankedCourse, 0, len(courses))
	for _, c := range courses {
		ranked = append(ranked, RankedCourse{CourseID: c.ID, Score: WeightedScore(c)})
	}
	sortRanked(ranked)
	return truncate(ranked, limit)
}

// Recommend ranks candidates by relevance to the profile and backfills with
// top-rated candidates when fewer than limit score above zero. Candidates
// must already exclude enrolled courses; relevance-ranked entries keep their
// order ahead of backfill.
func Recommend(profile LearnerProfile, candidates []CourseSignals, limit int) []RankedCourse {
	scored := make([]RankedCourse, 0, len(candidates))
	for _, c := range candidates {
		if score := RelevanceScore(profile, c); score > 0 {
			scored = append(scored, RankedCourse{CourseID: c.ID, Score: score})
		}
	}
	sortRanked(scored)
	picked := truncate(scored, limit)

	if limit < 0 || len(picked) >= limit {
		return picked
	}

	seen := make(map[uint]struct{}, len(picked))
	for _, r := range picked {
		seen[r.CourseID] = struct{}{}
	}
	for _, r := range TopRated(candidates, -1) {
		if len(picked) >= limit {
			break
		}
		if _, ok := seen[r.CourseID]; ok {
			continue
		}
		picked = append(picked, r)
	}
	return picked
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}
