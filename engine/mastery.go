package engine

import (
	"math"
	"time"
)

const (
	videoWeight = 0.6
	quizWeight  = 0.4
	// CertificateThreshold is the mastery score at which the certificate
	// unlocks permanently.
	CertificateThreshold = 80.0
)

// MasteryState holds the per-enrollment aggregate fields. VideoProgress and
// MasteryScore are one-way latches, CertificateUnlocked never resets.
type MasteryState struct {
	VideoProgress       float64
	QuizScore           float64
	MasteryScore        float64
	CertificateUnlocked bool
	IsCompleted         bool
	CompletedAt         *time.Time
}

// MasterySnapshot is the read side of a recalculation: everything the scorer
// needs, loaded up front so the computation itself touches no storage.
type MasterySnapshot struct {
	TotalCourseSeconds  float64
	TotalWatchedSeconds float64
	AllLessonsCompleted bool
	TotalQuestions      int
	CorrectAnswers      int
	Previous            MasteryState
}

// RecalculateMastery derives the next aggregate state from a snapshot. The
// result never regresses relative to snap.Previous: video and mastery scores
// go through the raise helpers and the certificate latch is permanent.
func RecalculateMastery(snap MasterySnapshot, now time.Time) MasteryState {
	out := snap.Previous

	rawProgress := 100.0
	if snap.TotalCourseSeconds > 0 {
		rawProgress = math.Floor(snap.TotalWatchedSeconds / snap.TotalCourseSeconds * 100)
		if rawProgress < 0 {
			rawProgress = 0
		}
		if rawProgress > 100 {
			rawProgress = 100
		}
		// Flooring can leave a fully watched course at 99; every lesson being
		// complete overrides the fractional sum.
		if snap.AllLessonsCompleted {
			rawProgress = 100
		}
	}
	out.VideoProgress = raiseScore(snap.Previous.VideoProgress, rawProgress)

	quizScore := 100.0
	if snap.TotalQuestions > 0 {
		quizScore = round1(float64(snap.CorrectAnswers) / float64(snap.TotalQuestions) * 100)
	}
	out.QuizScore = quizScore

	rawMastery := round1(out.VideoProgress*videoWeight + out.QuizScore*quizWeight)
	out.MasteryScore = raiseScore(snap.Previous.MasteryScore, rawMastery)

	if out.MasteryScore >= CertificateThreshold || snap.Previous.CertificateUnlocked {
		out.CertificateUnlocked = true
		out.IsCompleted = true
		if out.CompletedAt == nil {
			t := now
			out.CompletedAt = &t
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
