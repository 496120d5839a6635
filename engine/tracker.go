package engine

import "time"

const (
	// QuizUnlockCoverage is the watched fraction of a lesson that unlocks its quiz.
	QuizUnlockCoverage = 0.50
	// CompletionCoverage is the watched fraction that completes a lesson outright.
	CompletionCoverage = 0.95
	// NearEndCoverage is the reduced coverage accepted when the learner has
	// reached the end of the video (seek-to-end without a full rewatch).
	NearEndCoverage = 0.80
	// NearEndToleranceSeconds is how close to the end maxPosition must get for
	// the reduced-coverage rule to apply.
	NearEndToleranceSeconds = 3.0
)

// LessonState is the per-(enrollment, lesson) progress snapshot. WatchedRanges
// is always sorted, merged and non-overlapping, and WatchTime equals its total
// covered seconds, capped at the lesson duration.
type LessonState struct {
	WatchedRanges []Range
	WatchTime     float64
	MaxPosition   float64
	QuizUnlocked  bool
	IsCompleted   bool
	CompletedAt   *time.Time
}

// ApplySegment folds one reported playback segment into the state and applies
// the dual-threshold unlock policy. Malformed bounds are clamped or ignored,
// never an error. The input state is not modified.
func ApplySegment(s LessonState, start, end, duration float64, now time.Time) LessonState {
	// Once a lesson is fully latched there is nothing left to unlock; skip the
	// re-merge and only keep maxPosition moving.
	if s.QuizUnlocked && s.IsCompleted {
		s.MaxPosition = raiseScore(s.MaxPosition, end)
		return s
	}

	if start < 0 {
		start = 0
	}
	if end > duration {
		end = duration
	}
	if start >= end {
		return s
	}

	ranges := make([]Range, 0, len(s.WatchedRanges)+1)
	ranges = append(ranges, s.WatchedRanges...)
	ranges = append(ranges, Range{Start: start, End: end})

	merged, total := MergeRanges(ranges)
	if total > duration {
		total = duration
	}
	s.WatchedRanges = merged
	s.WatchTime = total
	s.MaxPosition = raiseScore(s.MaxPosition, end)

	coverage := 1.0
	if duration > 0 {
		coverage = s.WatchTime / duration
	}

	s.QuizUnlocked = latchBool(s.QuizUnlocked, coverage >= QuizUnlockCoverage)

	completed := coverage >= CompletionCoverage ||
		(s.MaxPosition >= duration-NearEndToleranceSeconds && coverage >= NearEndCoverage)
	if completed && !s.IsCompleted {
		s.IsCompleted = true
		s.WatchTime = duration
		s.QuizUnlocked = true
		if s.CompletedAt == nil {
			t := now
			s.CompletedAt = &t
		}
	}
	return s
}
