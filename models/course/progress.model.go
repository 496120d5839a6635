package course

import (
	"time"

	"learnhub/engine"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LessonProgress is the per-(enrollment, lesson) watch state. WatchedRanges
// stores the merged interval set as a JSON list of [start, end] pairs;
// WatchTime always equals its covered seconds except after completion, when
// it snaps to the full duration. QuizUnlocked and IsCompleted only ever flip
// false to true.
type LessonProgress struct {
	gorm.Model
	EnrollmentID  uint                              `json:"enrollment_id" gorm:"index:idx_progress_enrollment_lesson,unique;not null"`
	LessonID      uint                              `json:"lesson_id" gorm:"index:idx_progress_enrollment_lesson,unique;not null"`
	WatchedRanges datatypes.JSONSlice[engine.Range] `json:"watched_ranges"`
	WatchTime     float64                           `json:"watch_time" gorm:"default:0"`   // unique covered seconds
	MaxPosition   float64                           `json:"max_position" gorm:"default:0"` // furthest playhead, monotonic
	QuizUnlocked  bool                              `json:"quiz_unlocked" gorm:"default:false"`
	IsCompleted   bool                              `json:"is_completed" gorm:"default:false"`
	CompletedAt   *time.Time                        `json:"completed_at"`
}

// State converts the row into the engine's value type.
func (p LessonProgress) State() engine.LessonState {
	return engine.LessonState{
		WatchedRanges: []engine.Range(p.WatchedRanges),
		WatchTime:     p.WatchTime,
		MaxPosition:   p.MaxPosition,
		QuizUnlocked:  p.QuizUnlocked,
		IsCompleted:   p.IsCompleted,
		CompletedAt:   p.CompletedAt,
	}
}

// SetState copies a computed state back onto the row.
func (p *LessonProgress) SetState(s engine.LessonState) {
	p.WatchedRanges = datatypes.JSONSlice[engine.Range](s.WatchedRanges)
	p.WatchTime = s.WatchTime
	p.MaxPosition = s.MaxPosition
	p.QuizUnlocked = s.QuizUnlocked
	p.IsCompleted = s.IsCompleted
	p.CompletedAt = s.CompletedAt
}

// MCQAttempt records a learner's latest answer to one question. One row per
// (enrollment, question): resubmitting replaces the selection, and
// correctness is computed at write time.
type MCQAttempt struct {
	gorm.Model
	EnrollmentID   uint   `json:"enrollment_id" gorm:"index:idx_attempt_enrollment_question,unique;not null"`
	QuestionID     uint   `json:"question_id" gorm:"index:idx_attempt_enrollment_question,unique;not null"`
	SelectedOption string `json:"selected_option"` // A, B, C or D
	IsCorrect      bool   `json:"is_correct" gorm:"default:false"`
}
