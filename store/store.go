// Package store loads snapshots for the scoring engine and persists its
// results. All mutating operations lock the enrollment row and run inside a
// single transaction, so the latch fields land together or not at all and
// concurrent players on the same enrollment serialize.
package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrQuestionNotFound   = errors.New("question not found")
)

// Store wraps a gorm handle with the engine's read/persist operations.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// MasterySummary is the field set every mutating operation returns to the
// player UI and dashboards.
type MasterySummary struct {
	VideoProgress       float64 `json:"video_progress"`
	QuizScore           float64 `json:"quiz_score"`
	MasteryScore        float64 `json:"mastery_score"`
	CertificateUnlocked bool    `json:"certificate_unlocked"`
	LessonCompleted     bool    `json:"lesson_completed"`
	QuizUnlocked        bool    `json:"quiz_unlocked"`
}

// forUpdate adds a row lock on dialects that support it. SQLite (tests)
// serializes writers on its own and rejects FOR UPDATE syntax.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
