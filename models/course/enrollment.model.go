package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses.
const (
	StatusEnrolled   = "ENROLLED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// Enrollment tracks one learner in one course together with the mastery
// aggregate. VideoProgress, MasteryScore and CertificateUnlocked are one-way
// latches: the mastery scorer never writes a lower value, and all of them
// persist in a single transaction or not at all.
type Enrollment struct {
	gorm.Model
	UserID              uint       `json:"user_id" gorm:"index;not null"`
	CourseID            uint       `json:"course_id" gorm:"index;not null"`
	Status              string     `json:"status" gorm:"default:'ENROLLED'"`
	VideoProgress       float64    `json:"video_progress" gorm:"default:0"` // 0-100
	QuizScore           float64    `json:"quiz_score" gorm:"default:0"`     // 0-100
	MasteryScore        float64    `json:"mastery_score" gorm:"default:0"`  // 0-100
	CertificateUnlocked bool       `json:"certificate_unlocked" gorm:"default:false"`
	IsCompleted         bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt         *time.Time `json:"completed_at"`
	IsDeleted           bool       `gorm:"default:false"`
}
