package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is issued automatically, exactly once, when an enrollment's
// certificate latch flips. Issuance happens inside the same transaction as
// the mastery recalculation that unlocked it.
type Certificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"index;not null"`
	CourseID          uint      `json:"course_id" gorm:"index;not null"`
	EnrollmentID      uint      `json:"enrollment_id" gorm:"uniqueIndex;not null"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique"`
	IssuedAt          time.Time `json:"issued_at"`
	IsDeleted         bool      `gorm:"default:false"`
}
