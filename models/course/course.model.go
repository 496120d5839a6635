package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course represents a published learning course. The progress engine treats
// these rows as read-only: authoring owns everything except the engagement
// counters, which the catalog handlers bump in place.
type Course struct {
	gorm.Model
	Title            string                      `json:"title"`
	Description      string                      `json:"description"`
	Category         string                      `json:"category" gorm:"index"`
	Level            string                      `json:"level" gorm:"default:'beginner'"` // beginner, intermediate, advanced, all
	ThumbnailURL     string                      `json:"thumbnail_url"`
	LearningOutcomes datatypes.JSONSlice[string] `json:"learning_outcomes"` // declared outcomes; doubles as the tag set for recommendations
	Rating           float64                     `json:"rating" gorm:"default:0"` // 0-5 review average, maintained by the reviews service
	ViewCount        int                         `json:"view_count" gorm:"default:0"`
	LikeCount        int                         `json:"like_count" gorm:"default:0"`
	EnrollmentCount  int                         `json:"enrollment_count" gorm:"default:0"`
	IsPublished      bool                        `json:"is_published" gorm:"default:false"`
	PublishedAt      *time.Time                  `json:"published_at"`
	IsDeleted        bool                        `gorm:"default:false"`
}
