package course

import "gorm.io/gorm"

// Lesson is a single video lesson within a course. DurationSeconds is the
// one attribute the progress engine depends on; keep it in sync with the
// actual video (scripts/syncdurations backfills from the video host).
type Lesson struct {
	gorm.Model
	CourseID        uint   `json:"course_id" gorm:"index;not null"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	OrderIndex      int    `json:"order_index" gorm:"default:0"`
	YoutubeVideoID  string `json:"youtube_video_id"`
	DurationSeconds int    `json:"duration_seconds" gorm:"default:0"`
	HasQuiz         bool   `json:"has_quiz" gorm:"default:false"`
	IsPreview       bool   `json:"is_preview" gorm:"default:false"` // viewable without enrollment
	IsDeleted       bool   `gorm:"default:false"`
}

// MCQQuestion is a single-answer multiple choice question attached to a
// lesson. CourseID is denormalized so course-wide question counts stay a
// single indexed query.
type MCQQuestion struct {
	gorm.Model
	LessonID      uint   `json:"lesson_id" gorm:"index;not null"`
	CourseID      uint   `json:"course_id" gorm:"index;not null"`
	QuestionText  string `json:"question_text" gorm:"type:text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectOption string `json:"-"` // A, B, C or D; never serialized to learners
	Explanation   string `json:"explanation" gorm:"type:text"`
	OrderIndex    int    `json:"order_index" gorm:"default:0"`
	IsDeleted     bool   `gorm:"default:false"`
}
