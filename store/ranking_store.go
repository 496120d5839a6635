package store

import (
	"learnhub/engine"
	courseModels "learnhub/models/course"
)

// PublishedSignals loads the ranking snapshot for every published course.
// Enrollment counts come from an actual per-course count rather than the
// cached counter column, and completion rate from completed enrollments over
// that count.
func (s *Store) PublishedSignals() ([]engine.CourseSignals, error) {
	var courses []courseModels.Course
	err := s.db.Where("is_published = ? AND is_deleted = ?", true, false).Find(&courses).Error
	if err != nil {
		return nil, err
	}

	type courseCount struct {
		CourseID uint
		Total    int64
	}

	enrollments := make(map[uint]int64)
	var enrollmentRows []courseCount
	err = s.db.Model(&courseModels.Enrollment{}).
		Select("course_id, COUNT(*) AS total").
		Where("is_deleted = ?", false).
		Group("course_id").
		Scan(&enrollmentRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range enrollmentRows {
		enrollments[row.CourseID] = row.Total
	}

	completions := make(map[uint]int64)
	var completionRows []courseCount
	err = s.db.Model(&courseModels.Enrollment{}).
		Select("course_id, COUNT(*) AS total").
		Where("is_deleted = ? AND is_completed = ?", false, true).
		Group("course_id").
		Scan(&completionRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range completionRows {
		completions[row.CourseID] = row.Total
	}

	signals := make([]engine.CourseSignals, 0, len(courses))
	for _, c := range courses {
		enrolled := enrollments[c.ID]
		completionRate := 0.0
		if enrolled > 0 {
			completionRate = float64(completions[c.ID]) / float64(enrolled) * 100
		}
		signals = append(signals, engine.CourseSignals{
			ID:              c.ID,
			Category:        c.Category,
			Tags:            c.LearningOutcomes,
			ViewCount:       c.ViewCount,
			LikeCount:       c.LikeCount,
			EnrollmentCount: int(enrolled),
			Rating:          c.Rating,
			CompletionRate:  completionRate,
			PublishedAt:     c.PublishedAt,
			CreatedAt:       c.CreatedAt,
		})
	}
	return signals, nil
}

// EnrolledCourseIDs returns the set of course IDs the learner is enrolled in.
func (s *Store) EnrolledCourseIDs(userID uint) (map[uint]struct{}, error) {
	var ids []uint
	err := s.db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Pluck("course_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// EnrolledCourses loads the course rows behind a learner's enrollments,
// published or not; the recommendation profile is built from these.
func (s *Store) EnrolledCourses(userID uint) ([]courseModels.Course, error) {
	var courses []courseModels.Course
	err := s.db.
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ? AND enrollments.is_deleted = ? AND courses.is_deleted = ?", userID, false, false).
		Find(&courses).Error
	return courses, err
}

// CoursesByIDs loads course rows preserving the order of ids.
func (s *Store) CoursesByIDs(ids []uint) ([]courseModels.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var courses []courseModels.Course
	if err := s.db.Where("id IN ?", ids).Find(&courses).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]courseModels.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	ordered := make([]courseModels.Course, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}
