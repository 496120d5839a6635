package store

import (
	"errors"
	"time"

	"learnhub/engine"
	courseModels "learnhub/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecordWatchSegment folds one playback segment into the lesson's watch state
// and recalculates the enrollment's mastery aggregate, all under the
// enrollment row lock. Malformed segments no-op inside the engine; unknown
// enrollment or lesson surface as not-found errors.
func (s *Store) RecordWatchSegment(enrollmentID, lessonID uint, start, end float64) (MasterySummary, error) {
	var summary MasterySummary
	err := s.db.Transaction(func(tx *gorm.DB) error {
		enrollment, err := lockEnrollment(tx, enrollmentID)
		if err != nil {
			return err
		}

		var lesson courseModels.Lesson
		err = tx.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, enrollment.CourseID, false).
			First(&lesson).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLessonNotFound
		}
		if err != nil {
			return err
		}

		var progress courseModels.LessonProgress
		err = tx.Where("enrollment_id = ? AND lesson_id = ?", enrollment.ID, lesson.ID).
			First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			progress = courseModels.LessonProgress{EnrollmentID: enrollment.ID, LessonID: lesson.ID}
		} else if err != nil {
			return err
		}

		next := engine.ApplySegment(progress.State(), start, end, float64(lesson.DurationSeconds), time.Now())
		progress.SetState(next)
		if err := tx.Save(&progress).Error; err != nil {
			return err
		}

		state, _, err := s.recalculateLocked(tx, enrollment)
		if err != nil {
			return err
		}

		summary = summarize(state, next.IsCompleted, next.QuizUnlocked)
		return nil
	})
	return summary, err
}

// RecalculateMastery refreshes the enrollment aggregate from its lesson
// progress and quiz attempts. Called after quiz submissions and on page load;
// safe to re-run any number of times (latches make it idempotent downward).
func (s *Store) RecalculateMastery(enrollmentID uint) (MasterySummary, error) {
	var summary MasterySummary
	err := s.db.Transaction(func(tx *gorm.DB) error {
		enrollment, err := lockEnrollment(tx, enrollmentID)
		if err != nil {
			return err
		}

		state, allCompleted, err := s.recalculateLocked(tx, enrollment)
		if err != nil {
			return err
		}

		summary = summarize(state, allCompleted, false)
		return nil
	})
	return summary, err
}

// SubmitAnswer upserts the learner's answer for one question, grades it
// against the stored correct option, and recalculates mastery in the same
// transaction.
func (s *Store) SubmitAnswer(enrollmentID, questionID uint, selected string) (courseModels.MCQAttempt, MasterySummary, error) {
	var (
		attempt courseModels.MCQAttempt
		summary MasterySummary
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		enrollment, err := lockEnrollment(tx, enrollmentID)
		if err != nil {
			return err
		}

		var question courseModels.MCQQuestion
		err = tx.Where("id = ? AND course_id = ? AND is_deleted = ?", questionID, enrollment.CourseID, false).
			First(&question).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		if err != nil {
			return err
		}

		err = tx.Where("enrollment_id = ? AND question_id = ?", enrollment.ID, question.ID).
			First(&attempt).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			attempt = courseModels.MCQAttempt{EnrollmentID: enrollment.ID, QuestionID: question.ID}
		} else if err != nil {
			return err
		}

		attempt.SelectedOption = selected
		attempt.IsCorrect = selected == question.CorrectOption
		if err := tx.Save(&attempt).Error; err != nil {
			return err
		}

		state, allCompleted, err := s.recalculateLocked(tx, enrollment)
		if err != nil {
			return err
		}

		summary = summarize(state, allCompleted, false)
		return nil
	})
	return attempt, summary, err
}

// EnrollmentByUserAndCourse resolves the caller's enrollment for a course.
func (s *Store) EnrollmentByUserAndCourse(userID, courseID uint) (courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment
	err := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return enrollment, ErrEnrollmentNotFound
	}
	return enrollment, err
}

func lockEnrollment(tx *gorm.DB, enrollmentID uint) (*courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment
	err := forUpdate(tx).Where("id = ? AND is_deleted = ?", enrollmentID, false).
		First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// recalculateLocked loads the mastery snapshot for a locked enrollment, runs
// the scorer and writes the result back, issuing the certificate the moment
// the latch first flips. The second return reports whether every lesson in
// the course is completed, for callers with no single lesson in context.
func (s *Store) recalculateLocked(tx *gorm.DB, enrollment *courseModels.Enrollment) (engine.MasteryState, bool, error) {
	snap, err := loadSnapshot(tx, enrollment)
	if err != nil {
		return engine.MasteryState{}, false, err
	}

	state := engine.RecalculateMastery(snap, time.Now())
	unlockedNow := state.CertificateUnlocked && !enrollment.CertificateUnlocked

	enrollment.VideoProgress = state.VideoProgress
	enrollment.QuizScore = state.QuizScore
	enrollment.MasteryScore = state.MasteryScore
	enrollment.CertificateUnlocked = state.CertificateUnlocked
	enrollment.IsCompleted = state.IsCompleted
	enrollment.CompletedAt = state.CompletedAt
	enrollment.Status = statusFor(state)

	if err := tx.Save(enrollment).Error; err != nil {
		return engine.MasteryState{}, false, err
	}

	if unlockedNow {
		if err := issueCertificate(tx, enrollment); err != nil {
			return engine.MasteryState{}, false, err
		}
	}
	return state, snap.AllLessonsCompleted, nil
}

func loadSnapshot(tx *gorm.DB, enrollment *courseModels.Enrollment) (engine.MasterySnapshot, error) {
	snap := engine.MasterySnapshot{
		Previous: engine.MasteryState{
			VideoProgress:       enrollment.VideoProgress,
			QuizScore:           enrollment.QuizScore,
			MasteryScore:        enrollment.MasteryScore,
			CertificateUnlocked: enrollment.CertificateUnlocked,
			IsCompleted:         enrollment.IsCompleted,
			CompletedAt:         enrollment.CompletedAt,
		},
	}

	var lessons []courseModels.Lesson
	if err := tx.Where("course_id = ? AND is_deleted = ?", enrollment.CourseID, false).
		Find(&lessons).Error; err != nil {
		return snap, err
	}

	var progressRows []courseModels.LessonProgress
	if err := tx.Where("enrollment_id = ?", enrollment.ID).Find(&progressRows).Error; err != nil {
		return snap, err
	}
	completedLessons := make(map[uint]bool, len(progressRows))
	for _, p := range progressRows {
		snap.TotalWatchedSeconds += p.WatchTime
		completedLessons[p.LessonID] = p.IsCompleted
	}

	snap.AllLessonsCompleted = len(lessons) > 0
	for _, lesson := range lessons {
		snap.TotalCourseSeconds += float64(lesson.DurationSeconds)
		if !completedLessons[lesson.ID] {
			snap.AllLessonsCompleted = false
		}
	}

	var totalQuestions int64
	if err := tx.Model(&courseModels.MCQQuestion{}).
		Where("course_id = ? AND is_deleted = ?", enrollment.CourseID, false).
		Count(&totalQuestions).Error; err != nil {
		return snap, err
	}
	snap.TotalQuestions = int(totalQuestions)

	var correct int64
	if err := tx.Model(&courseModels.MCQAttempt{}).
		Where("enrollment_id = ? AND is_correct = ?", enrollment.ID, true).
		Count(&correct).Error; err != nil {
		return snap, err
	}
	snap.CorrectAnswers = int(correct)

	return snap, nil
}

func issueCertificate(tx *gorm.DB, enrollment *courseModels.Enrollment) error {
	var existing courseModels.Certificate
	err := tx.Where("enrollment_id = ?", enrollment.ID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	certificate := courseModels.Certificate{
		UserID:            enrollment.UserID,
		CourseID:          enrollment.CourseID,
		EnrollmentID:      enrollment.ID,
		CertificateNumber: uuid.NewString(),
		IssuedAt:          time.Now(),
	}
	return tx.Create(&certificate).Error
}

func statusFor(state engine.MasteryState) string {
	switch {
	case state.IsCompleted:
		return courseModels.StatusCompleted
	case state.VideoProgress > 0 || state.MasteryScore > 0:
		return courseModels.StatusInProgress
	default:
		return courseModels.StatusEnrolled
	}
}

func summarize(state engine.MasteryState, lessonCompleted, quizUnlocked bool) MasterySummary {
	return MasterySummary{
		VideoProgress:       state.VideoProgress,
		QuizScore:           state.QuizScore,
		MasteryScore:        state.MasteryScore,
		CertificateUnlocked: state.CertificateUnlocked,
		LessonCompleted:     lessonCompleted,
		QuizUnlocked:        quizUnlocked,
	}
}
