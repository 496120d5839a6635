// Command seed loads a small demo dataset for local development: an admin,
// two learners, and a handful of published courses with lessons and quizzes.
// Prints ready-to-use bearer tokens for the seeded users.
package main

import (
	"log"
	"time"

	"learnhub/config"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	var existing int64
	db.Model(&models.User{}).Count(&existing)
	if existing > 0 {
		log.Fatal("Database is not empty; refusing to seed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	users := []models.User{
		{Name: "Admin", Email: "admin@learnhub.local", Role: "ADMIN", Password: string(hash)},
		{Name: "Priya", Email: "priya@learnhub.local", Password: string(hash)},
		{Name: "Marco", Email: "marco@learnhub.local", Password: string(hash)},
	}
	if err := db.Create(&users).Error; err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	published := time.Now().Add(-72 * time.Hour)
	courses := []courseModels.Course{
		{
			Title:            "Go Fundamentals",
			Description:      "Syntax, types and tooling from zero.",
			Category:         "programming",
			LearningOutcomes: datatypes.JSONSlice[string]{"Go syntax", "structs", "interfaces", "testing"},
			Rating:           4.6,
			IsPublished:      true,
			PublishedAt:      &published,
		},
		{
			Title:            "Concurrent Go",
			Description:      "Goroutines, channels and the memory model.",
			Category:         "programming",
			LearningOutcomes: datatypes.JSONSlice[string]{"goroutines", "channels", "sync", "testing"},
			Rating:           4.8,
			IsPublished:      true,
			PublishedAt:      &published,
		},
		{
			Title:            "SQL for Analysts",
			Description:      "Joins, windows and aggregation.",
			Category:         "data",
			LearningOutcomes: datatypes.JSONSlice[string]{"joins", "window functions", "aggregation"},
			Rating:           4.2,
			IsPublished:      true,
			PublishedAt:      &published,
		},
	}
	if err := db.Create(&courses).Error; err != nil {
		log.Fatalf("Failed to seed courses: %v", err)
	}

	for _, course := range courses {
		lessons := []courseModels.Lesson{
			{CourseID: course.ID, Title: "Introduction", OrderIndex: 1, DurationSeconds: 480},
			{CourseID: course.ID, Title: "Deep Dive", OrderIndex: 2, DurationSeconds: 1260, HasQuiz: true},
		}
		if err := db.Create(&lessons).Error; err != nil {
			log.Fatalf("Failed to seed lessons: %v", err)
		}

		questions := []courseModels.MCQQuestion{
			{
				LessonID: lessons[1].ID, CourseID: course.ID, OrderIndex: 1,
				QuestionText:  "Which statement is true?",
				OptionA:       "Option one", OptionB: "Option two",
				OptionC:       "Option three", OptionD: "Option four",
				CorrectOption: "B",
			},
			{
				LessonID: lessons[1].ID, CourseID: course.ID, OrderIndex: 2,
				QuestionText:  "Pick the correct answer.",
				OptionA:       "First", OptionB: "Second",
				OptionC:       "Third", OptionD: "Fourth",
				CorrectOption: "D",
			},
		}
		if err := db.Create(&questions).Error; err != nil {
			log.Fatalf("Failed to seed questions: %v", err)
		}
	}

	log.Println("Seed complete. Demo tokens:")
	for _, u := range users {
		token, err := middleware.GenerateJWT(u.ID, u.Name, u.Role, u.Email)
		if err != nil {
			log.Fatalf("Failed to mint token for %s: %v", u.Email, err)
		}
		log.Printf("  %s: Bearer %s", u.Email, token)
	}
}
