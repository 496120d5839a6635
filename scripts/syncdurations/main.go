// Command syncdurations backfills lesson durations from the YouTube Data
// API. Watch-progress thresholds are computed against DurationSeconds, so a
// lesson left at 0 after authoring would never unlock its quiz through
// coverage; run this after bulk imports.
//
// Usage: YOUTUBE_API_KEY=... go run ./scripts/syncdurations
package main

import (
	"fmt"
	"log"
	"regexp"
	"strconv"

	"learnhub/config"
	"learnhub/database"
	courseModels "learnhub/models/course"

	"github.com/go-resty/resty/v2"
)

type videoListResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"` // ISO 8601, e.g. PT1H2M3S
		} `json:"contentDetails"`
	} `json:"items"`
}

var iso8601Duration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	if config.AppConfig.YouTubeAPIKey == "" {
		log.Fatal("YOUTUBE_API_KEY is required")
	}

	var lessons []courseModels.Lesson
	err := database.Database.Db.
		Where("duration_seconds = 0 AND youtube_video_id <> '' AND is_deleted = ?", false).
		Find(&lessons).Error
	if err != nil {
		log.Fatalf("Failed to fetch lessons: %v", err)
	}

	log.Printf("Lessons missing durations: %d", len(lessons))
	if len(lessons) == 0 {
		return
	}

	client := resty.New()
	updated := 0
	failed := 0

	for _, lesson := range lessons {
		seconds, err := fetchDuration(client, lesson.YoutubeVideoID)
		if err != nil {
			log.Printf("Lesson %d (%s): %v", lesson.ID, lesson.YoutubeVideoID, err)
			failed++
			continue
		}

		err = database.Database.Db.Model(&courseModels.Lesson{}).
			Where("id = ?", lesson.ID).
			UpdateColumn("duration_seconds", seconds).Error
		if err != nil {
			log.Printf("Lesson %d: update failed: %v", lesson.ID, err)
			failed++
			continue
		}
		updated++
	}

	log.Printf("Done. Updated: %d, failed: %d", updated, failed)
}

func fetchDuration(client *resty.Client, videoID string) (int, error) {
	var result videoListResponse
	resp, err := client.R().
		SetQueryParams(map[string]string{
			"part": "contentDetails",
			"id":   videoID,
			"key":  config.AppConfig.YouTubeAPIKey,
		}).
		SetResult(&result).
		Get(config.AppConfig.YouTubeAPIURL)
	if err != nil {
		return 0, err
	}
	if resp.IsError() {
		return 0, fmt.Errorf("youtube api returned %s", resp.Status())
	}
	if len(result.Items) == 0 {
		return 0, fmt.Errorf("video not found")
	}

	return parseISO8601Duration(result.Items[0].ContentDetails.Duration)
}

func parseISO8601Duration(d string) (int, error) {
	match := iso8601Duration.FindStringSubmatch(d)
	if match == nil {
		return 0, fmt.Errorf("unrecognized duration %q", d)
	}
	seconds := 0
	units := []int{3600, 60, 1}
	for i, unit := range units {
		if match[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(match[i+1])
		if err != nil {
			return 0, err
		}
		seconds += n * unit
	}
	return seconds, nil
}
