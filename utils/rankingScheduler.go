package utils

import (
	"log"
	"sync"
	"time"

	"learnhub/config"
	"learnhub/database"
	"learnhub/engine"
	courseModels "learnhub/models/course"
	"learnhub/store"

	"github.com/robfig/cron/v3"
)

// RankedCourseEntry is a course joined with the score that ordered it.
type RankedCourseEntry struct {
	Course courseModels.Course `json:"course"`
	Score  float64             `json:"score"`
}

// RankingCache holds precomputed trending and top-rated orderings plus the
// signal snapshot recommendations score against. Trending and top-rated are
// O(all published courses) per recompute, so they refresh on a schedule
// instead of per request; TTL guards against a stalled scheduler.
type RankingCache struct {
	mu          sync.RWMutex
	signals     []engine.CourseSignals
	trending    []engine.RankedCourse
	topRated    []engine.RankedCourse
	courses     map[uint]courseModels.Course
	refreshedAt time.Time
}

// Rankings is the process-wide ranking cache.
var Rankings = &RankingCache{}

func logRankings(message string) {
	log.Printf("[RANKING-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartRankingScheduler warms the cache and schedules periodic refreshes.
func StartRankingScheduler() *cron.Cron {
	RefreshRankings()

	c := cron.New()
	if _, err := c.AddFunc(config.AppConfig.RankingRefresh, RefreshRankings); err != nil {
		logRankings("Invalid refresh spec " + config.AppConfig.RankingRefresh + ": " + err.Error())
		return c
	}
	c.Start()
	logRankings("Scheduler started with spec " + config.AppConfig.RankingRefresh)
	return c
}

// RefreshRankings rebuilds the cache from the database.
func RefreshRankings() {
	s := store.New(database.Database.Db)

	signals, err := s.PublishedSignals()
	if err != nil {
		logRankings("Failed to load course signals: " + err.Error())
		return
	}

	ids := make([]uint, 0, len(signals))
	for _, sig := range signals {
		ids = append(ids, sig.ID)
	}
	courses, err := s.CoursesByIDs(ids)
	if err != nil {
		logRankings("Failed to load courses: " + err.Error())
		return
	}
	byID := make(map[uint]courseModels.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	now := time.Now()
	trending := engine.TopTrending(signals, -1, now)
	topRated := engine.TopRated(signals, -1)

	Rankings.mu.Lock()
	Rankings.signals = signals
	Rankings.trending = trending
	Rankings.topRated = topRated
	Rankings.courses = byID
	Rankings.refreshedAt = now
	Rankings.mu.Unlock()
}

func (rc *RankingCache) ensureFresh() {
	ttl := time.Duration(config.AppConfig.RankingTTLMinutes) * time.Minute
	rc.mu.RLock()
	stale := time.Since(rc.refreshedAt) > ttl
	rc.mu.RUnlock()
	if stale {
		RefreshRankings()
	}
}

// Trending returns the top limit courses by gravity score.
func (rc *RankingCache) Trending(limit int) []RankedCourseEntry {
	rc.ensureFresh()
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.entries(rc.trending, limit)
}

// TopRated returns the top limit courses by weighted popularity score; it is
// the cold-start and backfill list for recommendations.
func (rc *RankingCache) TopRated(limit int) []RankedCourseEntry {
	rc.ensureFresh()
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.entries(rc.topRated, limit)
}

// Snapshot hands out the cached signals and course rows for per-request
// recommendation scoring.
func (rc *RankingCache) Snapshot() ([]engine.CourseSignals, map[uint]courseModels.Course) {
	rc.ensureFresh()
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	signals := make([]engine.CourseSignals, len(rc.signals))
	copy(signals, rc.signals)
	return signals, rc.courses
}

// Resolve maps ranked IDs back to course rows, dropping any course that
// vanished since the snapshot.
func (rc *RankingCache) Resolve(ranked []engine.RankedCourse) []RankedCourseEntry {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	entries := make([]RankedCourseEntry, 0, len(ranked))
	for _, r := range ranked {
		if c, ok := rc.courses[r.CourseID]; ok {
			entries = append(entries, RankedCourseEntry{Course: c, Score: r.Score})
		}
	}
	return entries
}

func (rc *RankingCache) entries(ranked []engine.RankedCourse, limit int) []RankedCourseEntry {
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	entries := make([]RankedCourseEntry, 0, len(ranked))
	for _, r := range ranked {
		if c, ok := rc.courses[r.CourseID]; ok {
			entries = append(entries, RankedCourseEntry{Course: c, Score: r.Score})
		}
	}
	return entries
}
