// Package progress derives per-topic and plan-wide progress metrics from
// topic state. The per-card and summary classifications are intentionally
// kept as two independent computations, mirroring how the UI derives them.
package progress

import (
	"math"
	"time"

	"github.com/example/prepbot/pkg/models"
)

// Status classifies a topic's review state
type Status string

const (
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
	StatusDueSoon   Status = "due_soon"
	StatusUpcoming  Status = "upcoming"
)

// DueSoonWindowDays is how close (inclusive) the next review must be to count as due soon
const DueSoonWindowDays = 3

// TopicProgress holds the metrics rendered on a single topic card
type TopicProgress struct {
	Completed       int
	Total           int
	Percent         int
	Status          Status
	NextReview      time.Time // zero when no pending review on or after today
	DaysUntilReview int       // meaningful for DueSoon and Upcoming
}

// ForTopic computes the card metrics for one topic as of today.
// Status priority: a topic whose completed count equals its total review
// count is Completed, even in the degenerate zero-review case; otherwise any
// pending date before today makes it Overdue; otherwise a next review within
// DueSoonWindowDays is DueSoon; otherwise it is Upcoming.
func ForTopic(topic *models.Topic, today time.Time) TopicProgress {
	day := models.DateOnly(today)

	p := TopicProgress{
		Completed: len(topic.CompletedReviews),
		Total:     topic.TotalReviews(),
	}
	if p.Total > 0 {
		p.Percent = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
	}

	overdue := false
	topic.SortReviewDates()
	for _, d := range topic.ReviewDates {
		if d.Before(day) {
			overdue = true
		} else {
			p.NextReview = d
			break
		}
	}

	switch {
	case p.Completed == p.Total:
		p.Status = StatusCompleted
	case overdue:
		p.Status = StatusOverdue
	default:
		p.DaysUntilReview = models.DaysBetween(day, p.NextReview)
		if p.DaysUntilReview <= DueSoonWindowDays {
			p.Status = StatusDueSoon
		} else {
			p.Status = StatusUpcoming
		}
	}

	return p
}

// Summary aggregates plan-wide progress counters
type Summary struct {
	TotalTopics     int
	CompletedTopics int
	UpcomingTopics  int
	OverdueTopics   int
	OverallPercent  int
}

// Summarize re-derives the global counters from scratch rather than reusing
// ForTopic; the two classifications are independent and may diverge.
func Summarize(topics []models.Topic, today time.Time) Summary {
	day := models.DateOnly(today)

	s := Summary{TotalTopics: len(topics)}
	totalProgress := 0.0

	for i := range topics {
		topic := &topics[i]
		completed := len(topic.CompletedReviews)
		total := topic.TotalReviews()
		if total > 0 {
			totalProgress += float64(completed) / float64(total)
		}

		switch {
		case completed == total:
			s.CompletedTopics++
		case len(topic.ReviewDates) > 0:
			hasOverdue := false
			for _, d := range topic.ReviewDates {
				if d.Before(day) {
					hasOverdue = true
					break
				}
			}
			if hasOverdue {
				s.OverdueTopics++
			} else {
				s.UpcomingTopics++
			}
		default:
			s.UpcomingTopics++
		}
	}

	if s.TotalTopics > 0 {
		s.OverallPercent = int(math.Round(totalProgress / float64(s.TotalTopics) * 100))
	}

	return s
}
