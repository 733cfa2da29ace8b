package models

import (
	"sort"
	"time"
)

// Topic represents a subject or theme that needs to be reviewed
type Topic struct {
	ID               int64             `json:"id" db:"id"`
	Name             string            `json:"name" db:"name"`
	DateLearned      time.Time         `json:"dateLearned" db:"date_learned"`
	ReviewDates      []time.Time       `json:"reviewDates"`
	CompletedReviews []CompletedReview `json:"completedReviews"`
	CreatedAt        time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at" db:"updated_at"`
}

// CompletedReview records a review that was marked done
type CompletedReview struct {
	Date        time.Time `json:"date"`
	CompletedAt time.Time `json:"completedAt"`
}

// SortReviewDates orders pending review dates ascending
func (t *Topic) SortReviewDates() {
	sort.Slice(t.ReviewDates, func(i, j int) bool {
		return t.ReviewDates[i].Before(t.ReviewDates[j])
	})
}

// NextReview returns the earliest pending review date
func (t *Topic) NextReview() (time.Time, bool) {
	if len(t.ReviewDates) == 0 {
		return time.Time{}, false
	}
	next := t.ReviewDates[0]
	for _, d := range t.ReviewDates[1:] {
		if d.Before(next) {
			next = d
		}
	}
	return next, true
}

// HasCompletedOn reports whether a review was already completed on the given day
func (t *Topic) HasCompletedOn(date time.Time) bool {
	for _, c := range t.CompletedReviews {
		if SameDay(c.Date, date) {
			return true
		}
	}
	return false
}

// TotalReviews is the number of completed plus pending reviews
func (t *Topic) TotalReviews() int {
	return len(t.CompletedReviews) + len(t.ReviewDates)
}
