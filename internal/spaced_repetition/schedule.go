package spaced_repetition

import (
	"errors"
	"time"

	"github.com/example/prepbot/pkg/models"
)

// ErrNoReviewDue is returned when a topic has no pending review on or before today
var ErrNoReviewDue = errors.New("no reviews to complete yet")

// BuildSchedule converts the compressed intervals into calendar review dates,
// walked cumulatively from dateLearned. The result is empty when the exam
// date is unset or the topic was learned after it. A final offset that
// overshoots the exam date is dropped, not clamped.
func (s *Scheduler) BuildSchedule(dateLearned, examDate time.Time) []time.Time {
	if examDate.IsZero() || dateLearned.After(examDate) {
		return nil
	}

	daysAvailable := models.DaysBetween(dateLearned, examDate)
	intervals := s.ComputeIntervals(daysAvailable)

	var schedule []time.Time
	last := models.DateOnly(dateLearned)
	for _, interval := range intervals {
		next := last.AddDate(0, 0, interval)
		if !next.After(models.DateOnly(examDate)) {
			schedule = append(schedule, next)
			last = next
		}
	}

	return schedule
}

// RescheduleForExamDate adjusts a topic's pending reviews after the exam date
// moved from oldExamDate to newExamDate. Topics without pending reviews, or
// learned on or after the new exam date, are left untouched. Pending dates
// past the new exam date are dropped. The schedule is only regenerated when
// the new time budget is strictly smaller than the old one; regenerated dates
// that coincide with an already-completed review are removed. Completed
// reviews are never altered.
func (s *Scheduler) RescheduleForExamDate(topic *models.Topic, oldExamDate, newExamDate time.Time) {
	if len(topic.ReviewDates) == 0 || !topic.DateLearned.Before(newExamDate) {
		return
	}

	kept := topic.ReviewDates[:0]
	for _, d := range topic.ReviewDates {
		if !d.After(models.DateOnly(newExamDate)) {
			kept = append(kept, d)
		}
	}
	topic.ReviewDates = kept

	newBudget := models.DaysBetween(topic.DateLearned, newExamDate)
	if oldExamDate.IsZero() || newBudget >= models.DaysBetween(topic.DateLearned, oldExamDate) {
		return
	}

	regenerated := s.BuildSchedule(topic.DateLearned, newExamDate)
	pending := []time.Time{}
	for _, d := range regenerated {
		if !topic.HasCompletedOn(d) {
			pending = append(pending, d)
		}
	}
	topic.ReviewDates = pending
}

// CompleteNextDue moves the earliest pending review on or before today into
// the topic's completed reviews, stamping it with now. It returns the review
// date that was completed, or ErrNoReviewDue when nothing is eligible.
func (s *Scheduler) CompleteNextDue(topic *models.Topic, today, now time.Time) (time.Time, error) {
	topic.SortReviewDates()

	idx := -1
	for i, d := range topic.ReviewDates {
		if !d.After(models.DateOnly(today)) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return time.Time{}, ErrNoReviewDue
	}

	completed := topic.ReviewDates[idx]
	topic.CompletedReviews = append(topic.CompletedReviews, models.CompletedReview{
		Date:        completed,
		CompletedAt: now,
	})
	topic.ReviewDates = append(topic.ReviewDates[:idx], topic.ReviewDates[idx+1:]...)

	return completed, nil
}
