// Package planner owns the study-plan lifecycle. Every mutating command
// loads the whole plan from the store, applies the change through the
// spaced-repetition engine and writes the whole plan back; a failed command
// leaves the stored plan untouched.
package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/prepbot/internal/progress"
	"github.com/example/prepbot/internal/spaced_repetition"
	"github.com/example/prepbot/pkg/models"
)

// Severity grades a user-facing notification
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Store is the durable whole-plan persistence collaborator
type Store interface {
	Load(ctx context.Context) (*models.StudyPlan, error)
	Save(ctx context.Context, plan *models.StudyPlan) error
}

// Planner dispatches the study-plan commands
type Planner struct {
	store Store
	sched *spaced_repetition.Scheduler
	now   func() time.Time
}

// New creates a planner backed by the given store
func New(store Store) *Planner {
	return &Planner{
		store: store,
		sched: spaced_repetition.NewScheduler(),
		now:   time.Now,
	}
}

// Plan returns the current study plan
func (p *Planner) Plan(ctx context.Context) (*models.StudyPlan, error) {
	plan, err := p.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load study plan: %w", err)
	}
	return plan, nil
}

// Summary returns the plan together with its aggregated progress
func (p *Planner) Summary(ctx context.Context) (*models.StudyPlan, progress.Summary, error) {
	plan, err := p.Plan(ctx)
	if err != nil {
		return nil, progress.Summary{}, err
	}
	return plan, progress.Summarize(plan.Topics, p.now()), nil
}

// SetExamDate stores a new exam date and recomputes every topic's pending
// review dates when the date actually changed
func (p *Planner) SetExamDate(ctx context.Context, date time.Time) (*models.StudyPlan, error) {
	if date.IsZero() {
		return nil, validationf("please select an exam date")
	}

	plan, err := p.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load study plan: %w", err)
	}

	newDate := models.DateOnly(date)
	oldDate := time.Time{}
	if plan.ExamDate != nil {
		oldDate = *plan.ExamDate
	}
	plan.ExamDate = &newDate

	if !oldDate.Equal(newDate) {
		for i := range plan.Topics {
			p.sched.RescheduleForExamDate(&plan.Topics[i], oldDate, newDate)
		}
	}

	if err := p.store.Save(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save study plan: %w", err)
	}
	return plan, nil
}

// AddTopic creates a topic with its review schedule computed at creation
func (p *Planner) AddTopic(ctx context.Context, name string, dateLearned time.Time) (*models.Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" || dateLearned.IsZero() {
		return nil, validationf("please fill in all fields")
	}

	plan, err := p.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load study plan: %w", err)
	}
	if plan.ExamDate == nil {
		return nil, validationf("please set an exam date first")
	}

	learned := models.DateOnly(dateLearned)
	if learned.After(*plan.ExamDate) {
		return nil, validationf("date learned cannot be after the exam date")
	}

	now := p.now()
	topic := models.Topic{
		ID:               plan.NextTopicID(),
		Name:             name,
		DateLearned:      learned,
		ReviewDates:      p.sched.BuildSchedule(learned, *plan.ExamDate),
		CompletedReviews: []models.CompletedReview{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	plan.Topics = append(plan.Topics, topic)

	if err := p.store.Save(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save study plan: %w", err)
	}
	return &topic, nil
}

// CompleteNextReview marks a topic's earliest due review as done. A missing
// topic id is a silent no-op and returns a nil topic; a topic with nothing
// due returns spaced_repetition.ErrNoReviewDue.
func (p *Planner) CompleteNextReview(ctx context.Context, topicID int64) (*models.Topic, error) {
	plan, err := p.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load study plan: %w", err)
	}

	topic := plan.TopicByID(topicID)
	if topic == nil {
		return nil, nil
	}

	now := p.now()
	if _, err := p.sched.CompleteNextDue(topic, now, now); err != nil {
		return nil, err
	}
	topic.UpdatedAt = now

	if err := p.store.Save(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save study plan: %w", err)
	}

	result := *topic
	return &result, nil
}

// DeleteTopic removes a topic by id. Deleting an unknown id is a silent
// no-op: the collection is left unchanged and no error is reported.
func (p *Planner) DeleteTopic(ctx context.Context, topicID int64) (bool, error) {
	plan, err := p.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load study plan: %w", err)
	}

	if !plan.RemoveTopic(topicID) {
		return false, nil
	}

	if err := p.store.Save(ctx, plan); err != nil {
		return false, fmt.Errorf("failed to save study plan: %w", err)
	}
	return true, nil
}
