package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/prepbot/pkg/models"
	"github.com/go-co-op/gocron"
)

// Default notification window
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 21
)

// Notifier interface for sending review reminders
type Notifier interface {
	SendReviewReminder(dueToday, overdue int) error
}

// PlanSource provides the current study plan
type PlanSource interface {
	Plan(ctx context.Context) (*models.StudyPlan, error)
}

// Scheduler manages scheduled reminder checks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	plans     PlanSource
	notifier  Notifier
}

// New creates a new scheduler instance
func New(plans PlanSource, notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		plans:     plans,
		notifier:  notifier,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Schedule hourly check for due and overdue reviews
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminders sends a reminder when reviews are due, respecting
// the configured notification hours
func (s *Scheduler) checkAndSendReminders() {
	currentHour := time.Now().Hour()

	startHour := DefaultNotificationStartHour
	endHour := DefaultNotificationEndHour

	if startHourStr := os.Getenv("NOTIFICATION_START_HOUR"); startHourStr != "" {
		if h, err := strconv.Atoi(startHourStr); err == nil && h >= 0 && h <= 23 {
			startHour = h
		}
	}
	if endHourStr := os.Getenv("NOTIFICATION_END_HOUR"); endHourStr != "" {
		if h, err := strconv.Atoi(endHourStr); err == nil && h >= 0 && h <= 23 {
			endHour = h
		}
	}

	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside notification hours (%d-%d), skipping reminders",
			currentHour, startHour, endHour)
		return
	}

	if err := s.RunManualCheck(); err != nil {
		log.Printf("Error checking due reviews: %v", err)
	}
}

// RunManualCheck counts due and overdue reviews and notifies when any exist
func (s *Scheduler) RunManualCheck() error {
	plan, err := s.plans.Plan(context.Background())
	if err != nil {
		return err
	}

	dueToday, overdue := CountDueReviews(plan.Topics, time.Now())
	if dueToday+overdue == 0 {
		return nil
	}

	return s.notifier.SendReviewReminder(dueToday, overdue)
}

// CountDueReviews tallies pending reviews due today and already overdue
func CountDueReviews(topics []models.Topic, now time.Time) (dueToday, overdue int) {
	today := models.DateOnly(now)
	for i := range topics {
		for _, d := range topics[i].ReviewDates {
			switch {
			case d.Before(today):
				overdue++
			case d.Equal(today):
				dueToday++
			}
		}
	}
	return dueToday, overdue
}
