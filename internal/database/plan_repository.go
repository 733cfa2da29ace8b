package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/prepbot/pkg/models"
)

const examDateKey = "exam_date"

// StudyPlanRepository persists the study plan as a whole: every save
// overwrites both the exam date record and the full topic list in one
// transaction. Last writer wins.
type StudyPlanRepository struct{}

// NewStudyPlanRepository creates a new repository instance
func NewStudyPlanRepository() *StudyPlanRepository {
	return &StudyPlanRepository{}
}

// topicRow is the stored shape of a topic. Date lists are JSON arrays of
// YYYY-MM-DD strings; completedAt keeps the full timestamp.
type topicRow struct {
	ID               int64  `db:"id"`
	Position         int    `db:"position"`
	Name             string `db:"name"`
	DateLearned      string `db:"date_learned"`
	ReviewDates      string `db:"review_dates"`
	CompletedReviews string `db:"completed_reviews"`
	CreatedAt        string `db:"created_at"`
	UpdatedAt        string `db:"updated_at"`
}

type completedReviewRecord struct {
	Date        string `json:"date"`
	CompletedAt string `json:"completedAt"`
}

// Load reads the whole study plan
func (r *StudyPlanRepository) Load(ctx context.Context) (*models.StudyPlan, error) {
	plan := models.NewStudyPlan()

	var value string
	query := DB.Rebind("SELECT value FROM plan_settings WHERE key = ?")
	err := DB.GetContext(ctx, &value, query, examDateKey)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to load exam date: %w", err)
	}
	if err == nil {
		examDate, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored exam date %q: %w", value, err)
		}
		examDate = models.DateOnly(examDate)
		plan.ExamDate = &examDate
	}

	var rows []topicRow
	err = DB.SelectContext(ctx, &rows, `
		SELECT id, position, name, date_learned, review_dates, completed_reviews, created_at, updated_at
		FROM topics
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load topics: %w", err)
	}

	for _, row := range rows {
		topic, err := decodeTopic(row)
		if err != nil {
			return nil, fmt.Errorf("failed to decode topic %d: %w", row.ID, err)
		}
		plan.Topics = append(plan.Topics, topic)
	}

	return plan, nil
}

// Save overwrites the stored plan with the given one
func (r *StudyPlanRepository) Save(ctx context.Context, plan *models.StudyPlan) error {
	tx, err := DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	query := tx.Rebind("DELETE FROM plan_settings WHERE key = ?")
	if _, err := tx.ExecContext(ctx, query, examDateKey); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear exam date: %w", err)
	}
	if plan.ExamDate != nil {
		query = tx.Rebind("INSERT INTO plan_settings (key, value) VALUES (?, ?)")
		if _, err := tx.ExecContext(ctx, query, examDateKey, plan.ExamDate.Format(time.RFC3339)); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save exam date: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM topics"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear topics: %w", err)
	}

	insert := tx.Rebind(`
		INSERT INTO topics (id, position, name, date_learned, review_dates, completed_reviews, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	for i := range plan.Topics {
		row, err := encodeTopic(&plan.Topics[i], i)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to encode topic %d: %w", plan.Topics[i].ID, err)
		}
		_, err = tx.ExecContext(ctx, insert,
			row.ID,
			row.Position,
			row.Name,
			row.DateLearned,
			row.ReviewDates,
			row.CompletedReviews,
			row.CreatedAt,
			row.UpdatedAt,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save topic %d: %w", row.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func encodeTopic(topic *models.Topic, position int) (*topicRow, error) {
	dates := make([]string, len(topic.ReviewDates))
	for i, d := range topic.ReviewDates {
		dates[i] = d.Format(models.DateLayout)
	}
	reviewDates, err := json.Marshal(dates)
	if err != nil {
		return nil, fmt.Errorf("failed to encode review dates: %w", err)
	}

	records := make([]completedReviewRecord, len(topic.CompletedReviews))
	for i, c := range topic.CompletedReviews {
		records[i] = completedReviewRecord{
			Date:        c.Date.Format(models.DateLayout),
			CompletedAt: c.CompletedAt.UTC().Format(time.RFC3339),
		}
	}
	completedReviews, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode completed reviews: %w", err)
	}

	return &topicRow{
		ID:               topic.ID,
		Position:         position,
		Name:             topic.Name,
		DateLearned:      topic.DateLearned.Format(models.DateLayout),
		ReviewDates:      string(reviewDates),
		CompletedReviews: string(completedReviews),
		CreatedAt:        topic.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        topic.UpdatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func decodeTopic(row topicRow) (models.Topic, error) {
	topic := models.Topic{
		ID:   row.ID,
		Name: row.Name,
	}

	dateLearned, err := models.ParseDate(row.DateLearned)
	if err != nil {
		return topic, fmt.Errorf("bad date_learned %q: %w", row.DateLearned, err)
	}
	topic.DateLearned = dateLearned

	var dates []string
	if err := json.Unmarshal([]byte(row.ReviewDates), &dates); err != nil {
		return topic, fmt.Errorf("bad review_dates: %w", err)
	}
	topic.ReviewDates = make([]time.Time, 0, len(dates))
	for _, s := range dates {
		d, err := models.ParseDate(s)
		if err != nil {
			return topic, fmt.Errorf("bad review date %q: %w", s, err)
		}
		topic.ReviewDates = append(topic.ReviewDates, d)
	}

	var records []completedReviewRecord
	if err := json.Unmarshal([]byte(row.CompletedReviews), &records); err != nil {
		return topic, fmt.Errorf("bad completed_reviews: %w", err)
	}
	topic.CompletedReviews = make([]models.CompletedReview, 0, len(records))
	for _, rec := range records {
		d, err := models.ParseDate(rec.Date)
		if err != nil {
			return topic, fmt.Errorf("bad completed review date %q: %w", rec.Date, err)
		}
		completedAt, err := time.Parse(time.RFC3339, rec.CompletedAt)
		if err != nil {
			return topic, fmt.Errorf("bad completedAt %q: %w", rec.CompletedAt, err)
		}
		topic.CompletedReviews = append(topic.CompletedReviews, models.CompletedReview{
			Date:        d,
			CompletedAt: completedAt,
		})
	}

	if topic.CreatedAt, err = time.Parse(time.RFC3339, row.CreatedAt); err != nil {
		return topic, fmt.Errorf("bad created_at %q: %w", row.CreatedAt, err)
	}
	if topic.UpdatedAt, err = time.Parse(time.RFC3339, row.UpdatedAt); err != nil {
		return topic, fmt.Errorf("bad updated_at %q: %w", row.UpdatedAt, err)
	}

	return topic, nil
}
