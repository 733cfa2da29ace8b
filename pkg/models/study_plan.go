package models

import "time"

// StudyPlan is the aggregate of the exam date and all tracked topics.
// Topics keep insertion order; the plan is persisted as a whole on every mutation.
type StudyPlan struct {
	ExamDate *time.Time `json:"examDate,omitempty"`
	Topics   []Topic    `json:"topics"`
}

// NewStudyPlan returns an empty plan with no exam date set
func NewStudyPlan() *StudyPlan {
	return &StudyPlan{Topics: []Topic{}}
}

// TopicByID returns a pointer into the plan's topic slice, or nil when absent
func (p *StudyPlan) TopicByID(id int64) *Topic {
	for i := range p.Topics {
		if p.Topics[i].ID == id {
			return &p.Topics[i]
		}
	}
	return nil
}

// NextTopicID returns a fresh monotonic topic identifier
func (p *StudyPlan) NextTopicID() int64 {
	var max int64
	for i := range p.Topics {
		if p.Topics[i].ID > max {
			max = p.Topics[i].ID
		}
	}
	return max + 1
}

// RemoveTopic deletes a topic by id and reports whether anything was removed
func (p *StudyPlan) RemoveTopic(id int64) bool {
	for i := range p.Topics {
		if p.Topics[i].ID == id {
			p.Topics = append(p.Topics[:i], p.Topics[i+1:]...)
			return true
		}
	}
	return false
}

// DaysUntilExam returns the whole days from today to the exam date
func (p *StudyPlan) DaysUntilExam(today time.Time) (int, bool) {
	if p.ExamDate == nil {
		return 0, false
	}
	return DaysBetween(today, *p.ExamDate), true
}
