package models

import (
	"testing"
	"time"
)

func testDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := ParseDate(value)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", value, err)
	}
	return d
}

func TestNextTopicID(t *testing.T) {
	plan := NewStudyPlan()
	if id := plan.NextTopicID(); id != 1 {
		t.Fatalf("NextTopicID on empty plan = %d, want 1", id)
	}

	plan.Topics = []Topic{{ID: 1}, {ID: 5}, {ID: 3}}
	if id := plan.NextTopicID(); id != 6 {
		t.Fatalf("NextTopicID = %d, want 6", id)
	}

	// Deleting the max id must not cause reuse of a lower one
	plan.RemoveTopic(5)
	plan.Topics = append(plan.Topics, Topic{ID: plan.NextTopicID()})
	if plan.Topics[len(plan.Topics)-1].ID != 4 {
		t.Fatalf("id after delete = %d, want 4", plan.Topics[len(plan.Topics)-1].ID)
	}
}

func TestRemoveTopic(t *testing.T) {
	plan := NewStudyPlan()
	plan.Topics = []Topic{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}

	if !plan.RemoveTopic(2) {
		t.Fatal("RemoveTopic(2) = false, want true")
	}
	if len(plan.Topics) != 2 || plan.Topics[0].ID != 1 || plan.Topics[1].ID != 3 {
		t.Fatalf("topics after remove = %+v", plan.Topics)
	}

	if plan.RemoveTopic(99) {
		t.Fatal("RemoveTopic(99) = true, want false")
	}
	if len(plan.Topics) != 2 {
		t.Fatalf("no-op remove changed the collection: %+v", plan.Topics)
	}
}

func TestTopicByID(t *testing.T) {
	plan := NewStudyPlan()
	plan.Topics = []Topic{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}

	topic := plan.TopicByID(2)
	if topic == nil || topic.Name != "B" {
		t.Fatalf("TopicByID(2) = %+v", topic)
	}

	// The pointer aims into the plan's slice so edits stick
	topic.Name = "B2"
	if plan.Topics[1].Name != "B2" {
		t.Fatal("TopicByID returned a detached copy")
	}

	if plan.TopicByID(99) != nil {
		t.Fatal("TopicByID(99) != nil")
	}
}

func TestNextReview(t *testing.T) {
	topic := Topic{}
	if _, ok := topic.NextReview(); ok {
		t.Fatal("NextReview on empty schedule reported a date")
	}

	topic.ReviewDates = []time.Time{
		testDate(t, "2024-01-10"),
		testDate(t, "2024-01-03"),
		testDate(t, "2024-01-20"),
	}
	next, ok := topic.NextReview()
	if !ok || !next.Equal(testDate(t, "2024-01-03")) {
		t.Fatalf("NextReview = %v, %v", next, ok)
	}
}

func TestDaysUntilExam(t *testing.T) {
	plan := NewStudyPlan()
	if _, ok := plan.DaysUntilExam(testDate(t, "2024-01-01")); ok {
		t.Fatal("DaysUntilExam with no exam date reported a value")
	}

	exam := testDate(t, "2024-01-15")
	plan.ExamDate = &exam
	days, ok := plan.DaysUntilExam(testDate(t, "2024-01-01"))
	if !ok || days != 14 {
		t.Fatalf("DaysUntilExam = %d, %v, want 14, true", days, ok)
	}
}
