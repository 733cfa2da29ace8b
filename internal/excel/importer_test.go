package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/prepbot/pkg/models"
)

type recordedTopic struct {
	name        string
	dateLearned time.Time
}

type fakeAdder struct {
	added  []recordedTopic
	nextID int64
}

func (f *fakeAdder) AddTopic(ctx context.Context, name string, dateLearned time.Time) (*models.Topic, error) {
	f.added = append(f.added, recordedTopic{name: name, dateLearned: dateLearned})
	f.nextID++
	return &models.Topic{ID: f.nextID, Name: name, DateLearned: dateLearned}, nil
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "topics.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestImportTopicsFromCSV(t *testing.T) {
	path := writeCSV(t, "Topic,Date learned\nIntegrals,2024-01-05\nDerivatives,2024-01-07\n")

	adder := &fakeAdder{}
	config := DefaultImportConfig()
	config.FilePath = path

	result, err := ImportTopics(context.Background(), adder, config)
	if err != nil {
		t.Fatalf("ImportTopics: %v", err)
	}

	if result.TotalProcessed != 2 || result.Created != 2 || result.Skipped != 0 {
		t.Fatalf("result = %+v, want 2 processed, 2 created", result)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("errors = %v, want none", result.Errors)
	}
	if len(adder.added) != 2 {
		t.Fatalf("added = %d topics, want 2", len(adder.added))
	}
	if adder.added[0].name != "Integrals" {
		t.Fatalf("first topic = %q, want Integrals", adder.added[0].name)
	}
	want, _ := models.ParseDate("2024-01-05")
	if !adder.added[0].dateLearned.Equal(want) {
		t.Fatalf("first date = %v, want %v", adder.added[0].dateLearned, want)
	}
}

func TestImportSkipsEmptyNames(t *testing.T) {
	path := writeCSV(t, "Topic,Date learned\n,2024-01-05\nDerivatives,2024-01-07\n")

	adder := &fakeAdder{}
	config := DefaultImportConfig()
	config.FilePath = path

	result, err := ImportTopics(context.Background(), adder, config)
	if err != nil {
		t.Fatalf("ImportTopics: %v", err)
	}

	if result.Created != 1 || result.Skipped != 1 {
		t.Fatalf("result = %+v, want 1 created, 1 skipped", result)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("errors = %v, want none for an empty name", result.Errors)
	}
}

func TestImportReportsBadDates(t *testing.T) {
	path := writeCSV(t, "Topic,Date learned\nIntegrals,05.01.2024\n")

	adder := &fakeAdder{}
	config := DefaultImportConfig()
	config.FilePath = path

	result, err := ImportTopics(context.Background(), adder, config)
	if err != nil {
		t.Fatalf("ImportTopics: %v", err)
	}

	if result.Created != 0 || result.Skipped != 1 {
		t.Fatalf("result = %+v, want 0 created, 1 skipped", result)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %v, want one bad-date error", result.Errors)
	}
}

func TestImportDefaultsEmptyDateToToday(t *testing.T) {
	path := writeCSV(t, "Topic,Date learned\nIntegrals,\n")

	adder := &fakeAdder{}
	config := DefaultImportConfig()
	config.FilePath = path

	result, err := ImportTopics(context.Background(), adder, config)
	if err != nil {
		t.Fatalf("ImportTopics: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("result = %+v, want 1 created", result)
	}

	today := models.DateOnly(time.Now())
	if !adder.added[0].dateLearned.Equal(today) {
		t.Fatalf("date = %v, want today %v", adder.added[0].dateLearned, today)
	}
}

func TestColumnToIndex(t *testing.T) {
	cases := []struct {
		column string
		want   int
	}{
		{"A", 0},
		{"B", 1},
		{"Z", 25},
		{"AA", 26},
		{"AB", 27},
	}
	for _, tc := range cases {
		if got := columnToIndex(tc.column); got != tc.want {
			t.Errorf("columnToIndex(%q) = %d, want %d", tc.column, got, tc.want)
		}
	}
}
