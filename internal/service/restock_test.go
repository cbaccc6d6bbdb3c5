package service_test

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/wekesa/crm-maintenance/internal/logfile"
	"github.com/wekesa/crm-maintenance/internal/model"
	"github.com/wekesa/crm-maintenance/internal/service"
)

type MockProductRepo struct {
	updated       []model.Product
	lastThreshold int
	lastIncrement int
}

func (m *MockProductRepo) RestockBelow(threshold, increment int) ([]model.Product, error) {
	m.lastThreshold = threshold
	m.lastIncrement = increment
	return m.updated, nil
}

var blockHeaderRe = regexp.MustCompile(`^=== \d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} ===$`)

func TestRestockLogsUpdatedProducts(t *testing.T) {
	repo := &MockProductRepo{
		updated: []model.Product{
			{ID: 2, Name: "Mouse", Stock: 14},
			{ID: 3, Name: "Keyboard", Stock: 17},
		},
	}
	logPath := filepath.Join(t.TempDir(), "low_stock.log")

	job := &service.Restock{
		ProductRepo: repo,
		Log:         &logfile.File{Path: logPath},
	}

	count, err := job.Run()
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 restocked products, got %d", count)
	}

	if repo.lastThreshold != 10 || repo.lastIncrement != 10 {
		t.Errorf("expected default threshold/increment 10/10, got %d/%d",
			repo.lastThreshold, repo.lastIncrement)
	}

	lines := readLines(t, logPath)
	if len(lines) != 4 {
		t.Fatalf("expected 4 log lines, got %d", len(lines))
	}
	if !blockHeaderRe.MatchString(lines[0]) {
		t.Errorf("block header has wrong format: %q", lines[0])
	}
	if lines[1] != "2 products updated." {
		t.Errorf("unexpected summary line: %q", lines[1])
	}
	if lines[2] != "- Mouse: 14" {
		t.Errorf("unexpected product line: %q", lines[2])
	}
	if lines[3] != "- Keyboard: 17" {
		t.Errorf("unexpected product line: %q", lines[3])
	}
}

func TestRestockNothingLowStillLogsBlock(t *testing.T) {
	repo := &MockProductRepo{}
	logPath := filepath.Join(t.TempDir(), "low_stock.log")

	job := &service.Restock{
		ProductRepo: repo,
		Log:         &logfile.File{Path: logPath},
	}

	count, err := job.Run()
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 restocked products, got %d", count)
	}

	lines := readLines(t, logPath)
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}
	if lines[1] != "0 products updated." {
		t.Errorf("unexpected summary line: %q", lines[1])
	}
}
