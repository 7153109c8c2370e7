package service

import (
	"context"
	"errors"
	"testing"

	"maintenance_diagnosis/internal/models"
)

func TestHistoryService_ListLimits(t *testing.T) {
	repo := &fakeHistoryRepo{records: []models.HistoryRecord{{ID: 1}, {ID: 2}, {ID: 3}}}
	svc := NewHistoryService(repo, &fakeRecorder{})
	ctx := context.Background()

	got, err := svc.List(ctx, 0)
	if err != nil || len(got) != 3 {
		t.Fatalf("List(0) = (%d records, %v)", len(got), err)
	}

	got, err = svc.List(ctx, 2)
	if err != nil || len(got) != 2 || got[0].ID != 2 {
		t.Fatalf("List(2) = (%+v, %v)", got, err)
	}

	if _, err := svc.List(ctx, MaxListLimit+5); err != nil {
		t.Fatalf("List(huge): %v", err)
	}
	if repo.lastLimit != MaxListLimit {
		t.Fatalf("limit not capped: %d", repo.lastLimit)
	}

	if _, err := svc.List(ctx, -1); !errors.Is(err, errNegativeLimit) {
		t.Fatalf("want errNegativeLimit, got %v", err)
	}
}

func TestHistoryService_ClearRecordsMetric(t *testing.T) {
	repo := &fakeHistoryRepo{records: []models.HistoryRecord{{ID: 1}, {ID: 2}}}
	rec := &fakeRecorder{}
	svc := NewHistoryService(repo, rec)

	n, err := svc.Clear(context.Background())
	if err != nil || n != 2 {
		t.Fatalf("Clear = (%d, %v), want 2", n, err)
	}
	if rec.cleared != 2 {
		t.Fatalf("cleared metric = %d, want 2", rec.cleared)
	}
	if c, _ := svc.Count(context.Background()); c != 0 {
		t.Fatalf("Count after clear = %d", c)
	}
}

func TestHistoryService_ClearError(t *testing.T) {
	rec := &fakeRecorder{}
	svc := NewHistoryService(&fakeHistoryRepo{clearErr: errors.New("locked")}, rec)

	if _, err := svc.Clear(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if rec.cleared != 0 {
		t.Fatal("metric must not move on failure")
	}
}
