package service

import (
	"context"
	"errors"

	"maintenance_diagnosis/internal/metrics"
	"maintenance_diagnosis/internal/models"
	"maintenance_diagnosis/internal/repository"
)

// MaxListLimit caps how many records a single listing may request.
const MaxListLimit = 10_000

var errNegativeLimit = errors.New("limit must not be negative")

type HistoryService struct {
	historyRepo repository.HistoryRepo
	metrics     metrics.Recorder
}

func NewHistoryService(historyRepo repository.HistoryRepo, rec metrics.Recorder) *HistoryService {
	return &HistoryService{historyRepo: historyRepo, metrics: rec}
}

// List returns records oldest first; limit 0 means all of them.
func (s *HistoryService) List(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	if limit < 0 {
		return nil, errNegativeLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.historyRepo.List(ctx, limit)
}

func (s *HistoryService) Count(ctx context.Context) (int, error) {
	return s.historyRepo.Count(ctx)
}

// Clear empties the history.
func (s *HistoryService) Clear(ctx context.Context) (int64, error) {
	n, err := s.historyRepo.Clear(ctx)
	if err != nil {
		return 0, err
	}
	s.metrics.HistoryCleared(n)
	return n, nil
}
