package service

import (
	"context"
	"time"

	"maintenance_diagnosis/internal/metrics"
	"maintenance_diagnosis/internal/models"
	"maintenance_diagnosis/internal/repository"
	"maintenance_diagnosis/internal/rules"
)

type DiagnosisService struct {
	evaluator   *rules.Evaluator
	historyRepo repository.HistoryRepo
	metrics     metrics.Recorder
	now         func() time.Time
}

func NewDiagnosisService(evaluator *rules.Evaluator, historyRepo repository.HistoryRepo, rec metrics.Recorder) *DiagnosisService {
	return &DiagnosisService{
		evaluator:   evaluator,
		historyRepo: historyRepo,
		metrics:     rec,
		now:         time.Now,
	}
}

// Diagnose runs the rule set and appends the reading with its result to the
// history. On a storage error the returned record still carries the result.
func (s *DiagnosisService) Diagnose(ctx context.Context, reading models.SensorReading) (models.HistoryRecord, error) {
	result, _ := s.Evaluate(reading)

	rec := models.HistoryRecord{
		Reading:   reading,
		Result:    result,
		CreatedAt: s.now().UTC(),
	}
	id, err := s.historyRepo.Append(ctx, rec)
	if err != nil {
		return rec, err
	}
	rec.ID = id
	return rec, nil
}

func (s *DiagnosisService) Evaluate(reading models.SensorReading) (models.DiagnosisResult, int) {
	start := s.now()
	out := s.evaluator.Inspect(reading)
	s.metrics.ObserveDiagnosis(out.Result.Status, out.Matched(), len(out.Failures), s.now().Sub(start))
	return out.Result, out.RuleIndex
}

func (s *DiagnosisService) Rules() []rules.Rule {
	return s.evaluator.RuleSet().Rules()
}
