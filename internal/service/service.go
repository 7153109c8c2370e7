package service

import (
	"context"
	"time"

	"maintenance_diagnosis/internal/metrics"
	"maintenance_diagnosis/internal/models"
	"maintenance_diagnosis/internal/repository"
	"maintenance_diagnosis/internal/rules"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Diagnosis evaluates readings against the loaded rule set.
type Diagnosis interface {
	// Diagnose evaluates and stores the reading. Only storage can fail.
	Diagnose(ctx context.Context, reading models.SensorReading) (models.HistoryRecord, error)
	// Evaluate is a dry run; it returns the result and the index of the
	// matching rule (-1 for the default).
	Evaluate(reading models.SensorReading) (models.DiagnosisResult, int)
	Rules() []rules.Rule
}

// History exposes the stored diagnoses.
type History interface {
	List(ctx context.Context, limit int) ([]models.HistoryRecord, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) (int64, error)
}

type Service struct {
	Diagnosis
	History
	Authorization
}

// Deps are the collaborators built in main before the services.
type Deps struct {
	Repos     *repository.Repository
	Evaluator *rules.Evaluator
	Metrics   metrics.Recorder
	Auth      AuthSettings
}

type AuthSettings struct {
	SigningKey string
	TokenTTL   time.Duration
}

func NewService(d Deps) *Service {
	rec := d.Metrics
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Service{
		Diagnosis:     NewDiagnosisService(d.Evaluator, d.Repos.History, rec),
		History:       NewHistoryService(d.Repos.History, rec),
		Authorization: NewAuthService(d.Repos.Auth, d.Auth.SigningKey, d.Auth.TokenTTL),
	}
}
