package handlers

import (
	"context"
	"net/http"
	"sync"

	"maintenance_diagnosis/internal/models"
	"maintenance_diagnosis/internal/rules"
	"maintenance_diagnosis/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockDiagnosis struct {
	result    models.DiagnosisResult
	ruleIndex int
	storeErr  error
	nextID    int64
	rules     []rules.Rule

	diagnoseCalls int
	evaluateCalls int
	lastReading   models.SensorReading
}

func (m *mockDiagnosis) Diagnose(ctx context.Context, r models.SensorReading) (models.HistoryRecord, error) {
	m.diagnoseCalls++
	m.lastReading = r
	rec := models.HistoryRecord{Reading: r, Result: m.result}
	if m.storeErr != nil {
		return rec, m.storeErr
	}
	rec.ID = m.nextID
	return rec, nil
}
func (m *mockDiagnosis) Evaluate(r models.SensorReading) (models.DiagnosisResult, int) {
	m.evaluateCalls++
	m.lastReading = r
	return m.result, m.ruleIndex
}
func (m *mockDiagnosis) Rules() []rules.Rule { return m.rules }

type mockHistory struct {
	mu        sync.Mutex
	records   []models.HistoryRecord
	listErr   error
	countErr  error
	clearErr  error
	lastLimit int
	cleared   int
}

func (m *mockHistory) List(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := m.records
	if limit > 0 && limit < len(out) {
		out = out[len(out)-limit:]
	}
	return append([]models.HistoryRecord(nil), out...), nil
}
func (m *mockHistory) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.records), nil
}
func (m *mockHistory) Clear(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clearErr != nil {
		return 0, m.clearErr
	}
	n := int64(len(m.records))
	m.records = nil
	m.cleared++
	return n, nil
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, opts...)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
