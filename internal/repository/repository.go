package repository

import (
	"context"
	"database/sql"

	"maintenance_diagnosis/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// HistoryRepo is the append-only diagnosis log; Clear is the only way to
// remove records.
type HistoryRepo interface {
	Append(ctx context.Context, rec models.HistoryRecord) (int64, error)
	List(ctx context.Context, limit int) ([]models.HistoryRecord, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) (int64, error)
}

type Repository struct {
	History HistoryRepo
	Auth    Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		History: NewHistorySQLite(db),
		Auth:    NewUserRepository(db),
	}
}
