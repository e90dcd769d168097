package repository

import (
	"context"
	"database/sql"
	"time"

	"sanisip/internal/gateway"
	"sanisip/internal/models"
)

type EventRepo interface {
	Append(ctx context.Context, e models.Event) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.Event, error)
}

type Repository struct {
	CacheStore gateway.Store
	EventRepo  EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		CacheStore: NewCacheSQLite(db),
		EventRepo:  NewEventSQLite(db),
	}
}
