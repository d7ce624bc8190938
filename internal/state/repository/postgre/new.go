package postgre

import (
	"database/sql"

	"report-runtime/internal/state/repository"
	"report-runtime/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

func New(db *sql.DB, l log.Logger) repository.Repository {
	return &implRepository{
		db: db,
		l:  l,
	}
}
