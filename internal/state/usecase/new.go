package usecase

import (
	"report-runtime/internal/state"
	"report-runtime/internal/state/repository"
	"report-runtime/pkg/log"
)

const defaultKeyPrefix = "report-state:"

type implUseCase struct {
	repo   repository.Repository
	l      log.Logger
	prefix string
}

func New(repo repository.Repository, l log.Logger, keyPrefix string) state.UseCase {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &implUseCase{
		repo:   repo,
		l:      l,
		prefix: keyPrefix,
	}
}
