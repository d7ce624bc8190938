package redis

import (
	"report-runtime/internal/state/repository"
	"report-runtime/pkg/log"
	pkgRedis "report-runtime/pkg/redis"
)

type implRepository struct {
	client pkgRedis.IRedis
	l      log.Logger
}

func New(client pkgRedis.IRedis, l log.Logger) repository.Repository {
	return &implRepository{
		client: client,
		l:      l,
	}
}
