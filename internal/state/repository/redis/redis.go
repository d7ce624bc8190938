package redis

import (
	"context"
	"strings"

	"report-runtime/internal/state/repository"
	pkgRedis "report-runtime/pkg/redis"
)

// PutIfAbsent uses SETNX without expiry so a token is written at most once.
func (r *implRepository) PutIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, value, 0)
	if err != nil {
		if isOutOfMemory(err) {
			return false, repository.ErrQuotaExceeded
		}
		r.l.Errorf(ctx, "state.repository.redis.PutIfAbsent: SETNX %s: %v", key, err)
		return false, repository.ErrWriteFailed
	}
	return ok, nil
}

func (r *implRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := r.client.Get(ctx, key)
	if pkgRedis.IsNil(err) {
		return nil, false, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "state.repository.redis.Get: GET %s: %v", key, err)
		return nil, false, repository.ErrReadFailed
	}
	return []byte(v), true, nil
}

func (r *implRepository) Clear(ctx context.Context, prefix string) error {
	n, err := r.client.DeleteByPattern(ctx, prefix+"*")
	if err != nil {
		r.l.Errorf(ctx, "state.repository.redis.Clear: delete %s*: %v", prefix, err)
		return repository.ErrClearFailed
	}
	r.l.Infof(ctx, "state.repository.redis.Clear: removed %d report states", n)
	return nil
}

// isOutOfMemory matches the OOM reply redis sends when maxmemory is reached.
func isOutOfMemory(err error) bool {
	return strings.HasPrefix(err.Error(), "OOM ")
}
