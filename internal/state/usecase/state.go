package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"report-runtime/internal/model"
	"report-runtime/internal/state"
	"report-runtime/internal/state/repository"
)

func (uc *implUseCase) Save(ctx context.Context, token string, snapshot model.SavedReportState) bool {
	if token == "" {
		uc.l.Warnf(ctx, "state.usecase.Save: %v", state.ErrEmptyToken)
		return false
	}
	body, err := json.Marshal(snapshot)
	if err != nil {
		uc.l.Errorf(ctx, "state.usecase.Save: Failed to encode state: %v", err)
		return false
	}

	key := uc.key(token)
	ok, err := uc.repo.PutIfAbsent(ctx, key, body)
	if errors.Is(err, repository.ErrQuotaExceeded) {
		uc.l.Warnf(ctx, "state.usecase.Save: quota exceeded, clearing saved reports")
		if cerr := uc.repo.Clear(ctx, uc.prefix); cerr != nil {
			uc.l.Errorf(ctx, "state.usecase.Save: Failed to clear saved reports: %v", cerr)
			return false
		}
		ok, err = uc.repo.PutIfAbsent(ctx, key, body)
	}
	if err != nil {
		uc.l.Errorf(ctx, "state.usecase.Save: Failed to save report state %s: %v", token, err)
		return false
	}
	if !ok {
		uc.l.Debugf(ctx, "state.usecase.Save: token %s already saved", token)
	}
	return ok
}

func (uc *implUseCase) Restore(ctx context.Context, token string) (*model.SavedReportState, bool, error) {
	if token == "" {
		return nil, false, state.ErrEmptyToken
	}
	body, found, err := uc.repo.Get(ctx, uc.key(token))
	if err != nil {
		uc.l.Errorf(ctx, "state.usecase.Restore: Failed to load report state %s: %v", token, err)
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	var s model.SavedReportState
	if err := json.Unmarshal(body, &s); err != nil {
		uc.l.Errorf(ctx, "state.usecase.Restore: Failed to decode report state %s: %v", token, err)
		return nil, false, fmt.Errorf("%w: %v", state.ErrCorruptedState, err)
	}
	return &s, true, nil
}

// NewToken prefers a time-ordered v7 id and falls back to v4.
func (uc *implUseCase) NewToken() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (uc *implUseCase) key(token string) string {
	return uc.prefix + token
}
