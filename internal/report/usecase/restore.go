package usecase

import "context"

// Restore renders a saved report from its cached payloads only.
func (uc *implUseCase) Restore(ctx context.Context, token string) (bool, error) {
	snap, found, err := uc.states.Restore(ctx, token)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.Restore: states.Restore: %v", err)
		return false, err
	}
	if !found {
		return false, nil
	}

	uc.mu.Lock()
	uc.token = token
	uc.mu.Unlock()
	if err := uc.render(ctx, snap.Definition(), true); err != nil {
		return false, err
	}
	return true, nil
}

// Back restores the previous history entry. It reports false when there is
// no earlier saved report.
func (uc *implUseCase) Back(ctx context.Context) (bool, error) {
	token, ok := uc.history.Back()
	if !ok || token == "" {
		return false, nil
	}
	return uc.Restore(ctx, token)
}

func (uc *implUseCase) Forward(ctx context.Context) (bool, error) {
	token, ok := uc.history.Forward()
	if !ok || token == "" {
		return false, nil
	}
	return uc.Restore(ctx, token)
}
