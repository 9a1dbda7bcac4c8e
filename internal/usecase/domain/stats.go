// Package domain contains application usecases orchestrating domain logic by statistics.
package domain

import (
	"context"
	"fmt"

	"loopedin/internal/entities"
)

// Stats returns dashboard aggregates; admin only.
func (u *Usecase) Stats(ctx context.Context, requester entities.Session) (entities.Stats, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if !requester.IsAdmin {
		return entities.Stats{}, entities.ErrForbidden
	}
	return u.repo.Stats(ctx)
}

// LoopStats returns aggregates for one loop; admin or loop creator.
func (u *Usecase) LoopStats(ctx context.Context, requester entities.Session, loopID int64) (entities.LoopStats, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if loopID == 0 {
		return entities.LoopStats{}, fmt.Errorf("%w: loop id is required", entities.ErrInvalidArgument)
	}
	if _, err := u.manageableLoop(ctx, requester, loopID); err != nil {
		return entities.LoopStats{}, err
	}
	return u.repo.LoopStats(ctx, loopID)
}
