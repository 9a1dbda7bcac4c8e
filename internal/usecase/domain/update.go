// Package domain contains application usecases orchestrating domain logic by update.
package domain

import (
	"context"
	"fmt"

	"loopedin/internal/entities"
)

// UpdatesForLoop lists a loop's updates with author names.
func (u *Usecase) UpdatesForLoop(ctx context.Context, loopID int64) ([]entities.Update, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if loopID == 0 {
		return nil, fmt.Errorf("%w: loop id is required", entities.ErrInvalidArgument)
	}
	if _, err := u.repo.LoopByID(ctx, loopID); err != nil {
		return nil, err
	}
	return u.repo.UpdatesForLoop(ctx, loopID)
}

// DeleteUpdate removes an update on behalf of its author or the loop creator.
func (u *Usecase) DeleteUpdate(ctx context.Context, requester entities.Session, updateID int64) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if updateID == 0 {
		return fmt.Errorf("%w: update id is required", entities.ErrInvalidArgument)
	}
	return u.repo.DeleteUpdate(ctx, updateID, requester.UserID)
}
