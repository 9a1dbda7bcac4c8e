// Package domain contains application usecases orchestrating domain logic by loop.
package domain

import (
	"context"
	"fmt"

	"loopedin/internal/entities"
)

// CreateLoop creates a loop; the creator is always enrolled as a member.
func (u *Usecase) CreateLoop(ctx context.Context, loop entities.Loop) (*entities.Loop, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if loop.Name == "" {
		return nil, fmt.Errorf("%w: name is required", entities.ErrInvalidArgument)
	}
	if !loop.Cadence.Valid() {
		return nil, fmt.Errorf("%w: cadence must be biweekly or monthly", entities.ErrInvalidArgument)
	}
	if loop.CreatorID == 0 {
		return nil, fmt.Errorf("%w: creator is required", entities.ErrInvalidArgument)
	}
	seen := make(map[int]struct{}, len(loop.Reminders))
	for _, r := range loop.Reminders {
		if _, dup := seen[int(r.Weekday)]; dup {
			return nil, fmt.Errorf("%w: duplicate reminder weekday", entities.ErrInvalidArgument)
		}
		seen[int(r.Weekday)] = struct{}{}
		if !validTimeOfDay(r.TimeOfDay) {
			return nil, fmt.Errorf("%w: reminder time must be HH:MM", entities.ErrInvalidArgument)
		}
	}

	return u.repo.CreateLoop(ctx, loop)
}

func validTimeOfDay(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, c := range []byte{s[0], s[1], s[3], s[4]} {
		if c < '0' || c > '9' {
			return false
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h < 24 && m < 60
}

// Loop returns a loop by id.
func (u *Usecase) Loop(ctx context.Context, loopID int64) (*entities.Loop, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if loopID == 0 {
		return nil, fmt.Errorf("%w: loop id is required", entities.ErrInvalidArgument)
	}
	return u.repo.LoopByID(ctx, loopID)
}

// MyLoops lists loops the user belongs to.
func (u *Usecase) MyLoops(ctx context.Context, userID int64) ([]entities.Loop, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.LoopsForUser(ctx, userID)
}

// AddMember enrolls a user (created on first contact) into a loop. Only the
// loop creator or an admin may add members.
func (u *Usecase) AddMember(ctx context.Context, requester entities.Session, loopID int64, user entities.User, memberContext string) (*entities.Member, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if user.PhoneNumber == "" {
		return nil, fmt.Errorf("%w: phone number is required", entities.ErrInvalidArgument)
	}

	loop, err := u.repo.LoopByID(ctx, loopID)
	if err != nil {
		return nil, err
	}
	if loop.CreatorID != requester.UserID && !requester.IsAdmin {
		return nil, entities.ErrForbidden
	}

	member, err := u.repo.AddMember(ctx, loopID, user, memberContext)
	if err != nil {
		return nil, err
	}
	u.log.Infow("member added", "loop_id", loopID, "user_id", member.ID, "by", requester.UserID)
	return member, nil
}

// Members lists loop members.
func (u *Usecase) Members(ctx context.Context, loopID int64) ([]entities.Member, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.repo.LoopByID(ctx, loopID); err != nil {
		return nil, err
	}
	return u.repo.Members(ctx, loopID)
}
