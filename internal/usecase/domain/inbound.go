// Package domain contains application usecases orchestrating domain logic by inbound message.
package domain

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"loopedin/internal/entities"

	"golang.org/x/sync/errgroup"
)

var loopTokenRe = regexp.MustCompile(`\[([^\[\]]+)\]`)

// parseLoopToken scans the body for a bracketed loop selector. It returns the
// token and the content to store: a leading selector is routing metadata and
// is stripped, a mid-text bracket is kept as content.
func parseLoopToken(body string) (token, content string) {
	content = strings.TrimSpace(body)

	m := loopTokenRe.FindStringSubmatchIndex(content)
	if m == nil {
		return "", content
	}
	token = strings.TrimSpace(content[m[2]:m[3]])
	if m[0] == 0 {
		content = strings.TrimSpace(content[m[1]:])
	}
	return token, content
}

// selectTargets applies the routing rule: no token targets every membership;
// a token targets the case-insensitive exact name matches among them. A token
// matching nothing rejects the whole message.
func selectTargets(memberships []entities.Membership, token string) ([]entities.Membership, error) {
	if token == "" {
		return memberships, nil
	}

	targets := make([]entities.Membership, 0, 1)
	for _, m := range memberships {
		if strings.EqualFold(m.LoopName, token) {
			targets = append(targets, m)
		}
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: [%s]", entities.ErrUnknownLoopToken, token)
	}
	return targets, nil
}

// HandleInbound routes one webhook message: identify the sender, select target
// loops, resolve media, persist one update per target and compose the ack.
func (u *Usecase) HandleInbound(ctx context.Context, msg entities.InboundMessage) (*entities.InboundResult, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if msg.From == "" {
		return nil, fmt.Errorf("%w: sender number is required", entities.ErrInvalidArgument)
	}
	if strings.TrimSpace(msg.Body) == "" && len(msg.Media) == 0 {
		return nil, fmt.Errorf("%w: empty message", entities.ErrInvalidArgument)
	}

	user, err := u.repo.UserByPhone(ctx, msg.From)
	if err != nil {
		u.log.Infow("inbound from unknown sender", "from", msg.From)
		return nil, err
	}

	memberships, err := u.repo.MembershipsForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		u.log.Infow("inbound from user without memberships", "user_id", user.ID)
		return nil, entities.ErrNoMemberships
	}

	token, content := parseLoopToken(msg.Body)
	targets, err := selectTargets(memberships, token)
	if err != nil {
		u.log.Infow("inbound with unknown loop token", "user_id", user.ID, "token", token)
		return nil, err
	}

	// Media failures degrade to fewer URLs; they never reject the message.
	mediaURLs := u.ingestMedia(ctx, msg.Media)

	res := &entities.InboundResult{
		LoopNames: make([]string, len(targets)),
		UpdateIDs: make([]int64, 0, len(targets)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for i, target := range targets {
		target := target
		res.LoopNames[i] = target.LoopName
		g.Go(func() error {
			created, err := u.repo.CreateUpdate(gctx, entities.Update{
				LoopID:    target.LoopID,
				UserID:    user.ID,
				Content:   content,
				MediaURLs: mediaURLs,
			})
			if err != nil {
				return err
			}
			mu.Lock()
			res.UpdateIDs = append(res.UpdateIDs, created.ID)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Ack = composeAck(res.LoopNames)
	u.log.Infow("inbound routed",
		"user_id", user.ID,
		"loops", res.LoopNames,
		"media_count", len(mediaURLs),
	)
	return res, nil
}

func composeAck(loopNames []string) string {
	if len(loopNames) == 1 {
		return fmt.Sprintf("Got it! Your update was posted to %s.", loopNames[0])
	}
	return fmt.Sprintf("Got it! Your update was posted to your %d loops: %s.",
		len(loopNames), strings.Join(loopNames, ", "))
}
