package domain

import (
	"context"
	"errors"
	"io"
	"testing"

	"loopedin/internal/entities"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseLoopToken(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		token   string
		content string
	}{
		{
			name:    "no_token",
			body:    "we moved into the new place!",
			token:   "",
			content: "we moved into the new place!",
		},
		{
			name:    "leading_token_stripped",
			body:    "[Family] we moved into the new place!",
			token:   "Family",
			content: "we moved into the new place!",
		},
		{
			name:    "leading_token_with_spaces",
			body:    "  [ College Friends ]  big news",
			token:   "College Friends",
			content: "big news",
		},
		{
			name:    "mid_text_bracket_kept",
			body:    "my score was [redacted] this week",
			token:   "redacted",
			content: "my score was [redacted] this week",
		},
		{
			name:    "token_only",
			body:    "[Family]",
			token:   "Family",
			content: "",
		},
		{
			name:    "empty_brackets_ignored",
			body:    "[] hello",
			token:   "",
			content: "[] hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, content := parseLoopToken(tt.body)
			require.Equal(t, tt.token, token)
			require.Equal(t, tt.content, content)
		})
	}
}

func TestSelectTargets(t *testing.T) {
	memberships := []entities.Membership{
		{ID: 1, LoopID: 10, LoopName: "Family"},
		{ID: 2, LoopID: 20, LoopName: "College Friends"},
		{ID: 3, LoopID: 30, LoopName: "family"},
	}

	t.Run("no_token_targets_all", func(t *testing.T) {
		targets, err := selectTargets(memberships, "")
		require.NoError(t, err)
		require.Equal(t, memberships, targets)
	})

	t.Run("case_insensitive_match_targets_every_match", func(t *testing.T) {
		targets, err := selectTargets(memberships, "FAMILY")
		require.NoError(t, err)
		require.Len(t, targets, 2)
		require.Equal(t, int64(10), targets[0].LoopID)
		require.Equal(t, int64(30), targets[1].LoopID)
	})

	t.Run("unknown_token_rejects", func(t *testing.T) {
		_, err := selectTargets(memberships, "Work")
		require.ErrorIs(t, err, entities.ErrUnknownLoopToken)
	})
}

func TestComposeAck(t *testing.T) {
	require.Equal(t,
		"Got it! Your update was posted to Family.",
		composeAck([]string{"Family"}))
	require.Equal(t,
		"Got it! Your update was posted to your 2 loops: Family, College Friends.",
		composeAck([]string{"Family", "College Friends"}))
}

func TestUsecase_HandleInboundUnknownSender(t *testing.T) {
	repo := &repoMock{}
	collab, _, _, _ := testCollab()
	uc := newTestUsecase(repo, collab)

	repo.On("UserByPhone", mock.Anything, "15550001111").Return(nil, entities.ErrUserNotFound)

	_, err := uc.HandleInbound(context.Background(), entities.InboundMessage{
		From: "15550001111",
		Body: "hello",
	})
	require.ErrorIs(t, err, entities.ErrUserNotFound)
	repo.AssertNotCalled(t, "CreateUpdate", mock.Anything, mock.Anything)
}

func TestUsecase_HandleInboundNoMemberships(t *testing.T) {
	repo := &repoMock{}
	collab, _, _, _ := testCollab()
	uc := newTestUsecase(repo, collab)

	repo.On("UserByPhone", mock.Anything, "15550001111").
		Return(&entities.User{ID: 7, PhoneNumber: "15550001111"}, nil)
	repo.On("MembershipsForUser", mock.Anything, int64(7)).
		Return([]entities.Membership{}, nil)

	_, err := uc.HandleInbound(context.Background(), entities.InboundMessage{
		From: "15550001111",
		Body: "hello",
	})
	require.ErrorIs(t, err, entities.ErrNoMemberships)
	repo.AssertNotCalled(t, "CreateUpdate", mock.Anything, mock.Anything)
}

func TestUsecase_HandleInboundUnknownTokenWritesNothing(t *testing.T) {
	repo := &repoMock{}
	collab, _, _, _ := testCollab()
	uc := newTestUsecase(repo, collab)

	repo.On("UserByPhone", mock.Anything, "15550001111").
		Return(&entities.User{ID: 7}, nil)
	repo.On("MembershipsForUser", mock.Anything, int64(7)).
		Return([]entities.Membership{{ID: 1, LoopID: 10, LoopName: "Family"}}, nil)

	_, err := uc.HandleInbound(context.Background(), entities.InboundMessage{
		From: "15550001111",
		Body: "[Work] shipped the thing",
	})
	require.ErrorIs(t, err, entities.ErrUnknownLoopToken)
	repo.AssertNotCalled(t, "CreateUpdate", mock.Anything, mock.Anything)
}

func TestUsecase_HandleInboundFansOutToAllLoops(t *testing.T) {
	repo := &repoMock{}
	collab, _, _, _ := testCollab()
	uc := newTestUsecase(repo, collab)

	repo.On("UserByPhone", mock.Anything, "15550001111").
		Return(&entities.User{ID: 7}, nil)
	repo.On("MembershipsForUser", mock.Anything, int64(7)).
		Return([]entities.Membership{
			{ID: 1, LoopID: 10, LoopName: "Family"},
			{ID: 2, LoopID: 20, LoopName: "College Friends"},
		}, nil)
	repo.On("CreateUpdate", mock.Anything, mock.MatchedBy(func(up entities.Update) bool {
		return up.LoopID == 10 && up.Content == "we moved!"
	})).Return(&entities.Update{ID: 100, LoopID: 10}, nil)
	repo.On("CreateUpdate", mock.Anything, mock.MatchedBy(func(up entities.Update) bool {
		return up.LoopID == 20 && up.Content == "we moved!"
	})).Return(&entities.Update{ID: 101, LoopID: 20}, nil)

	res, err := uc.HandleInbound(context.Background(), entities.InboundMessage{
		From: "15550001111",
		Body: "we moved!",
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []int64{100, 101}, res.UpdateIDs)
	require.Equal(t, []string{"Family", "College Friends"}, res.LoopNames)
	require.Contains(t, res.Ack, "2 loops")
	repo.AssertExpectations(t)
}

func TestUsecase_HandleInboundTokenTargetsOneLoop(t *testing.T) {
	repo := &repoMock{}
	collab, _, _, _ := testCollab()
	uc := newTestUsecase(repo, collab)

	repo.On("UserByPhone", mock.Anything, "15550001111").
		Return(&entities.User{ID: 7}, nil)
	repo.On("MembershipsForUser", mock.Anything, int64(7)).
		Return([]entities.Membership{
			{ID: 1, LoopID: 10, LoopName: "Family"},
			{ID: 2, LoopID: 20, LoopName: "College Friends"},
		}, nil)
	repo.On("CreateUpdate", mock.Anything, mock.MatchedBy(func(up entities.Update) bool {
		return up.LoopID == 20 && up.Content == "reunion is on"
	})).Return(&entities.Update{ID: 102, LoopID: 20}, nil)

	res, err := uc.HandleInbound(context.Background(), entities.InboundMessage{
		From: "15550001111",
		Body: "[college friends] reunion is on",
	})
	require.NoError(t, err)
	require.Equal(t, []int64{102}, res.UpdateIDs)
	require.Equal(t, "Got it! Your update was posted to College Friends.", res.Ack)
	repo.AssertNumberOfCalls(t, "CreateUpdate", 1)
}

func TestUsecase_HandleInboundMediaFailureDegrades(t *testing.T) {
	repo := &repoMock{}
	collab, sms, _, _ := testCollab()
	sms.fetchFunc = func(url string) (io.ReadCloser, string, error) {
		return nil, "", errors.New("gateway timeout")
	}
	uc := newTestUsecase(repo, collab)

	repo.On("UserByPhone", mock.Anything, "15550001111").
		Return(&entities.User{ID: 7}, nil)
	repo.On("MembershipsForUser", mock.Anything, int64(7)).
		Return([]entities.Membership{{ID: 1, LoopID: 10, LoopName: "Family"}}, nil)
	repo.On("CreateUpdate", mock.Anything, mock.MatchedBy(func(up entities.Update) bool {
		return up.LoopID == 10 && len(up.MediaURLs) == 0
	})).Return(&entities.Update{ID: 103, LoopID: 10}, nil)

	res, err := uc.HandleInbound(context.Background(), entities.InboundMessage{
		From:  "15550001111",
		Body:  "photo day",
		Media: []entities.MediaItem{{URL: "https://mms.test/a", ContentType: "image/jpeg"}},
	})
	require.NoError(t, err)
	require.Equal(t, []int64{103}, res.UpdateIDs)
}

func TestUsecase_HandleInboundEmptyMessage(t *testing.T) {
	repo := &repoMock{}
	collab, _, _, _ := testCollab()
	uc := newTestUsecase(repo, collab)

	_, err := uc.HandleInbound(context.Background(), entities.InboundMessage{From: "15550001111", Body: "  "})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	_, err = uc.HandleInbound(context.Background(), entities.InboundMessage{Body: "hi"})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
}
