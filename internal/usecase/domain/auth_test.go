package domain

import (
	"context"
	"testing"

	"loopedin/internal/auth"
	"loopedin/internal/entities"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUsecase_RegisterValidation(t *testing.T) {
	repo := &repoMock{}
	collab, _, _, _ := testCollab()
	uc := newTestUsecase(repo, collab)

	_, _, err := uc.Register(context.Background(), entities.User{}, "longenough")
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	_, _, err = uc.Register(context.Background(), entities.User{PhoneNumber: "15550001111"}, "short")
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestUsecase_RegisterHashesAndIssuesToken(t *testing.T) {
	repo := &repoMock{}
	collab, _, _, _ := testCollab()
	uc := newTestUsecase(repo, collab)

	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u entities.User) bool {
		return u.PhoneNumber == "15550001111" &&
			!u.IsAdmin &&
			u.PasswordHash != "" &&
			u.PasswordHash != "hunter22hunter22" &&
			auth.CheckPassword(u.PasswordHash, "hunter22hunter22")
	})).Return(&entities.User{ID: 7, PhoneNumber: "15550001111"}, nil)

	user, token, err := uc.Register(context.Background(),
		entities.User{PhoneNumber: "15550001111", GivenName: "Alice"}, "hunter22hunter22")
	require.NoError(t, err)
	require.Equal(t, int64(7), user.ID)
	require.Equal(t, "token-7", token)
	repo.AssertExpectations(t)
}

func TestUsecase_RegisterDuplicatePhone(t *testing.T) {
	repo := &repoMock{}
	collab, _, _, _ := testCollab()
	uc := newTestUsecase(repo, collab)

	repo.On("CreateUser", mock.Anything, mock.Anything).Return(nil, entities.ErrUserExists)

	_, _, err := uc.Register(context.Background(),
		entities.User{PhoneNumber: "15550001111"}, "hunter22hunter22")
	require.ErrorIs(t, err, entities.ErrUserExists)
}

func TestUsecase_LoginUnknownPhone(t *testing.T) {
	repo := &repoMock{}
	collab, _, _, _ := testCollab()
	uc := newTestUsecase(repo, collab)

	repo.On("UserByPhone", mock.Anything, "15550001111").Return(nil, entities.ErrUserNotFound)

	_, _, err := uc.Login(context.Background(), "15550001111", "whatever1")
	require.ErrorIs(t, err, entities.ErrUnauthorized)
}

func TestUsecase_LoginWrongPassword(t *testing.T) {
	repo := &repoMock{}
	collab, _, _, _ := testCollab()
	uc := newTestUsecase(repo, collab)

	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)
	repo.On("UserByPhone", mock.Anything, "15550001111").
		Return(&entities.User{ID: 7, PhoneNumber: "15550001111", PasswordHash: hash}, nil)

	_, _, err = uc.Login(context.Background(), "15550001111", "wrong horse")
	require.ErrorIs(t, err, entities.ErrUnauthorized)

	user, token, err := uc.Login(context.Background(), "15550001111", "correct horse")
	require.NoError(t, err)
	require.Equal(t, int64(7), user.ID)
	require.Equal(t, "token-7", token)
}
