package usecase

import (
	"context"
	"time"

	"loopedin/internal/repository"
	"loopedin/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	AuthUsecaseInterface
	LoopUsecaseInterface
	InboundUsecaseInterface
	UpdateUsecaseInterface
	NewsletterUsecaseInterface
	ReminderUsecaseInterface
	StatsUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(log *zap.SugaredLogger, ctx context.Context, repo repository.Repository, collab domain.Collaborators, timeout time.Duration) InterfaceUsecase {
	return domain.New(log, ctx, repo, collab, timeout)
}
