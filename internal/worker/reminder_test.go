package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reminderCall struct{ at time.Time }

type fakeReminderUsecase struct {
	calls []reminderCall
}

func (f *fakeReminderUsecase) SendReminders(_ context.Context, now time.Time) (int, error) {
	f.calls = append(f.calls, reminderCall{at: now})
	return 0, nil
}

func TestReminderWorkerTickDedup(t *testing.T) {
	uc := &fakeReminderUsecase{}
	w := NewReminderWorker(zap.NewNop().Sugar(), uc, time.UTC)

	first := time.Date(2025, time.March, 2, 17, 0, 5, 0, time.UTC)
	w.tick(context.Background(), first)
	w.tick(context.Background(), first.Add(20*time.Second))
	require.Len(t, uc.calls, 1)

	w.tick(context.Background(), first.Add(time.Minute))
	require.Len(t, uc.calls, 2)
	require.Equal(t, first, uc.calls[0].at)
}
