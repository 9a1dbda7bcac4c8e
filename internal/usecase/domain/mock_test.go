package domain

import (
	"context"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"loopedin/internal/entities"
	"loopedin/internal/repository"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type repoMock struct{ mock.Mock }

var _ repository.Repository = (*repoMock)(nil)

func (m *repoMock) OnStart(_ context.Context) error { return nil }
func (m *repoMock) OnStop(_ context.Context) error  { return nil }

func (m *repoMock) CreateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *repoMock) UserByPhone(ctx context.Context, phone string) (*entities.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *repoMock) UserByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *repoMock) CreateLoop(ctx context.Context, loop entities.Loop) (*entities.Loop, error) {
	args := m.Called(ctx, loop)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Loop), args.Error(1)
}

func (m *repoMock) LoopByID(ctx context.Context, id int64) (*entities.Loop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Loop), args.Error(1)
}

func (m *repoMock) LoopsForUser(ctx context.Context, userID int64) ([]entities.Loop, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Loop), args.Error(1)
}

func (m *repoMock) MembershipsForUser(ctx context.Context, userID int64) ([]entities.Membership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Membership), args.Error(1)
}

func (m *repoMock) AddMember(ctx context.Context, loopID int64, user entities.User, memberContext string) (*entities.Member, error) {
	args := m.Called(ctx, loopID, user, memberContext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Member), args.Error(1)
}

func (m *repoMock) Members(ctx context.Context, loopID int64) ([]entities.Member, error) {
	args := m.Called(ctx, loopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Member), args.Error(1)
}

func (m *repoMock) LoopsDueForReminder(ctx context.Context, weekday time.Weekday, timeOfDay string) ([]entities.Loop, error) {
	args := m.Called(ctx, weekday, timeOfDay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Loop), args.Error(1)
}

func (m *repoMock) CreateUpdate(ctx context.Context, update entities.Update) (*entities.Update, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Update), args.Error(1)
}

func (m *repoMock) UpdatesForLoop(ctx context.Context, loopID int64) ([]entities.Update, error) {
	args := m.Called(ctx, loopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Update), args.Error(1)
}

func (m *repoMock) DeleteUpdate(ctx context.Context, updateID, requesterID int64) error {
	args := m.Called(ctx, updateID, requesterID)
	return args.Error(0)
}

func (m *repoMock) CreateNewsletter(ctx context.Context, n entities.Newsletter) (*entities.Newsletter, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Newsletter), args.Error(1)
}

func (m *repoMock) NewsletterByID(ctx context.Context, id int64) (*entities.Newsletter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Newsletter), args.Error(1)
}

func (m *repoMock) NewsletterBySlug(ctx context.Context, slug string) (*entities.Newsletter, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Newsletter), args.Error(1)
}

func (m *repoMock) NewslettersForLoop(ctx context.Context, loopID int64) ([]entities.Newsletter, error) {
	args := m.Called(ctx, loopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Newsletter), args.Error(1)
}

func (m *repoMock) UpdateNewsletterContent(ctx context.Context, id int64, content string) (*entities.Newsletter, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Newsletter), args.Error(1)
}

func (m *repoMock) FinalizeNewsletter(ctx context.Context, id int64) (*entities.Newsletter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Newsletter), args.Error(1)
}

func (m *repoMock) MarkNewsletterSent(ctx context.Context, id int64, sentAt time.Time) (*entities.Newsletter, error) {
	args := m.Called(ctx, id, sentAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Newsletter), args.Error(1)
}

func (m *repoMock) Stats(ctx context.Context) (entities.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return entities.Stats{}, args.Error(1)
	}
	return args.Get(0).(entities.Stats), args.Error(1)
}

func (m *repoMock) LoopStats(ctx context.Context, loopID int64) (entities.LoopStats, error) {
	args := m.Called(ctx, loopID)
	if args.Get(0) == nil {
		return entities.LoopStats{}, args.Error(1)
	}
	return args.Get(0).(entities.LoopStats), args.Error(1)
}

// fakeSMS records successful sends and lets tests inject per-recipient send
// failures and per-URL media fetch behavior.
type fakeSMS struct {
	mu        sync.Mutex
	sent      []string
	sendFunc  func(to string) error
	fetchFunc func(url string) (io.ReadCloser, string, error)
}

func (f *fakeSMS) SendSMS(_ context.Context, to, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendFunc != nil {
		if err := f.sendFunc(to); err != nil {
			return err
		}
	}
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeSMS) FetchMedia(_ context.Context, url string) (io.ReadCloser, string, error) {
	if f.fetchFunc != nil {
		return f.fetchFunc(url)
	}
	return io.NopCloser(strings.NewReader(url)), "image/jpeg", nil
}

// fakeStore answers Put with a URL derived from the payload so tests can tell
// stored items apart without relying on generated keys.
type fakeStore struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakeStore) Put(_ context.Context, key, _ string, r io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	f.keys = append(f.keys, key)
	f.mu.Unlock()
	return "https://cdn.test/" + string(data), nil
}

type fakeGen struct {
	generateFunc    func(instruction string) (string, error)
	lastInstruction string
}

func (f *fakeGen) Generate(_ context.Context, instruction string) (string, error) {
	f.lastInstruction = instruction
	if f.generateFunc != nil {
		return f.generateFunc(instruction)
	}
	return "generated body", nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(user entities.User) (string, error) {
	return "token-" + strconv.FormatInt(user.ID, 10), nil
}

func testCollab() (Collaborators, *fakeSMS, *fakeStore, *fakeGen) {
	sms := &fakeSMS{}
	store := &fakeStore{}
	gen := &fakeGen{}
	return Collaborators{
		SMS:           sms,
		Media:         store,
		Textgen:       gen,
		Tokens:        fakeTokens{},
		PublicBaseURL: "https://loops.test",
	}, sms, store, gen
}

func newTestUsecase(repo repository.Repository, collab Collaborators) *Usecase {
	return New(zap.NewNop().Sugar(), context.Background(), repo, collab, time.Second)
}
