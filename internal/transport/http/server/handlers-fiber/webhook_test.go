package handlers_fiber

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"loopedin/internal/entities"
	"loopedin/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ucStub satisfies the usecase surface; tests plug in only the calls a
// handler under test makes.
type ucStub struct {
	handleInbound    func(msg entities.InboundMessage) (*entities.InboundResult, error)
	newsletterBySlug func(slug string) (*entities.Newsletter, error)
}

var _ usecase.InterfaceUsecase = (*ucStub)(nil)

func (s *ucStub) Register(_ context.Context, _ entities.User, _ string) (*entities.User, string, error) {
	return nil, "", nil
}

func (s *ucStub) Login(_ context.Context, _, _ string) (*entities.User, string, error) {
	return nil, "", nil
}

func (s *ucStub) CreateLoop(_ context.Context, _ entities.Loop) (*entities.Loop, error) {
	return nil, nil
}

func (s *ucStub) Loop(_ context.Context, _ int64) (*entities.Loop, error) { return nil, nil }

func (s *ucStub) MyLoops(_ context.Context, _ int64) ([]entities.Loop, error) { return nil, nil }

func (s *ucStub) AddMember(_ context.Context, _ entities.Session, _ int64, _ entities.User, _ string) (*entities.Member, error) {
	return nil, nil
}

func (s *ucStub) Members(_ context.Context, _ int64) ([]entities.Member, error) { return nil, nil }

func (s *ucStub) HandleInbound(_ context.Context, msg entities.InboundMessage) (*entities.InboundResult, error) {
	return s.handleInbound(msg)
}

func (s *ucStub) UpdatesForLoop(_ context.Context, _ int64) ([]entities.Update, error) {
	return nil, nil
}

func (s *ucStub) DeleteUpdate(_ context.Context, _ entities.Session, _ int64) error { return nil }

func (s *ucStub) CompileNewsletter(_ context.Context, _ entities.Session, _ int64, _ entities.CompileOptions) (*entities.Newsletter, error) {
	return nil, nil
}

func (s *ucStub) EditNewsletter(_ context.Context, _ entities.Session, _ int64, _ string) (*entities.Newsletter, error) {
	return nil, nil
}

func (s *ucStub) FinalizeNewsletter(_ context.Context, _ entities.Session, _ int64) (*entities.Newsletter, error) {
	return nil, nil
}

func (s *ucStub) SendNewsletter(_ context.Context, _ entities.Session, _ int64) (*entities.Newsletter, entities.SendResult, error) {
	return nil, entities.SendResult{}, nil
}

func (s *ucStub) Newsletter(_ context.Context, _ int64) (*entities.Newsletter, error) {
	return nil, nil
}

func (s *ucStub) NewsletterBySlug(_ context.Context, slug string) (*entities.Newsletter, error) {
	return s.newsletterBySlug(slug)
}

func (s *ucStub) NewslettersForLoop(_ context.Context, _ int64) ([]entities.Newsletter, error) {
	return nil, nil
}

func (s *ucStub) SendReminders(_ context.Context, _ time.Time) (int, error) { return 0, nil }

func (s *ucStub) Stats(_ context.Context, _ entities.Session) (entities.Stats, error) {
	return entities.Stats{}, nil
}

func (s *ucStub) LoopStats(_ context.Context, _ entities.Session, _ int64) (entities.LoopStats, error) {
	return entities.LoopStats{}, nil
}

func webhookApp(stub *ucStub) *fiber.App {
	h := NewHandler(zap.NewNop().Sugar(), stub)
	app := fiber.New()
	app.Post("/webhook/sms", h.PostWebhookSMS)
	app.Get("/n/:slug", h.GetNewsletterPage)
	return app
}

func postForm(t *testing.T, app *fiber.App, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/webhook/sms", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestPostWebhookSMSRepliesWithAck(t *testing.T) {
	var got entities.InboundMessage
	stub := &ucStub{handleInbound: func(msg entities.InboundMessage) (*entities.InboundResult, error) {
		got = msg
		return &entities.InboundResult{Ack: "Got it! Your update was posted to Family."}, nil
	}}
	app := webhookApp(stub)

	resp := postForm(t, app, url.Values{
		"From":              {"+15550001111"},
		"Body":              {"[Family] we moved!"},
		"MediaUrl0":         {"https://mms.test/a"},
		"MediaContentType0": {"image/jpeg"},
		"MediaUrl1":         {"https://mms.test/b"},
		"MediaContentType1": {"image/png"},
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/xml", resp.Header.Get(fiber.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "<Response><Message>Got it! Your update was posted to Family.</Message></Response>")

	require.Equal(t, "+15550001111", got.From)
	require.Equal(t, "[Family] we moved!", got.Body)
	require.Equal(t, []entities.MediaItem{
		{URL: "https://mms.test/a", ContentType: "image/jpeg"},
		{URL: "https://mms.test/b", ContentType: "image/png"},
	}, got.Media)
}

func TestPostWebhookSMSFailureStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "unknown_sender", err: entities.ErrUserNotFound, status: http.StatusNotFound},
		{name: "no_memberships", err: entities.ErrNoMemberships, status: http.StatusNotFound},
		{name: "unknown_token", err: entities.ErrUnknownLoopToken, status: http.StatusBadRequest},
		{name: "empty_message", err: entities.ErrInvalidArgument, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			stub := &ucStub{handleInbound: func(entities.InboundMessage) (*entities.InboundResult, error) {
				return nil, tt.err
			}}
			app := webhookApp(stub)

			resp := postForm(t, app, url.Values{"From": {"+15550001111"}, "Body": {"hi"}})
			defer resp.Body.Close()

			require.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestGetNewsletterPageRendersMarkdown(t *testing.T) {
	stub := &ucStub{newsletterBySlug: func(slug string) (*entities.Newsletter, error) {
		require.Equal(t, "abcde12345", slug)
		return &entities.Newsletter{
			Slug:    "abcde12345",
			Content: "# The Family Loop\n\nhello **world**\n\n![photo](https://cdn.test/a.jpg)",
			Status:  entities.StatusSent,
		}, nil
	}}
	app := webhookApp(stub)

	req := httptest.NewRequest(http.MethodGet, "/n/abcde12345", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	page := string(body)
	require.Contains(t, page, "<strong>world</strong>")
	require.Contains(t, page, `<img src="https://cdn.test/a.jpg"`)
}

func TestGetNewsletterPageNotFound(t *testing.T) {
	stub := &ucStub{newsletterBySlug: func(string) (*entities.Newsletter, error) {
		return nil, entities.ErrNewsletterNotFound
	}}
	app := webhookApp(stub)

	req := httptest.NewRequest(http.MethodGet, "/n/nosuchslug", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
