// Package domain contains application usecases orchestrating domain logic by newsletter.
package domain

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"loopedin/internal/entities"
)

const slugAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const slugLength = 10

// slug collisions are negligible at this length, but the storage-level unique
// constraint stays the arbiter; inserts retry on conflict.
const slugInsertAttempts = 5

func newSlug() string {
	buf := make([]byte, slugLength)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	for i, b := range buf {
		buf[i] = slugAlphabet[int(b)%len(slugAlphabet)]
	}
	return string(buf)
}

func (u *Usecase) manageableLoop(ctx context.Context, requester entities.Session, loopID int64) (*entities.Loop, error) {
	loop, err := u.repo.LoopByID(ctx, loopID)
	if err != nil {
		return nil, err
	}
	if loop.CreatorID != requester.UserID && !requester.IsAdmin {
		return nil, entities.ErrForbidden
	}
	return loop, nil
}

// CompileNewsletter gathers all pending updates for the loop, generates prose
// through the text-generation collaborator and inserts a draft newsletter. No
// row is created when generation fails.
func (u *Usecase) CompileNewsletter(ctx context.Context, requester entities.Session, loopID int64, opts entities.CompileOptions) (*entities.Newsletter, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	loop, err := u.manageableLoop(ctx, requester, loopID)
	if err != nil {
		return nil, err
	}

	updates, err := u.repo.UpdatesForLoop(ctx, loopID)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: loop %q has no updates to compile", entities.ErrNoUpdates, loop.Name)
	}

	body, err := u.collab.Textgen.Generate(ctx, buildInstruction(loop, updates))
	if err != nil {
		u.log.Errorw("newsletter generation failed", "error", err, "loop_id", loopID)
		return nil, fmt.Errorf("%w: %v", entities.ErrGeneration, err)
	}

	content := renderNewsletter(loop, body, opts)

	for attempt := 0; attempt < slugInsertAttempts; attempt++ {
		n, err := u.repo.CreateNewsletter(ctx, entities.Newsletter{
			LoopID:  loopID,
			Slug:    newSlug(),
			Content: content,
		})
		if errors.Is(err, entities.ErrSlugExists) {
			continue
		}
		if err != nil {
			return nil, err
		}
		u.log.Infow("newsletter compiled", "newsletter_id", n.ID, "loop_id", loopID, "updates", len(updates))
		return n, nil
	}
	return nil, entities.ErrSlugExists
}

// buildInstruction renders the structured prompt for the generation service:
// tone from the loop's vibes, every update included verbatim, images kept as-is.
func buildInstruction(loop *entities.Loop, updates []entities.Update) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a newsletter for the group %q.\n", loop.Name)
	if len(loop.Vibes) > 0 {
		fmt.Fprintf(&b, "Tone: %s.\n", strings.Join(loop.Vibes, ", "))
	}
	if loop.Context != "" {
		fmt.Fprintf(&b, "Group context: %s\n", loop.Context)
	}
	b.WriteString("Include every update below verbatim, attributed to its author. " +
		"Keep all image URLs exactly as given, embedded as markdown images. " +
		"Output markdown only.\n\nUpdates:\n")
	for _, up := range updates {
		fmt.Fprintf(&b, "- %s: %s\n", up.AuthorName, up.Content)
		for _, m := range up.MediaURLs {
			fmt.Fprintf(&b, "  image: %s\n", m)
		}
	}
	return b.String()
}

func renderNewsletter(loop *entities.Loop, body string, opts entities.CompileOptions) string {
	header := opts.CustomHeader
	if header == "" {
		header = fmt.Sprintf("# The %s Loop", loop.Name)
	}
	closing := opts.CustomClosing
	if closing == "" {
		closing = "Until next time — reply to this number with your updates to be featured."
	}
	return header + "\n\n" + strings.TrimSpace(body) + "\n\n---\n\n" + closing + "\n"
}

// EditNewsletter replaces draft content in full; rejected once finalized or sent.
func (u *Usecase) EditNewsletter(ctx context.Context, requester entities.Session, newsletterID int64, content string) (*entities.Newsletter, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", entities.ErrInvalidArgument)
	}
	if _, err := u.requesterNewsletter(ctx, requester, newsletterID); err != nil {
		return nil, err
	}
	return u.repo.UpdateNewsletterContent(ctx, newsletterID, content)
}

// FinalizeNewsletter moves a draft to finalized; only legal from draft.
func (u *Usecase) FinalizeNewsletter(ctx context.Context, requester entities.Session, newsletterID int64) (*entities.Newsletter, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.requesterNewsletter(ctx, requester, newsletterID); err != nil {
		return nil, err
	}
	return u.repo.FinalizeNewsletter(ctx, newsletterID)
}

// SendNewsletter fans the public link out to every member with a phone number,
// best effort per member, then marks the newsletter sent. Per-member failures
// are counted, not raised.
func (u *Usecase) SendNewsletter(ctx context.Context, requester entities.Session, newsletterID int64) (*entities.Newsletter, entities.SendResult, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	var result entities.SendResult

	n, err := u.requesterNewsletter(ctx, requester, newsletterID)
	if err != nil {
		return nil, result, err
	}
	if n.Status != entities.StatusFinalized {
		return nil, result, entities.ErrInvalidTransition
	}

	members, err := u.repo.Members(ctx, n.LoopID)
	if err != nil {
		return nil, result, err
	}

	link := strings.TrimRight(u.collab.PublicBaseURL, "/") + "/n/" + n.Slug
	body := fmt.Sprintf("Your loop newsletter is ready! Read it here: %s", link)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, m := range members {
		if m.PhoneNumber == "" {
			continue
		}
		m := m
		result.Attempted++
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := u.collab.SMS.SendSMS(ctx, m.PhoneNumber, body)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				u.log.Errorw("newsletter send failed for member", "error", err, "user_id", m.ID)
				result.Failed++
				return
			}
			result.Succeeded++
		}()
	}
	wg.Wait()

	sent, err := u.repo.MarkNewsletterSent(ctx, newsletterID, time.Now())
	if err != nil {
		return nil, result, err
	}

	u.log.Infow("newsletter sent",
		"newsletter_id", newsletterID,
		"attempted", result.Attempted,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)
	return sent, result, nil
}

// Newsletter returns a newsletter by id.
func (u *Usecase) Newsletter(ctx context.Context, newsletterID int64) (*entities.Newsletter, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	return u.repo.NewsletterByID(ctx, newsletterID)
}

// NewsletterBySlug resolves the public view by opaque slug.
func (u *Usecase) NewsletterBySlug(ctx context.Context, slug string) (*entities.Newsletter, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", entities.ErrInvalidArgument)
	}
	return u.repo.NewsletterBySlug(ctx, slug)
}

// NewslettersForLoop lists a loop's newsletters.
func (u *Usecase) NewslettersForLoop(ctx context.Context, loopID int64) ([]entities.Newsletter, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if _, err := u.repo.LoopByID(ctx, loopID); err != nil {
		return nil, err
	}
	return u.repo.NewslettersForLoop(ctx, loopID)
}

func (u *Usecase) requesterNewsletter(ctx context.Context, requester entities.Session, newsletterID int64) (*entities.Newsletter, error) {
	n, err := u.repo.NewsletterByID(ctx, newsletterID)
	if err != nil {
		return nil, err
	}
	if _, err := u.manageableLoop(ctx, requester, n.LoopID); err != nil {
		return nil, err
	}
	return n, nil
}
