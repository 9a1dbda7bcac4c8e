// Package domain contains application usecases orchestrating domain logic by media ingest.
package domain

import (
	"context"
	"mime"

	"loopedin/internal/entities"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ingestMedia fetches each attachment from the gateway and persists it to the
// object store, concurrently. The returned URLs preserve the input order;
// failed items are logged and omitted. Missing media is acceptable, a failure
// never aborts the batch.
func (u *Usecase) ingestMedia(ctx context.Context, items []entities.MediaItem) []string {
	if len(items) == 0 {
		return []string{}
	}

	results := make([]string, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			body, contentType, err := u.collab.SMS.FetchMedia(gctx, item.URL)
			if err != nil {
				u.log.Errorw("media fetch failed", "error", err, "url", item.URL)
				return nil
			}
			defer func() { _ = body.Close() }()

			if contentType == "" {
				contentType = item.ContentType
			}
			key := "updates/" + uuid.New().String() + extensionFor(contentType)

			publicURL, err := u.collab.Media.Put(gctx, key, contentType, body, -1)
			if err != nil {
				u.log.Errorw("media store failed", "error", err, "url", item.URL)
				return nil
			}
			results[i] = publicURL
			return nil
		})
	}
	_ = g.Wait()

	urls := make([]string, 0, len(items))
	for _, r := range results {
		if r != "" {
			urls = append(urls, r)
		}
	}
	return urls
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
