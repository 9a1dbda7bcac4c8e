package handlers_fiber

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"loopedin/internal/entities"

	"github.com/gofiber/fiber/v2"
	"github.com/yuin/goldmark"
)

var newsletterPage = template.Must(template.New("newsletter").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Your Loop Newsletter</title>
<style>
body { font-family: Georgia, serif; max-width: 42rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
img { max-width: 100%; border-radius: 6px; }
hr { border: none; border-top: 1px solid #ddd; margin: 2rem 0; }
</style>
</head>
<body>
{{.Content}}
</body>
</html>
`))

// GetNewsletterPage renders the public newsletter view by slug. No auth: the
// slug is the capability.
func (h *Handler) GetNewsletterPage(c *fiber.Ctx) error {
	n, err := h.uc.NewsletterBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, entities.ErrNewsletterNotFound) {
			return c.Status(http.StatusNotFound).SendString("newsletter not found")
		}
		return c.Status(http.StatusInternalServerError).SendString("internal error")
	}

	var rendered bytes.Buffer
	if err := goldmark.Convert([]byte(n.Content), &rendered); err != nil {
		h.log.Errorw("failed to render newsletter", "error", err, "slug", n.Slug)
		return c.Status(http.StatusInternalServerError).SendString("internal error")
	}

	var page bytes.Buffer
	if err := newsletterPage.Execute(&page, struct{ Content template.HTML }{
		Content: template.HTML(rendered.String()),
	}); err != nil {
		return c.Status(http.StatusInternalServerError).SendString("internal error")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(http.StatusOK).Send(page.Bytes())
}
