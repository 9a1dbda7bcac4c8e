package handlers_fiber

import (
	"loopedin/internal/transport/http/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts all HTTP routes on the fiber app.
func RegisterRoutes(app *fiber.App, h *Handler, tokens middleware.TokenVerifier) {
	// Gateway webhook and public newsletter view carry no session.
	app.Post("/webhook/sms", h.PostWebhookSMS)
	app.Get("/n/:slug", h.GetNewsletterPage)

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.PostRegister)
	authGroup.Post("/login", h.PostLogin)

	protected := v1.Group("/", middleware.RequireAuth(tokens))
	protected.Post("/loops", h.PostLoop)
	protected.Get("/loops", h.GetMyLoops)
	protected.Get("/loops/:id", h.GetLoop)
	protected.Post("/loops/:id/members", h.PostMember)
	protected.Get("/loops/:id/members", h.GetMembers)
	protected.Get("/loops/:id/updates", h.GetUpdates)
	protected.Delete("/updates/:id", h.DeleteUpdate)
	protected.Post("/loops/:id/newsletters", h.PostCompileNewsletter)
	protected.Get("/loops/:id/newsletters", h.GetNewslettersForLoop)
	protected.Get("/newsletters/:id", h.GetNewsletter)
	protected.Put("/newsletters/:id", h.PutNewsletterContent)
	protected.Post("/newsletters/:id/finalize", h.PostFinalizeNewsletter)
	protected.Post("/newsletters/:id/send", h.PostSendNewsletter)
	protected.Get("/loops/:id/stats", h.GetLoopStats)

	admin := v1.Group("/admin", middleware.RequireAuth(tokens), middleware.RequireAdmin())
	admin.Get("/stats", h.GetStats)
}
