package handlers_fiber

import (
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"

	"loopedin/internal/entities"

	"github.com/gofiber/fiber/v2"
)

const maxInboundMedia = 10

// twiml is the gateway reply document; its Message body is sent back to the sender.
type twiml struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// PostWebhookSMS is the inbound gateway webhook. It routes the message and
// answers with an ack reply document; terminal failures answer non-2xx and the
// sender gets no ack.
func (h *Handler) PostWebhookSMS(c *fiber.Ctx) error {
	msg := entities.InboundMessage{
		From: c.FormValue("From"),
		Body: c.FormValue("Body"),
	}
	for i := 0; i < maxInboundMedia; i++ {
		url := c.FormValue(fmt.Sprintf("MediaUrl%d", i))
		if url == "" {
			break
		}
		msg.Media = append(msg.Media, entities.MediaItem{
			URL:         url,
			ContentType: c.FormValue(fmt.Sprintf("MediaContentType%d", i)),
		})
	}

	res, err := h.uc.HandleInbound(c.Context(), msg)
	if err != nil {
		h.log.Infow("inbound rejected", "error", err.Error(), "from", msg.From)
		return c.SendStatus(webhookStatus(err))
	}

	payload, err := xml.Marshal(twiml{Message: res.Ack})
	if err != nil {
		return c.SendStatus(http.StatusInternalServerError)
	}

	c.Set(fiber.HeaderContentType, "application/xml")
	return c.Status(http.StatusOK).Send(append([]byte(xml.Header), payload...))
}

func webhookStatus(err error) int {
	switch {
	case errors.Is(err, entities.ErrUserNotFound), errors.Is(err, entities.ErrNoMemberships):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrUnknownLoopToken), errors.Is(err, entities.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
