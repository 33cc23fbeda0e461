package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/pines-admin-api/internal/application/events"
	"github.com/jhoicas/pines-admin-api/pkg/logger"
)

// EventsHandler stream SSE de eventos del usuario (cambios de saldo, pines emitidos).
type EventsHandler struct {
	hub       *events.Hub
	keepalive time.Duration
	log       *logger.Logger
}

// NewEventsHandler keepalive <= 0 usa 25s.
func NewEventsHandler(hub *events.Hub, keepalive time.Duration, log *logger.Logger) *EventsHandler {
	if keepalive <= 0 {
		keepalive = 25 * time.Second
	}
	return &EventsHandler{hub: hub, keepalive: keepalive, log: log.Component("events")}
}

// Stream godoc
// @Summary      Eventos del usuario (SSE)
// @Description  El token también puede ir en ?access_token= porque EventSource no envía headers.
// @Tags         events
// @Security     Bearer
// @Produce      text/event-stream
// @Success      200
// @Router       /api/events [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	userID := GetUserID(c)
	ch, cancel := h.hub.Subscribe(userID)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		ticker := time.NewTicker(h.keepalive)
		defer ticker.Stop()

		fmt.Fprint(w, ": conectado\n\n")
		if err := w.Flush(); err != nil {
			return
		}
		for {
			select {
			case e, ok := <-ch:
				if !ok {
					return
				}
				if err := writeEvent(w, e); err != nil {
					h.log.Debug().Err(err).Str("user_id", userID).Msg("cliente SSE desconectado")
					return
				}
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func writeEvent(w *bufio.Writer, e events.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, data); err != nil {
		return err
	}
	return w.Flush()
}
