package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/painel-financeiro/internal/infrastructure/realtime"
)

const keepAliveEvery = 25 * time.Second

// RealtimeHandler stream SSE de eventos del hub.
type RealtimeHandler struct {
	hub *realtime.Hub
	log zerolog.Logger
}

func NewRealtimeHandler(hub *realtime.Hub, log zerolog.Logger) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, log: log}
}

// Stream godoc
// @Summary      Stream SSE de eventos en tiempo real
// @Description  text/event-stream con keepalive cada 25s.
// @Tags         realtime
// @Security     Bearer
// @Produce      text/event-stream
// @Param        channels  query  string  false  "Canales separados por coma. Vacío = todos."
// @Success      200  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/realtime [get]
func (h *RealtimeHandler) Stream(c *fiber.Ctx) error {
	raw := c.Query("channels")
	channels := realtime.ParseChannels(raw)
	if raw != "" && len(channels) == 0 {
		return badRequest(c, "INVALID_CHANNELS", "ningún canal reconocido en channels")
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	sub := h.hub.Subscribe(channels...)
	userID := GetUserID(c)
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer sub.Close()
		ticker := time.NewTicker(keepAliveEvery)
		defer ticker.Stop()

		fmt.Fprint(w, ": conectado\n\n")
		if err := w.Flush(); err != nil {
			return
		}
		for {
			select {
			case ev, ok := <-sub.C:
				if !ok {
					return
				}
				payload, err := json.Marshal(ev)
				if err != nil {
					h.log.Error().Err(err).Str("channel", ev.Channel).Msg("serializar evento")
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Channel, payload)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				h.log.Debug().Str("user_id", userID).Msg("cliente SSE desconectado")
				return
			}
		}
	}))
	return nil
}
