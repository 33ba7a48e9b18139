package handler

import (
	"context"
	"errors"

	"github.com/eolymp/go-texmath"
	"github.com/eolymp/go-texmath/internal/render"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Converter is what the handlers need from the render service
type Converter interface {
	Convert(ctx context.Context, req render.Request) (*render.Result, error)
}

type ConvertHandler struct {
	service Converter
	log     *zap.Logger
}

func NewConvertHandler(service Converter, log *zap.Logger) *ConvertHandler {
	if log == nil {
		log = zap.NewNop()
	}

	return &ConvertHandler{service: service, log: log}
}

// RegisterRoutes registers the conversion routes.
func (h *ConvertHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.Health)
	router.Post("/convert", h.Convert)
}

// RegisterWebsocket registers the live preview endpoint.
func (h *ConvertHandler) RegisterWebsocket(router fiber.Router) {
	router.Get("/ws/preview", h.Preview)
}

func (h *ConvertHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Convert converts the expression posted as JSON.
func (h *ConvertHandler) Convert(c *fiber.Ctx) error {
	requestID := uuid.NewString()
	c.Set("X-Request-ID", requestID)

	var req render.Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "request_id": requestID})
	}

	if req.Source == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "source is required", "request_id": requestID})
	}

	res, err := h.service.Convert(c.UserContext(), req)
	if err != nil {
		status, body := errorBody(err)
		body["request_id"] = requestID

		h.log.Info("conversion failed", zap.String("request_id", requestID), zap.Error(err))
		return c.Status(status).JSON(body)
	}

	h.log.Debug("converted", zap.String("request_id", requestID), zap.Bool("cached", res.Cached))

	return c.JSON(fiber.Map{
		"request_id": requestID,
		"mathml":     res.MathML,
		"cached":     res.Cached,
	})
}

// Preview upgrades to a websocket: every text frame is an expression, every reply the JSON of its conversion.
func (h *ConvertHandler) Preview(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	display := c.QueryBool("display", false)

	return websocket.New(func(conn *websocket.Conn) {
		session := uuid.NewString()
		h.log.Info("preview session started", zap.String("session_id", session))
		defer h.log.Info("preview session ended", zap.String("session_id", session))

		for {
			kind, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}

			if kind != websocket.TextMessage {
				continue
			}

			reply := fiber.Map{}
			res, err := h.service.Convert(context.Background(), render.Request{Source: string(msg), DisplayMode: display, ThrowOnError: true})
			if err != nil {
				_, reply = errorBody(err)
			} else {
				reply["mathml"] = res.MathML
			}

			if err := conn.WriteJSON(reply); err != nil {
				h.log.Warn("preview write failed", zap.String("session_id", session), zap.Error(err))
				return
			}
		}
	})(c)
}

// errorBody maps a conversion error to a status and a response, parse errors carry their position
func errorBody(err error) (int, fiber.Map) {
	var perr *texmath.ParseError
	if errors.As(err, &perr) {
		return fiber.StatusUnprocessableEntity, fiber.Map{"error": perr.Message, "position": perr.Position()}
	}

	return fiber.StatusInternalServerError, fiber.Map{"error": err.Error()}
}
