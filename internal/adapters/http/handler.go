package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/randomtoy/spreads-go/internal/app"
	"github.com/randomtoy/spreads-go/internal/domain"
)

const maxQuestionLen = 500

type Handler struct {
	orch *app.Orchestrator
}

func NewHandler(orch *app.Orchestrator) *Handler {
	return &Handler{orch: orch}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/layouts", h.Layouts)
	e.GET("/v1/history", h.History)
	e.POST("/v1/sessions", h.CreateSession)
	e.GET("/v1/sessions/:id", h.GetSession)
	e.POST("/v1/sessions/:id/question", h.SetQuestion)
	e.POST("/v1/sessions/:id/start", h.Start)
	e.POST("/v1/sessions/:id/cards/:position/open", h.OpenCard)
	e.POST("/v1/sessions/:id/free-opening", h.ForceFreeOpening)
	e.POST("/v1/sessions/:id/reading", h.RequestReading)
	e.POST("/v1/sessions/:id/reset", h.Reset)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Layouts(c echo.Context) error {
	return c.JSON(http.StatusOK, toLayoutResponses(h.orch.Layouts()))
}

func (h *Handler) CreateSession(c echo.Context) error {
	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	s := h.orch.CreateSession(req.SpreadID)
	return c.JSON(http.StatusCreated, toSessionResponse(s.Snapshot()))
}

func (h *Handler) GetSession(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
	}
	s, ok := h.orch.Session(id)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: domain.ErrUnknownSession.Error()})
	}
	return c.JSON(http.StatusOK, toSessionResponse(s.Snapshot()))
}

func (h *Handler) SetQuestion(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
	}
	var req QuestionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if len(req.Question) > maxQuestionLen {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "question must be at most 500 characters"})
	}
	if err := h.orch.SetQuestion(id, req.Question); err != nil {
		return mapError(c, err)
	}
	return h.sessionJSON(c, id)
}

func (h *Handler) Start(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
	}
	var req StartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if len(req.Question) > maxQuestionLen {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "question must be at most 500 characters"})
	}
	if err := h.orch.Start(c.Request().Context(), id, req.Question); err != nil {
		return mapError(c, err)
	}
	return h.sessionJSON(c, id)
}

func (h *Handler) OpenCard(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
	}
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil || position < 1 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "position must be a positive integer"})
	}
	out, err := h.orch.OpenCard(id, position)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, OpenCardResponse{
		Opened:   out.Opened,
		Warned:   out.Warned,
		Expected: out.Expected,
		AllOpen:  out.AllOpen,
		Stage:    out.Stage,
	})
}

func (h *Handler) ForceFreeOpening(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
	}
	if err := h.orch.ForceFreeOpening(id); err != nil {
		return mapError(c, err)
	}
	return h.sessionJSON(c, id)
}

func (h *Handler) RequestReading(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
	}
	result, err := h.orch.RequestReading(c.Request().Context(), id)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toResultResponse(result))
}

func (h *Handler) Reset(c echo.Context) error {
	id, err := parseSessionID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session id"})
	}
	if err := h.orch.Reset(id); err != nil {
		return mapError(c, err)
	}
	return h.sessionJSON(c, id)
}

func (h *Handler) History(c echo.Context) error {
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be an integer between 1 and 100"})
		}
		limit = parsed
	}
	recs, err := h.orch.History(c.Request().Context(), limit)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toHistoryResponses(recs))
}

func (h *Handler) sessionJSON(c echo.Context, id uuid.UUID) error {
	s, ok := h.orch.Session(id)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: domain.ErrUnknownSession.Error()})
	}
	return c.JSON(http.StatusOK, toSessionResponse(s.Snapshot()))
}

func parseSessionID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// mapError folds orchestrator failures into HTTP responses along the error
// taxonomy: local validation 4xx, resource/auth hints with codes, recoverable
// poll timeout 202, transport 502.
func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrUnknownSession):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrEmptyQuestion),
		errors.Is(err, domain.ErrCardsNotDrawn),
		errors.Is(err, domain.ErrDeckTooSmall),
		errors.Is(err, domain.ErrUnknownDeck),
		errors.Is(err, domain.ErrUnknownCard):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInsufficientEnergy):
		return c.JSON(http.StatusPaymentRequired, ErrorResponse{Error: err.Error(), Code: "insufficient_energy"})
	case errors.Is(err, domain.ErrSessionInvalid):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error(), Code: "session_invalid"})
	case errors.Is(err, domain.ErrStillPreparing):
		return c.JSON(http.StatusAccepted, ErrorResponse{Error: err.Error(), Code: "still_preparing"})
	case errors.Is(err, domain.ErrReadingFailed):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "reading_failed"})
	case errors.Is(err, domain.ErrTransport):
		slog.Error("transport failure", "request_id", requestID, "error", err)
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error(), Code: "transport"})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
