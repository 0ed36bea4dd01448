package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sandevgo/pastcast/internal/core"
	"github.com/sandevgo/pastcast/internal/service/chat"
	"github.com/sandevgo/pastcast/internal/service/climate"
	"github.com/sandevgo/pastcast/pkg/conv"
	"github.com/sandevgo/pastcast/pkg/log"
)

const defaultHistoryLimit = 20

type ChatService interface {
	Handle(ctx context.Context, sessionID, text string) chat.Exchange
	History(ctx context.Context, sessionID string, limit int) ([]core.Turn, error)
	Clear(ctx context.Context, sessionID string) error
}

type Estimator interface {
	Estimate(req climate.Request) (*climate.Report, error)
}

// Health describes the configured backends for GET /health.
type Health struct {
	Model       string
	WeatherAPI  bool
	Translation string
	Storage     string
}

type messageRequest struct {
	Text      string `json:"text" validate:"max=4000"`
	SessionID string `json:"session_id,omitempty" validate:"omitempty,max=128"`
}

type messageResponse struct {
	Reply     string    `json:"reply"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Intent    string    `json:"intent,omitempty"`
	HTML      string    `json:"html,omitempty"`
}

type historyItem struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type healthResponse struct {
	Status      string    `json:"status"`
	Model       string    `json:"model"`
	WeatherAPI  bool      `json:"weather_api"`
	Translation string    `json:"translation"`
	Storage     string    `json:"storage"`
	Timestamp   time.Time `json:"timestamp"`
}

type handlers struct {
	chat    ChatService
	climate Estimator
	health  Health
}

func (h *handlers) message(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[messageRequest](r)
	if err != nil {
		bindFailed(w, r, err)
		return
	}

	ex := h.chat.Handle(r.Context(), req.SessionID, req.Text)
	resp := messageResponse{
		Reply:     ex.Reply,
		Status:    "success",
		Timestamp: ex.Timestamp,
	}
	if !ex.Empty {
		resp.Intent = string(ex.Intent)
		resp.HTML = conv.MarkdownToHTML([]byte(ex.Reply))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) history(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	turns, err := h.chat.History(r.Context(), r.URL.Query().Get("session_id"), limit)
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("failed to read history")
		writeInternal(w, err.Error())
		return
	}

	items := make([]historyItem, 0, len(turns))
	for _, t := range turns {
		items = append(items, historyItem{Role: t.Role, Content: t.Content})
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *handlers) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.chat.Clear(r.Context(), ""); err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("failed to clear history")
		writeInternal(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": core.HistoryClearedMsg})
}

func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "healthy",
		Model:       h.health.Model,
		WeatherAPI:  h.health.WeatherAPI,
		Translation: h.health.Translation,
		Storage:     h.health.Storage,
		Timestamp:   time.Now(),
	})
}

func (h *handlers) weatherProbability(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[climate.Request](r)
	if err != nil {
		var be *BindError
		if errors.As(err, &be) && len(be.Fields) > 0 {
			writeError(w, http.StatusBadRequest, requiredMessage(be))
			return
		}
		bindFailed(w, r, err)
		return
	}

	report, err := h.climate.Estimate(req)
	if err != nil {
		var ie *climate.InputError
		if errors.As(err, &ie) {
			writeError(w, http.StatusBadRequest, ie.Msg)
			return
		}
		log.FromCtx(r.Context()).Error().Err(err).Msg("weather probability failed")
		writeInternal(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// requiredMessage maps the first failed field to the fixed client message.
func requiredMessage(be *BindError) string {
	if be.Fields[0].Field() == "location" {
		return climate.MsgMissingLocation
	}
	return climate.MsgMissingStartDate
}

func bindFailed(w http.ResponseWriter, r *http.Request, err error) {
	var be *BindError
	if errors.As(err, &be) {
		writeError(w, http.StatusBadRequest, be.Msg)
		return
	}
	log.FromCtx(r.Context()).Error().Err(err).Msg("failed to bind request")
	writeInternal(w, err.Error())
}
