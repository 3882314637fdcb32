package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	assistApp "github.com/Swacker3927/ai-todo-manager/internal/assist/application"
	assistDomain "github.com/Swacker3927/ai-todo-manager/internal/assist/domain"
)

// AssistHandler handles the AI-assisted endpoints.
type AssistHandler struct {
	extractTask  *assistApp.ExtractTaskHandler
	analyzeTodos *assistApp.AnalyzeTodosHandler
	logger       *slog.Logger
}

// NewAssistHandler creates a new assist handler.
func NewAssistHandler(extractTask *assistApp.ExtractTaskHandler, analyzeTodos *assistApp.AnalyzeTodosHandler, logger *slog.Logger) *AssistHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssistHandler{
		extractTask:  extractTask,
		analyzeTodos: analyzeTodos,
		logger:       logger,
	}
}

// ExtractTask handles POST /ai/extract-task
func (h *AssistHandler) ExtractTask(w http.ResponseWriter, r *http.Request) {
	if _, ok := SessionFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.extractTask.Handle(r.Context(), assistApp.ExtractTaskCommand{Text: req.Text})
	if err != nil {
		h.writeAssistError(w, err)
		return
	}

	writeSuccess(w, result)
}

// AnalyzeTodos handles POST /ai/analyze-todos
func (h *AssistHandler) AnalyzeTodos(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	var req struct {
		Period string `json:"period"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.analyzeTodos.Handle(r.Context(), assistApp.AnalyzeTodosCommand{
		OwnerID: session.UserID,
		Period:  req.Period,
	})
	if err != nil {
		h.writeAssistError(w, err)
		return
	}

	writeSuccess(w, result)
}

// writeAssistError maps an assist failure onto its taxonomy status code.
// Unclassified failures are logged for diagnostics and surfaced generically.
func (h *AssistHandler) writeAssistError(w http.ResponseWriter, err error) {
	var assistErr *assistDomain.Error
	if errors.As(err, &assistErr) {
		if assistErr.Kind == assistDomain.KindUnknown {
			h.logger.Error("assist request failed", "error", err)
			writeError(w, http.StatusInternalServerError, "something went wrong, please try again")
			return
		}
		writeError(w, assistErr.Kind.HTTPStatus(), assistErr.Message)
		return
	}

	h.logger.Error("assist request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "something went wrong, please try again")
}
