package trivia

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

// HTTPHandler exposes the question bank over JSON/HTTP.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs the trivia HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "trivia_http").Logger(),
	}
}

// Register mounts the trivia routes. guard wraps the mutating routes; nil leaves
// them open.
func (h *HTTPHandler) Register(mux *http.ServeMux, guard func(http.Handler) http.Handler) {
	if guard == nil {
		guard = func(next http.Handler) http.Handler { return next }
	}
	mux.HandleFunc("GET /categories", h.ListCategories)
	mux.HandleFunc("GET /categories/{id}/questions", h.QuestionsByCategory)
	mux.HandleFunc("GET /questions", h.ListQuestions)
	mux.Handle("POST /questions", guard(http.HandlerFunc(h.CreateQuestion)))
	mux.HandleFunc("POST /questions/search", h.SearchQuestions)
	mux.Handle("DELETE /questions/{id}", guard(http.HandlerFunc(h.DeleteQuestion)))
	mux.HandleFunc("POST /quizzes", h.NextQuizQuestion)
}

// ListCategories handles GET /categories
func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": categories,
	})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.ListQuestions(r.Context(), pageParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       listing.Questions,
		"total_questions": listing.Total,
		"categories":      listing.Categories,
	})
}

// DeleteQuestion handles DELETE /questions/{id}?page=N
func (h *HTTPHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}
	listing, err := h.svc.DeleteQuestion(r.Context(), id, pageParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"deleted":         id,
		"questions":       listing.Questions,
		"total_questions": listing.Total,
	})
}

// CreateQuestion handles POST /questions
func (h *HTTPHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		logger := logging.FromContext(r.Context())
		logger.Debug().Err(err).Msg("create question: invalid payload")
		httperrors.RespondUnprocessable(w)
		return
	}
	nq, err := req.Validate()
	if err != nil {
		logger := logging.FromContext(r.Context())
		logger.Debug().Err(err).Msg("create question: invalid payload")
		httperrors.RespondUnprocessable(w)
		return
	}

	created, listing, err := h.svc.CreateQuestion(r.Context(), nq, pageParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"created":         created.ID,
		"questions":       listing.Questions,
		"total_questions": listing.Total,
	})
}

// SearchQuestions handles POST /questions/search?page=N
func (h *HTTPHandler) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		httperrors.RespondUnprocessable(w)
		return
	}
	listing, err := h.svc.SearchQuestions(r.Context(), req.SearchTerm, pageParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        listing.Questions,
		"total_questions":  listing.Total,
		"current_category": nil,
	})
}

// QuestionsByCategory handles GET /categories/{id}/questions?page=N
func (h *HTTPHandler) QuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}
	listing, err := h.svc.QuestionsByCategory(r.Context(), id, pageParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        listing.Questions,
		"total_questions":  listing.Total,
		"current_category": listing.CurrentCategory,
	})
}

// NextQuizQuestion handles POST /quizzes
func (h *HTTPHandler) NextQuizQuestion(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest
	if err := decodeJSON(r, &req); err != nil {
		httperrors.RespondBadRequest(w)
		return
	}
	if err := req.Validate(); err != nil {
		logger := logging.FromContext(r.Context())
		logger.Debug().Err(err).Msg("quiz: invalid payload")
		httperrors.RespondBadRequest(w)
		return
	}

	q, err := h.svc.NextQuizQuestion(r.Context(), req.Previous(), req.CategoryID())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	resp := map[string]interface{}{"success": true}
	if q != nil {
		resp["question"] = q
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *HTTPHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch KindOf(err) {
	case KindBadRequest:
		httperrors.RespondBadRequest(w)
	case KindNotFound:
		httperrors.RespondNotFound(w)
	default:
		logger := logging.FromContext(r.Context())
		logger.Warn().Err(err).Msg("request unprocessable")
		httperrors.RespondUnprocessable(w)
	}
}

func (h *HTTPHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("encode response")
	}
}

func pageParam(r *http.Request) int {
	return ParsePage(r.URL.Query().Get("page"))
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
}
