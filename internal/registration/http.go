package registration

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"registration-service/internal/httputil"
	"registration-service/internal/metrics"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHandler(service Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: m,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/submit-form", h.SubmitForm)
	router.Get("/allUsers", h.AllUsers)
}

type submitResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, httputil.CodeValidationFailed, "Invalid request body.")
		return
	}

	h.logger.InfoContext(r.Context(), "processing submission", "email", input.PersonalEmail)

	reg, err := h.service.Submit(r.Context(), input)
	if err != nil {
		h.handleSubmitError(w, r, err)
		return
	}

	h.metrics.RecordRegistrationCreated(r.Context())

	httputil.RespondWithJSON(w, http.StatusCreated, submitResponse{
		Message: "Form submitted successfully.",
		ID:      reg.ID,
	})
}

func (h *Handler) AllUsers(w http.ResponseWriter, r *http.Request) {
	regs, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to fetch registrations", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, httputil.CodePersistenceFailed, "Failed to fetch users.")
		return
	}

	h.metrics.RecordListViewed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, regs)
}

func (h *Handler) handleSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		h.logger.InfoContext(r.Context(), "submission rejected by validation", "fields", len(vErr.Fields))
		httputil.RespondWithFieldErrors(w, http.StatusBadRequest, "Please fix the errors in the form.", vErr.Fields)
		return
	}
	if errors.Is(err, ErrDuplicateEmail) {
		h.logger.InfoContext(r.Context(), "duplicate email rejected")
		h.metrics.RecordDuplicateRejected(r.Context())
		httputil.RespondWithError(w, http.StatusConflict, httputil.CodeDuplicateEmail, "Email is already registered.")
		return
	}
	h.logger.ErrorContext(r.Context(), "submission failed", "error", err)
	httputil.RespondWithError(w, http.StatusInternalServerError, httputil.CodePersistenceFailed, "Submission failed.")
}
