package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/org-structure-audit/internal/audit"
	"github.com/org-structure-audit/internal/domain"
	"github.com/org-structure-audit/internal/dto"
	"github.com/org-structure-audit/internal/service"
)

const maxUploadBytes = 10 << 20

type AuditHandler struct {
	auditService service.AuditService
	validator    *validator.Validate
	logger       *slog.Logger
}

func NewAuditHandler(auditService service.AuditService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		validator:    validator.New(),
		logger:       logger,
	}
}

// AuditUpload проверяет состав, переданный в теле запроса в CSV
func (h *AuditHandler) AuditUpload(w http.ResponseWriter, r *http.Request) {
	query := h.parseAuditQuery(r)
	if err := h.validator.Struct(&query); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	outcome, err := h.auditService.AuditUpload(r.Context(), body, &query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toAuditResponse(outcome))
}

// AuditStored проверяет состав, ранее загруженный в БД
func (h *AuditHandler) AuditStored(w http.ResponseWriter, r *http.Request) {
	query := h.parseAuditQuery(r)
	if err := h.validator.Struct(&query); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	outcome, err := h.auditService.AuditStored(r.Context(), &query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toAuditResponse(outcome))
}

// Import заменяет хранимый состав содержимым CSV
func (h *AuditHandler) Import(w http.ResponseWriter, r *http.Request) {
	query := dto.ImportQuery{Strict: parseBool(r, "strict")}

	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	n, err := h.auditService.Import(r.Context(), body, &query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, dto.ImportResponse{Imported: n})
}

func (h *AuditHandler) parseAuditQuery(r *http.Request) dto.AuditQuery {
	values := r.URL.Query()
	query := dto.AuditQuery{
		Lower:  values.Get("lower"),
		Upper:  values.Get("upper"),
		Strict: parseBool(r, "strict"),
	}

	if levelStr := values.Get("max_level"); levelStr != "" {
		if level, err := strconv.Atoi(levelStr); err == nil {
			query.MaxLevel = level
		} else {
			query.MaxLevel = -1
		}
	}

	return query
}

func parseBool(r *http.Request, key string) *bool {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func (h *AuditHandler) toAuditResponse(outcome *service.Outcome) dto.AuditResponse {
	resp := dto.AuditResponse{
		RunID:     outcome.RunID.String(),
		Employees: outcome.Employees,
		Lines:     outcome.Result.Lines(),
		Findings:  make([]dto.FindingResponse, len(outcome.Result.Findings)),
	}

	for i, f := range outcome.Result.Findings {
		ids := make([]int64, len(f.Employees))
		for j, e := range f.Employees {
			ids[j] = e.ID
		}
		finding := dto.FindingResponse{
			Kind:        string(f.Kind),
			EmployeeIDs: ids,
			Message:     f.Message,
		}
		if f.Kind == audit.KindUnderpaidManager || f.Kind == audit.KindOverpaidManager {
			delta := f.Delta.StringFixed(2)
			finding.Delta = &delta
		}
		resp.Findings[i] = finding
	}

	return resp
}

func (h *AuditHandler) handleServiceError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		h.respondError(w, http.StatusRequestEntityTooLarge, "request body too large", "")
	case errors.Is(err, domain.ErrInvalidRange):
		h.respondError(w, http.StatusBadRequest, "invalid salary range", err.Error())
	case errors.Is(err, domain.ErrInvalidHeader),
		errors.Is(err, domain.ErrMalformedRecord),
		errors.Is(err, domain.ErrDuplicateEmployee):
		h.respondError(w, http.StatusBadRequest, "invalid employee data", err.Error())
	case errors.Is(err, domain.ErrCEONotFound):
		h.respondError(w, http.StatusUnprocessableEntity, "no employee without a manager found", "")
	case errors.Is(err, domain.ErrMultipleRoots):
		h.respondError(w, http.StatusUnprocessableEntity, "more than one employee without a manager", err.Error())
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (h *AuditHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *AuditHandler) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
