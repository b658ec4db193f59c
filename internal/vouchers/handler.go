package vouchers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ledgerline/ledgerline/internal/accounting/shared"
	"github.com/ledgerline/ledgerline/internal/platform/httpx"
)

// Handler is the thin HTTP surface over the lifecycle controller. It
// decodes, validates and delegates; every accounting rule lives in the
// engine.
type Handler struct {
	service  *Service
	logger   *slog.Logger
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{service: service, logger: logger, validate: validator.New()}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Post("/{id}/confirm", h.Confirm)
	r.Post("/{id}/cancel", h.Cancel)
}

func (h *Handler) decodeDraft(r *http.Request) (DraftInput, error) {
	var input DraftInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		return input, err
	}
	return input, h.validate.Struct(input)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	input, err := h.decodeDraft(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid voucher", err.Error())
		return
	}
	v, err := h.service.CreateDraft(r.Context(), input)
	if err != nil {
		h.respondError(w, err, "create voucher")
		return
	}
	httpx.JSON(w, http.StatusCreated, v)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid voucher id", err.Error())
		return
	}
	v, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "get voucher")
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid voucher id", err.Error())
		return
	}
	input, err := h.decodeDraft(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid voucher", err.Error())
		return
	}
	v, err := h.service.UpdateDraft(r.Context(), id, input)
	if err != nil {
		h.respondError(w, err, "update voucher")
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}

func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid voucher id", err.Error())
		return
	}
	v, entry, err := h.service.Confirm(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "confirm voucher")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"voucher": v, "entry": entry})
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid voucher id", err.Error())
		return
	}
	var input CancelInput
	if r.ContentLength > 0 {
		if err := httpx.DecodeJSON(r, &input); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "invalid cancel request", err.Error())
			return
		}
	}
	v, err := h.service.Cancel(r.Context(), id, input)
	if err != nil {
		h.respondError(w, err, "cancel voucher")
		return
	}
	httpx.JSON(w, http.StatusOK, v)
}

// respondError maps engine errors onto problem responses so the caller
// can surface them next to the offending document.
func (h *Handler) respondError(w http.ResponseWriter, err error, op string) {
	var (
		cfgErr      *shared.ConfigurationError
		unbalanced  *shared.UnbalancedEntryError
		discountErr *shared.InvalidDiscountError
	)
	switch {
	case errors.Is(err, shared.ErrVoucherNotFound):
		httpx.Problem(w, http.StatusNotFound, "voucher not found", "")
	case errors.Is(err, shared.ErrEmptyDocument):
		httpx.Problem(w, http.StatusUnprocessableEntity, "empty document", err.Error())
	case errors.Is(err, shared.ErrConfirmedVoucherEdit),
		errors.Is(err, shared.ErrInvalidStatus),
		errors.Is(err, shared.ErrEntryExists):
		httpx.Problem(w, http.StatusConflict, "invalid voucher state", err.Error())
	case errors.Is(err, shared.ErrVoucherLocked):
		httpx.Problem(w, http.StatusLocked, "voucher locked", err.Error())
	case errors.As(err, &cfgErr):
		httpx.Problem(w, http.StatusUnprocessableEntity, "account configuration error", cfgErr.Error())
	case errors.As(err, &unbalanced):
		httpx.Problem(w, http.StatusUnprocessableEntity, "unbalanced entry", unbalanced.Error())
	case errors.As(err, &discountErr):
		httpx.Problem(w, http.StatusUnprocessableEntity, "invalid discount", discountErr.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "internal error", "")
	}
}
