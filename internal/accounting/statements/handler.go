package statements

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ledgerline/ledgerline/internal/accounting/accounts"
	"github.com/ledgerline/ledgerline/internal/platform/httpx"
)

const dateLayout = "2006-01-02"

// Handler exposes statement queries. Reads are reentrant and hold no
// locks, so the handler needs no coordination with confirmations.
type Handler struct {
	service  *Service
	logger   *slog.Logger
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		service:  service,
		logger:   logger,
		validate: validator.New(),
	}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/batch", h.BuildMany)
	r.Get("/{code}", h.Build)
}

type statementQuery struct {
	AccountCode    string    `validate:"required"`
	CounterpartyID string    `validate:"-"`
	From           time.Time `validate:"required"`
	To             time.Time `validate:"required,gtefield=From"`
}

func (h *Handler) parseQuery(r *http.Request, code string) (statementQuery, error) {
	q := statementQuery{
		AccountCode:    code,
		CounterpartyID: r.URL.Query().Get("counterparty"),
	}
	var err error
	if raw := r.URL.Query().Get("from"); raw != "" {
		if q.From, err = time.Parse(dateLayout, raw); err != nil {
			return q, err
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if q.To, err = time.Parse(dateLayout, raw); err != nil {
			return q, err
		}
	}
	return q, h.validate.Struct(q)
}

func (h *Handler) Build(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r, chi.URLParam(r, "code"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid statement query", err.Error())
		return
	}
	stmt, err := h.service.Statement(r.Context(),
		Scope{AccountCode: q.AccountCode, CounterpartyID: q.CounterpartyID},
		Period{From: q.From, To: q.To})
	if err != nil {
		if errors.Is(err, accounts.ErrAccountNotFound) {
			httpx.Problem(w, http.StatusNotFound, "account not found", q.AccountCode)
			return
		}
		h.logger.Error("build statement", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "internal error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, stmt)
}

func (h *Handler) BuildMany(w http.ResponseWriter, r *http.Request) {
	codes := strings.Split(r.URL.Query().Get("accounts"), ",")
	scopes := make([]Scope, 0, len(codes))
	var q statementQuery
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		parsed, err := h.parseQuery(r, code)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "invalid statement query", err.Error())
			return
		}
		q = parsed
		scopes = append(scopes, Scope{AccountCode: code, CounterpartyID: parsed.CounterpartyID})
	}
	if len(scopes) == 0 {
		httpx.Problem(w, http.StatusBadRequest, "invalid statement query", "accounts parameter required")
		return
	}
	stmts, err := h.service.StatementMany(r.Context(), scopes, Period{From: q.From, To: q.To})
	if err != nil {
		if errors.Is(err, accounts.ErrAccountNotFound) {
			httpx.Problem(w, http.StatusNotFound, "account not found", "")
			return
		}
		h.logger.Error("build statements", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "internal error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"statements": stmts})
}
