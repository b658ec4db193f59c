package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerline/ledgerline/internal/accounting/journals"
	"github.com/ledgerline/ledgerline/internal/accounting/statements"
	"github.com/ledgerline/ledgerline/internal/platform/httpx"
	"github.com/ledgerline/ledgerline/internal/vouchers"
)

// RouterParams wires the HTTP surface together.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	VoucherHandler   *vouchers.Handler
	JournalHandler   *journals.Handler
	StatementHandler *statements.Handler
}

// NewRouter builds the chi router with the common middleware chain.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()
	for _, mw := range MiddlewareStack(MiddlewareConfig{Logger: params.Logger, Config: params.Config}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/vouchers", params.VoucherHandler.MountRoutes)
	r.Route("/journals", params.JournalHandler.MountRoutes)
	r.Route("/statements", params.StatementHandler.MountRoutes)

	return r
}
