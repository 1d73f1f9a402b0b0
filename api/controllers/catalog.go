package controllers

import (
	"net/http"

	"github.com/dukapos/pos-terminal/api/middleware"
	"github.com/dukapos/pos-terminal/api/responses"
	"github.com/dukapos/pos-terminal/api/validators"
	"github.com/dukapos/pos-terminal/internal/catalog"
	"github.com/dukapos/pos-terminal/pkg/config"
	pkgerrors "github.com/dukapos/pos-terminal/pkg/errors"
	"github.com/dukapos/pos-terminal/pkg/logger"
)

const maxSearchLimit = 100

// CatalogSearch proxies keystroke-driven product lookup. An empty
// result never carries an error status; lookup problems degrade to an
// empty list so the register keeps working.
func CatalogSearch(svc catalog.Service, search config.SearchConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", search.PageSize, 1, maxSearchLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := r.URL.Query().Get("q")
		token := middleware.TokenFromContext(r.Context())

		results := svc.Search(r.Context(), token, query, limit)
		responses.WriteSuccess(w, map[string]any{"results": newProductViews(results)})
	}
}
