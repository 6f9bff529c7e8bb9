package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
)

// parseListQuery читает skip/limit/search/order_by/order_dir из query-строки.
// limit ограничивается диапазоном [1, 1000], skip не может быть отрицательным.
func parseListQuery(r *http.Request) (domain.ListQuery, error) {
	query := domain.ListQuery{
		Limit:    defaultPageLimit,
		Search:   r.URL.Query().Get("search"),
		OrderBy:  r.URL.Query().Get("order_by"),
		OrderDir: r.URL.Query().Get("order_dir"),
	}

	if raw := r.URL.Query().Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return domain.ListQuery{}, fmt.Errorf("invalid skip parameter: %s", raw)
		}
		query.Offset = skip
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxPageLimit {
			return domain.ListQuery{}, fmt.Errorf("invalid limit parameter: %s", raw)
		}
		query.Limit = limit
	}

	return query, nil
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %s", name, raw)
	}
	return id, nil
}

func parseBoolParam(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter: %s", name, raw)
	}
	return &value, nil
}
