package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/service/product"
)

type productHandler struct {
	service *product.Service
	logger  *log.Entry
}

func newProductHandler(service *product.Service, logger *log.Entry) *productHandler {
	return &productHandler{
		service: service,
		logger:  logger.WithField("handler", "products"),
	}
}

func (h *productHandler) routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/search/autocomplete", h.search)
	r.Get("/{productID}", h.get)
	r.Put("/{productID}", h.update)
	r.Delete("/{productID}", h.delete)
}

type productCreateRequest struct {
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	Price    float64 `json:"price"`
	StockQty int64   `json:"stock_qty"`
	IsActive *bool   `json:"is_active"`
}

func (h *productHandler) create(w http.ResponseWriter, r *http.Request) {
	var req productCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	created, err := h.service.Create(r.Context(), product.CreateInput{
		Name:     req.Name,
		SKU:      req.SKU,
		Price:    req.Price,
		StockQty: req.StockQty,
		IsActive: isActive,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeSuccess(w, toProductResponse(created))
}

func (h *productHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "productID")
	if err != nil {
		writeError(w, err.Error())
		return
	}

	got, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeSuccess(w, toProductResponse(got))
}

func (h *productHandler) list(w http.ResponseWriter, r *http.Request) {
	listQuery, err := parseListQuery(r)
	if err != nil {
		writeError(w, err.Error())
		return
	}
	isActive, err := parseBoolParam(r, "is_active")
	if err != nil {
		writeError(w, err.Error())
		return
	}

	products, total, err := h.service.List(r.Context(), domain.ProductListQuery{
		ListQuery: listQuery,
		IsActive:  isActive,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeSuccess(w, listResponse{
		Items: toProductResponses(products),
		Total: total,
		Skip:  listQuery.Offset,
		Limit: listQuery.Limit,
	})
}

func (h *productHandler) search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		writeError(w, "query parameter q is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			writeError(w, "invalid limit parameter: "+raw)
			return
		}
		limit = parsed
	}

	products, err := h.service.Search(r.Context(), term, limit)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeSuccess(w, toProductResponses(products))
}

type productUpdateRequest struct {
	Name     *string  `json:"name"`
	SKU      *string  `json:"sku"`
	Price    *float64 `json:"price"`
	StockQty *int64   `json:"stock_qty"`
	IsActive *bool    `json:"is_active"`
}

func (h *productHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "productID")
	if err != nil {
		writeError(w, err.Error())
		return
	}

	var req productUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, product.UpdateInput{
		Name:     req.Name,
		SKU:      req.SKU,
		Price:    req.Price,
		StockQty: req.StockQty,
		IsActive: req.IsActive,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeSuccess(w, toProductResponse(updated))
}

func (h *productHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "productID")
	if err != nil {
		writeError(w, err.Error())
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeSuccess(w, deletedResponse{Deleted: true})
}
