package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/service/order"
)

const idempotencyKeyHeader = "Idempotency-Key"

type orderHandler struct {
	service *order.Service
	logger  *log.Entry
}

func newOrderHandler(service *order.Service, logger *log.Entry) *orderHandler {
	return &orderHandler{
		service: service,
		logger:  logger.WithField("handler", "orders"),
	}
}

func (h *orderHandler) routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{orderID}", h.get)
	r.Patch("/{orderID}/status", h.updateStatus)
	r.Delete("/{orderID}", h.delete)
}

type orderItemCreateRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type orderCreateRequest struct {
	CustomerID int64                    `json:"customer_id"`
	Items      []orderItemCreateRequest `json:"items"`
}

func (h *orderHandler) create(w http.ResponseWriter, r *http.Request) {
	var req orderCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body")
		return
	}

	items := make([]order.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, order.ItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	created, err := h.service.CreateOrder(r.Context(), req.CustomerID, items, r.Header.Get(idempotencyKeyHeader))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeSuccess(w, toOrderResponse(created))
}

func (h *orderHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "orderID")
	if err != nil {
		writeError(w, err.Error())
		return
	}

	got, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeSuccess(w, toOrderResponse(got))
}

func (h *orderHandler) list(w http.ResponseWriter, r *http.Request) {
	listQuery, err := parseListQuery(r)
	if err != nil {
		writeError(w, err.Error())
		return
	}

	query := domain.OrderListQuery{
		ListQuery: listQuery,
		Status:    r.URL.Query().Get("status"),
	}
	if raw := r.URL.Query().Get("customer_id"); raw != "" {
		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || customerID <= 0 {
			writeError(w, "invalid customer_id parameter: "+raw)
			return
		}
		query.CustomerID = customerID
	}

	orders, total, err := h.service.ListOrders(r.Context(), query)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	items := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, toOrderResponse(o))
	}

	writeSuccess(w, listResponse{
		Items: items,
		Total: total,
		Skip:  listQuery.Offset,
		Limit: listQuery.Limit,
	})
}

type orderStatusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *orderHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "orderID")
	if err != nil {
		writeError(w, err.Error())
		return
	}

	var req orderStatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body")
		return
	}

	updated, err := h.service.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeSuccess(w, toOrderResponse(updated))
}

func (h *orderHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "orderID")
	if err != nil {
		writeError(w, err.Error())
		return
	}

	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeSuccess(w, deletedResponse{Deleted: true})
}
