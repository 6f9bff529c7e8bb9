package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	"github.com/vladislavdragonenkov/catalog/internal/service/customer"
)

type customerHandler struct {
	service *customer.Service
	logger  *log.Entry
}

func newCustomerHandler(service *customer.Service, logger *log.Entry) *customerHandler {
	return &customerHandler{
		service: service,
		logger:  logger.WithField("handler", "customers"),
	}
}

func (h *customerHandler) routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{customerID}", h.get)
	r.Put("/{customerID}", h.update)
	r.Delete("/{customerID}", h.delete)
}

type customerCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Document string `json:"document"`
}

func (h *customerHandler) create(w http.ResponseWriter, r *http.Request) {
	var req customerCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), customer.CreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Document: req.Document,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeSuccess(w, toCustomerResponse(created))
}

func (h *customerHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "customerID")
	if err != nil {
		writeError(w, err.Error())
		return
	}

	got, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeSuccess(w, toCustomerResponse(got))
}

func (h *customerHandler) list(w http.ResponseWriter, r *http.Request) {
	listQuery, err := parseListQuery(r)
	if err != nil {
		writeError(w, err.Error())
		return
	}

	customers, total, err := h.service.List(r.Context(), domain.CustomerListQuery{
		ListQuery: listQuery,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	items := make([]customerResponse, 0, len(customers))
	for _, c := range customers {
		items = append(items, toCustomerResponse(c))
	}

	writeSuccess(w, listResponse{
		Items: items,
		Total: total,
		Skip:  listQuery.Offset,
		Limit: listQuery.Limit,
	})
}

type customerUpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Document *string `json:"document"`
}

func (h *customerHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "customerID")
	if err != nil {
		writeError(w, err.Error())
		return
	}

	var req customerUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, customer.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Document: req.Document,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeSuccess(w, toCustomerResponse(updated))
}

func (h *customerHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "customerID")
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
