package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/soukhub/marketplace/internal/core/port"
	"github.com/soukhub/marketplace/pkg/schema"
)

// POST v1/orders JSON aggregate payload (201 Created, 400, 409)
// PATCH v1/orders/{id} JSON partial payload (200 OK, 400, 404, 409)
// GET v1/orders/{id} from the orders group table (200 OK, 204 No content)

type OrdersHandler struct {
	writer port.OrderWriter
}

func RegisterOrders(mux *http.ServeMux, writer port.OrderWriter) {
	h := OrdersHandler{writer}
	mux.HandleFunc("POST /v1/orders", h.PostOrder)
	mux.HandleFunc("PATCH /v1/orders/{id}", h.PatchOrder)
}

func (h OrdersHandler) PostOrder(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.PostOrder"
	log := slog.With("op", op)

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	fields, items := req.toDomain()
	order, err := h.writer.CreateOrder(r.Context(), fields, items)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusCreated, toOrderResponse(order))
	log.Info("order created", "orderID", order.ID)
}

func (h OrdersHandler) PatchOrder(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.PatchOrder"
	log := slog.With("op", op)

	orderID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req PatchOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	patch, items := req.toDomain()
	order, err := h.writer.UpdateOrder(r.Context(), orderID, patch, items)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, toOrderResponse(order))
	log.Info("order updated", "orderID", order.ID)
}

// An OrderGetter serves the eventually consistent read path backed by
// the orders group table.
type OrderGetter interface {
	GetOrder(orderID int64) (schema.OrderSavedV1, bool, error)
}

type OrdersViewHandler struct {
	getter OrderGetter
}

func RegisterOrdersView(mux *http.ServeMux, getter OrderGetter) {
	h := OrdersViewHandler{getter}
	mux.HandleFunc("GET /v1/orders/{id}", h.GetOrder)
}

func (h OrdersViewHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersViewHandler.GetOrder"
	log := slog.With("op", op)

	orderID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	order, ok, err := h.getter.GetOrder(orderID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		log.Error("failed to read orders view", "err", err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, log, http.StatusOK, order)
}
