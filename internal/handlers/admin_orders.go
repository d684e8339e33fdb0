package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/naiaprojects/linkwedding/models"
	"go.uber.org/zap"
)

type updateStatusRequest struct {
	Status models.PaymentStatus `json:"status"`
}

type bulkStatusRequest struct {
	OrderIDs []string             `json:"order_ids"`
	Status   models.PaymentStatus `json:"status"`
}

type bulkDeleteRequest struct {
	OrderIDs []string `json:"order_ids"`
}

type updateOrderRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

func (h *Handler) AdminOrdersList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Database.GetOrdersList()
	if err != nil {
		h.Logger.Error("error fetching orders", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if orders == nil {
		orders = []*models.Order{}
	}

	h.writeJSON(w, http.StatusOK, orders)
}

// computeStats aggregates over the already loaded order list, the same
// single pass the dashboard does after every mutation.
func computeStats(orders []*models.Order, now time.Time) models.OrderStats {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfWeek := startOfDay.AddDate(0, 0, -int(now.Weekday()))
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := models.OrderStats{Total: len(orders)}
	for _, order := range orders {
		switch order.PaymentStatus {
		case models.PaymentPending:
			stats.Pending++
		case models.PaymentInProgress:
			stats.InProgress++
		case models.PaymentPaid:
			stats.Paid++
			stats.Revenue += order.Total
		}
		if !order.CreatedAt.Before(startOfWeek) {
			stats.ThisWeek++
		}
		if !order.CreatedAt.Before(startOfMonth) {
			stats.ThisMonth++
		}
	}

	return stats
}

// computeChart builds paid revenue per day for the trailing 7 days,
// oldest day first.
func computeChart(orders []*models.Order, now time.Time) models.RevenueChart {
	chart := models.RevenueChart{
		Categories: make([]string, 7),
		Series:     make([]int64, 7),
	}

	days := make(map[string]int, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		label := day.Format("02 Jan")
		idx := 6 - i
		chart.Categories[idx] = label
		days[label] = idx
	}

	for _, order := range orders {
		if order.PaymentStatus != models.PaymentPaid {
			continue
		}
		label := order.CreatedAt.Format("02 Jan")
		if idx, ok := days[label]; ok {
			chart.Series[idx] += order.Total
		}
	}

	return chart
}

func (h *Handler) AdminOrdersStats(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Database.GetOrdersList()
	if err != nil {
		h.Logger.Error("error fetching orders", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, computeStats(orders, time.Now().UTC()))
}

func (h *Handler) AdminOrdersChart(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Database.GetOrdersList()
	if err != nil {
		h.Logger.Error("error fetching orders", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, computeChart(orders, time.Now().UTC()))
}

// AdminUpdateOrderStatus is the quick-action endpoint: any target status is
// permitted, and paid_at is overwritten whenever the target is paid.
func (h *Handler) AdminUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("error decoding status request", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if !req.Status.IsValid() {
		http.Error(w, "invalid payment status", http.StatusBadRequest)
		return
	}

	if err := h.Database.UpdateOrderStatus(orderID, req.Status); err != nil {
		h.Logger.Error("error updating order status", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) AdminUpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("error decoding order update", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.CustomerName == "" || req.CustomerEmail == "" || req.CustomerPhone == "" {
		http.Error(w, "customer name, email and phone are required", http.StatusBadRequest)
		return
	}

	if err := h.Database.UpdateOrderCustomer(orderID, req.CustomerName, req.CustomerEmail, req.CustomerPhone); err != nil {
		h.Logger.Error("error updating order", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) AdminDeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	if err := h.Database.DeleteOrder(orderID); err != nil {
		h.Logger.Error("error deleting order", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) AdminBulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req bulkStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("error decoding bulk status request", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.OrderIDs) == 0 {
		http.Error(w, "no orders selected", http.StatusBadRequest)
		return
	}
	if !req.Status.IsValid() {
		http.Error(w, "invalid payment status", http.StatusBadRequest)
		return
	}

	if err := h.Database.UpdateOrdersStatusBulk(req.OrderIDs, req.Status); err != nil {
		h.Logger.Error("error updating orders", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) AdminBulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("error decoding bulk delete request", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.OrderIDs) == 0 {
		http.Error(w, "no orders selected", http.StatusBadRequest)
		return
	}

	if err := h.Database.DeleteOrdersBulk(req.OrderIDs); err != nil {
		h.Logger.Error("error deleting orders", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
