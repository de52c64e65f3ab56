package presentation

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/quickcommerce/order-payment-service/internal/application"
	"github.com/quickcommerce/order-payment-service/internal/domain"
	"github.com/quickcommerce/order-payment-service/internal/presentation/helpers"
)

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.HttpError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrValidation):
		helpers.HttpError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		helpers.HttpError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrConflict):
		helpers.HttpError(w, http.StatusConflict, "concurrent modification, retry")
	default:
		helpers.HttpError(w, http.StatusInternalServerError, "internal error")
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

type OrdersHandler struct {
	svc *application.OrdersService
}

func NewOrdersHandler(svc *application.OrdersService) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/{id}", h.GetOrder)
		r.Get("/number/{orderNumber}", h.GetOrderByNumber)
		r.Get("/customer/{customerId}", h.GetCustomerOrders)
		r.Get("/status/{status}", h.GetOrdersByStatus)
		r.Patch("/{id}/status", h.UpdateOrderStatus)
		r.Delete("/{id}/cancel", h.CancelOrder)
	})
}

type createOrderRequest struct {
	CustomerID      string          `json:"customerId"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress string          `json:"shippingAddress"`
	BillingAddress  string          `json:"billingAddress"`
	// Accepted on the wire but ignored: creation always starts at PENDING.
	Status string `json:"status,omitempty"`
}

func (h *OrdersHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	o, err := h.svc.CreateOrder(r.Context(), req.CustomerID, req.TotalAmount, req.ShippingAddress, req.BillingAddress)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, o)
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid id")
		return
	}
	o, err := h.svc.GetOrder(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) GetOrderByNumber(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.GetOrderByNumber(r.Context(), chi.URLParam(r, "orderNumber"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) GetCustomerOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListCustomerOrders(r.Context(), chi.URLParam(r, "customerId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) GetOrdersByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := domain.ParseOrderStatus(chi.URLParam(r, "status"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	orders, err := h.svc.ListOrdersByStatus(r.Context(), status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid id")
		return
	}
	status, err := domain.ParseOrderStatus(r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	o, err := h.svc.UpdateOrderStatus(r.Context(), id, status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid id")
		return
	}
	o, err := h.svc.CancelOrder(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, o)
}

type PaymentsHandler struct {
	svc *application.PaymentsService
}

func NewPaymentsHandler(svc *application.PaymentsService) *PaymentsHandler {
	return &PaymentsHandler{svc: svc}
}

func (h *PaymentsHandler) Register(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Post("/", h.InitiatePayment)
		r.Get("/{id}", h.GetPayment)
		r.Get("/transaction/{transactionId}", h.GetPaymentByTransactionID)
		r.Get("/order/{orderId}", h.GetOrderPayments)
		r.Post("/{id}/process", h.ProcessPayment)
		r.Post("/{id}/complete", h.CompletePayment)
		r.Post("/{id}/fail", h.FailPayment)
		r.Post("/{id}/refund", h.RefundPayment)
		r.Post("/{id}/cancel", h.CancelPayment)
	})
}

type initiatePaymentRequest struct {
	OrderID       int64           `json:"orderId"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	// Accepted on the wire but ignored: creation always starts at INITIATED.
	Status string `json:"status,omitempty"`
}

func (h *PaymentsHandler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	var req initiatePaymentRequest
	if err := helpers.DecodeJSON(r.Body, &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	p, err := h.svc.InitiatePayment(r.Context(), req.OrderID, req.Amount, method)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, p)
}

func (h *PaymentsHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid id")
		return
	}
	p, err := h.svc.GetPayment(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, p)
}

func (h *PaymentsHandler) GetPaymentByTransactionID(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetPaymentByTransactionID(r.Context(), chi.URLParam(r, "transactionId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, p)
}

func (h *PaymentsHandler) GetOrderPayments(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "orderId")
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid orderId")
		return
	}
	payments, err := h.svc.ListOrderPayments(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, payments)
}

func (h *PaymentsHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.ProcessPayment)
}

func (h *PaymentsHandler) CompletePayment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.CompletePayment)
}

func (h *PaymentsHandler) FailPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid id")
		return
	}
	msg := strings.TrimSpace(r.URL.Query().Get("errorMessage"))
	if msg == "" {
		helpers.HttpError(w, http.StatusBadRequest, "errorMessage is required")
		return
	}
	p, err := h.svc.FailPayment(r.Context(), id, msg)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, p)
}

func (h *PaymentsHandler) RefundPayment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.RefundPayment)
}

func (h *PaymentsHandler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.CancelPayment)
}

func (h *PaymentsHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id int64) (*domain.Payment, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid id")
		return
	}
	p, err := op(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, p)
}
