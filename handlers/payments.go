package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"

	"github.com/ad1tya-dev/BiteMe/models"
	"github.com/ad1tya-dev/BiteMe/services"
)

type PaymentRequest struct {
	OrderID     int    `json:"order_id"`
	Currency    string `json:"currency"`
	SourceToken string `json:"source_token"`
}

type PaymentResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ProcessPaymentHandler charges the order total through Stripe and flips the
// order from pending to paid.
func (api *API) ProcessPaymentHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := tracer.Start(r.Context(), "ProcessPaymentHandler")
	defer span.End()

	if api.StripeKey == "" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "Payments are not configured"})
		observe("payment", http.StatusServiceUnavailable, start)
		return
	}

	var paymentReq PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&paymentReq); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		observe("payment", http.StatusBadRequest, start)
		return
	}

	order, err := api.Orders.Get(ctx, paymentReq.OrderID)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, services.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Order not found"})
		} else {
			writeError(w, err)
		}
		observe("payment", statusFor(err), start)
		return
	}
	if order.Status != models.OrderStatusPending {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Order already paid"})
		observe("payment", http.StatusConflict, start)
		return
	}

	stripe.Key = api.StripeKey

	chargeParams := &stripe.ChargeParams{
		Amount:   stripe.Int64(int64(order.Total * 100)), // Convert to cents
		Currency: stripe.String(paymentReq.Currency),
		Source:   &stripe.SourceParams{Token: stripe.String(paymentReq.SourceToken)},
	}
	chargeParams.AddMetadata("order_id", strconv.Itoa(order.ID))
	if _, err := charge.New(chargeParams); err != nil {
		span.RecordError(err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to process payment"})
		observe("payment", http.StatusInternalServerError, start)
		return
	}

	if _, err := api.Orders.MarkPaid(ctx, order.ID); err != nil {
		span.RecordError(err)
		writeError(w, err)
		observe("payment", statusFor(err), start)
		return
	}

	writeJSON(w, http.StatusOK, PaymentResponse{
		Status:  "success",
		Message: "Payment processed successfully",
	})
	observe("payment", http.StatusOK, start)
}
