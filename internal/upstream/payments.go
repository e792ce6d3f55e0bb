package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"tike-storefront/internal/domain"
	"tike-storefront/internal/utils"
)

// Payment is the payment sub-object the backend and the mobile-money
// provider surface inside several envelope shapes.
type Payment struct {
	Status          string           `json:"status"`
	ResponseCode    string           `json:"responseCode"`
	CallbackPayload *CallbackPayload `json:"callbackPayload"`
}

// CallbackPayload carries the provider's most specific human message.
type CallbackPayload struct {
	Data struct {
		Message string `json:"message"`
	} `json:"data"`
}

// ItechpayResponse is the provider's synchronous enqueue answer.
type ItechpayResponse struct {
	Status int `json:"status"`
	Data   struct {
		Message string `json:"message"`
	} `json:"data"`
}

// MetaData is the backend's top-level error envelope.
type MetaData struct {
	StatusCode string `json:"statusCode"`
	Message    string `json:"message"`
}

// ProcessPayload is the happy-shape body of a payment initiation response.
type ProcessPayload struct {
	Payment          *Payment          `json:"payment"`
	ItechpayResponse *ItechpayResponse `json:"itechpayResponse"`
}

// ProcessResponse is a payment initiation response in any of its shapes.
// Exactly one of Payload/MetaData is normally set; both nil means the
// backend broke its own contract.
type ProcessResponse struct {
	Payload  *ProcessPayload `json:"payload"`
	MetaData *MetaData       `json:"metaData"`
}

// Message picks the most specific human-readable failure detail available,
// in the order the product surfaces them.
func (p *ProcessPayload) Message(fallback string) string {
	var callback, provider string
	if p.Payment != nil && p.Payment.CallbackPayload != nil {
		callback = p.Payment.CallbackPayload.Data.Message
	}
	if p.ItechpayResponse != nil {
		provider = p.ItechpayResponse.Data.Message
	}
	if msg := utils.FirstNonEmpty(callback, provider); msg != "" {
		return msg
	}
	return fallback
}

// StatusPayload unwraps the status endpoint's envelope. The backend is
// inconsistent about depth, so the payload may nest one extra level.
type StatusPayload struct {
	Payload  *StatusPayload `json:"payload"`
	MetaData *StatusMeta    `json:"metaData"`
}

type StatusMeta struct {
	Payment *Payment `json:"payment"`
}

// StatusResponse is one poll answer from the status endpoint.
type StatusResponse struct {
	Payload *StatusPayload `json:"payload"`
}

// Payment locates the payment object through either nesting depth.
// Returns nil when neither shape matches; the poller treats that as a
// non-terminal answer.
func (r *StatusResponse) Payment() *Payment {
	if r == nil || r.Payload == nil {
		return nil
	}
	if inner := r.Payload.Payload; inner != nil && inner.MetaData != nil && inner.MetaData.Payment != nil {
		return inner.MetaData.Payment
	}
	if r.Payload.MetaData != nil {
		return r.Payload.MetaData.Payment
	}
	return nil
}

type processRequest struct {
	Amount      int64  `json:"amount"`
	PhoneNumber string `json:"phoneNumber"`
}

// ProcessPayment initiates a mobile-money charge. The body is decoded no
// matter the HTTP status: the backend reports failures through the metaData
// envelope rather than status codes, and the caller interprets the shape.
func (c *Client) ProcessPayment(ctx context.Context, bookingID string, amount int64, phoneNumber string) (*ProcessResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "payments/process/"+url.PathEscape(bookingID), processRequest{
		Amount:      amount,
		PhoneNumber: phoneNumber,
	})
	if err != nil {
		return nil, domain.InternalError{Msg: "process payment", Err: err}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, domain.UnavailableError{Op: "process payment", Err: err}
	}
	defer resp.Body.Close()

	var out ProcessResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("process payment: %w: %v", ErrBadEnvelope, err)
	}
	return &out, nil
}

// PaymentStatus fetches one status snapshot for a booking's payment.
// Any transport or HTTP-level failure is reported as UnavailableError so
// the poller can retry it within its attempt budget.
func (c *Client) PaymentStatus(ctx context.Context, bookingID string) (*StatusResponse, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "payments/status/"+url.PathEscape(bookingID), nil)
	if err != nil {
		return nil, domain.InternalError{Msg: "payment status", Err: err}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, domain.UnavailableError{Op: "payment status", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.UnavailableError{Op: "payment status", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var out StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, domain.UnavailableError{Op: "payment status", Err: err}
	}
	return &out, nil
}
