package services

import (
	"tike-storefront/internal/domain"
	"tike-storefront/internal/domain/models"
	"tike-storefront/internal/utils"
)

// OutcomeCode is the single user-visible verdict for a payment page.
type OutcomeCode string

const (
	OutcomeCanceled      OutcomeCode = "canceled"
	OutcomeBookingFailed OutcomeCode = "booking_failed"
	OutcomeSuccess       OutcomeCode = "success"
	OutcomeFailed        OutcomeCode = "failed"
	OutcomeTimeout       OutcomeCode = "timeout"
	OutcomePending       OutcomeCode = "pending"
	OutcomeIdle          OutcomeCode = "idle"
)

const (
	msgBookingCanceled      = "This booking has been canceled"
	msgBookingPaymentFailed = "This booking payment has failed"
)

// Outcome merges the booking's server-side flags with the local attempt
// state into one unambiguous presentation, plus the derived controls the
// page needs (countdown, whether the pay button is live, whether a receipt
// can be produced).
type Outcome struct {
	Code         OutcomeCode `json:"code"`
	Message      string      `json:"message"`
	TimeLeft     int         `json:"timeLeft"`
	Countdown    string      `json:"countdown"`
	CanPay       bool        `json:"canPay"`
	ReceiptReady bool        `json:"receiptReady"`
}

// ResolveOutcome applies the fixed precedence: canceled flag, then the
// booking-level FAILED flag, then local success, failed, timeout, pending,
// idle. The two flags win even while a poll response is in flight.
func ResolveOutcome(b models.Booking, a Attempt, timeLeft int) Outcome {
	out := Outcome{TimeLeft: timeLeft, Countdown: utils.FormatCountdown(timeLeft)}

	switch {
	case b.Canceled:
		out.Code = OutcomeCanceled
		out.Message = msgBookingCanceled
	case domain.ParseBackendStatus(b.PaymentStatus) == domain.BackendFailed:
		out.Code = OutcomeBookingFailed
		out.Message = msgBookingPaymentFailed
	case a.Status == domain.PaymentSuccess:
		out.Code = OutcomeSuccess
		out.Message = a.Message
	case a.Status == domain.PaymentFailed:
		out.Code = OutcomeFailed
		out.Message = a.Message
	case a.Status == domain.PaymentTimeout:
		out.Code = OutcomeTimeout
		out.Message = a.Message
	case a.Status == domain.PaymentPending:
		out.Code = OutcomePending
		out.Message = a.Message
	default:
		out.Code = OutcomeIdle
		out.Message = a.Message
	}

	out.CanPay = out.Code == OutcomeIdle || out.Code == OutcomeFailed
	if timeLeft <= 0 {
		out.CanPay = false
	}
	out.ReceiptReady = out.Code == OutcomeSuccess
	return out
}
