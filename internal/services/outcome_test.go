package services

import (
	"testing"

	"tike-storefront/internal/domain"
	"tike-storefront/internal/domain/models"
)

func TestResolveOutcomePrecedence(t *testing.T) {
	cases := []struct {
		name        string
		booking     models.Booking
		attempt     Attempt
		timeLeft    int
		wantCode    OutcomeCode
		wantMessage string
		wantCanPay  bool
		wantReceipt bool
	}{
		{
			name:        "canceled flag beats local success",
			booking:     models.Booking{Canceled: true},
			attempt:     Attempt{Status: domain.PaymentSuccess, Message: MsgSuccess},
			timeLeft:    30,
			wantCode:    OutcomeCanceled,
			wantMessage: msgBookingCanceled,
		},
		{
			name:        "booking failed flag beats local success",
			booking:     models.Booking{PaymentStatus: "FAILED"},
			attempt:     Attempt{Status: domain.PaymentSuccess, Message: MsgSuccess},
			timeLeft:    30,
			wantCode:    OutcomeBookingFailed,
			wantMessage: msgBookingPaymentFailed,
		},
		{
			name:        "success",
			booking:     models.Booking{PaymentStatus: "PAID"},
			attempt:     Attempt{Status: domain.PaymentSuccess, Message: MsgSuccess},
			timeLeft:    0,
			wantCode:    OutcomeSuccess,
			wantMessage: MsgSuccess,
			wantReceipt: true,
		},
		{
			name:        "failed allows retry while time remains",
			booking:     models.Booking{PaymentStatus: "PENDING"},
			attempt:     Attempt{Status: domain.PaymentFailed, Message: "Insufficient funds"},
			timeLeft:    25,
			wantCode:    OutcomeFailed,
			wantMessage: "Insufficient funds",
			wantCanPay:  true,
		},
		{
			name:        "failed with no time left",
			booking:     models.Booking{PaymentStatus: "PENDING"},
			attempt:     Attempt{Status: domain.PaymentFailed, Message: MsgPaymentFailed},
			timeLeft:    0,
			wantCode:    OutcomeFailed,
			wantMessage: MsgPaymentFailed,
		},
		{
			name:        "timeout",
			booking:     models.Booking{PaymentStatus: "PENDING"},
			attempt:     Attempt{Status: domain.PaymentTimeout, Message: MsgExpired},
			timeLeft:    0,
			wantCode:    OutcomeTimeout,
			wantMessage: MsgExpired,
		},
		{
			name:        "pending blocks the pay button",
			booking:     models.Booking{PaymentStatus: "PENDING"},
			attempt:     Attempt{Status: domain.PaymentPending, Message: MsgBeingProcessed},
			timeLeft:    40,
			wantCode:    OutcomePending,
			wantMessage: MsgBeingProcessed,
		},
		{
			name:       "idle with time remaining",
			booking:    models.Booking{PaymentStatus: "PENDING"},
			attempt:    Attempt{Status: domain.PaymentIdle},
			timeLeft:   60,
			wantCode:   OutcomeIdle,
			wantCanPay: true,
		},
	}

	for _, tc := range cases {
		out := ResolveOutcome(tc.booking, tc.attempt, tc.timeLeft)
		if out.Code != tc.wantCode {
			t.Fatalf("%s: code=%s, want %s", tc.name, out.Code, tc.wantCode)
		}
		if out.Message != tc.wantMessage {
			t.Fatalf("%s: message=%q, want %q", tc.name, out.Message, tc.wantMessage)
		}
		if out.CanPay != tc.wantCanPay {
			t.Fatalf("%s: canPay=%v, want %v", tc.name, out.CanPay, tc.wantCanPay)
		}
		if out.ReceiptReady != tc.wantReceipt {
			t.Fatalf("%s: receiptReady=%v, want %v", tc.name, out.ReceiptReady, tc.wantReceipt)
		}
	}
}

func TestResolveOutcomeCountdown(t *testing.T) {
	out := ResolveOutcome(models.Booking{}, Attempt{Status: domain.PaymentIdle}, 65)
	if out.TimeLeft != 65 || out.Countdown != "1:05" {
		t.Fatalf("got timeLeft=%d countdown=%q", out.TimeLeft, out.Countdown)
	}
	out = ResolveOutcome(models.Booking{}, Attempt{Status: domain.PaymentIdle}, 0)
	if out.Countdown != "0:00" || out.CanPay {
		t.Fatalf("expired countdown: got countdown=%q canPay=%v", out.Countdown, out.CanPay)
	}
}
