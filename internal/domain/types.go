package domain

import "strings"

// PaymentState is the local lifecycle of one payment attempt.
type PaymentState string

const (
	PaymentIdle    PaymentState = "idle"
	PaymentPending PaymentState = "pending"
	PaymentSuccess PaymentState = "success"
	PaymentFailed  PaymentState = "failed"
	PaymentTimeout PaymentState = "timeout"
)

// Terminal reports whether the state can no longer change within a session.
func (s PaymentState) Terminal() bool {
	switch s {
	case PaymentSuccess, PaymentFailed, PaymentTimeout:
		return true
	default:
		return false
	}
}

// BackendStatus is the closed form of the status strings the backend emits.
// Anything we do not recognize maps to BackendOther so new backend values
// never get mistaken for a terminal state.
type BackendStatus string

const (
	BackendPaid    BackendStatus = "PAID"
	BackendFailed  BackendStatus = "FAILED"
	BackendPending BackendStatus = "PENDING"
	BackendOther   BackendStatus = "OTHER"
)

// ParseBackendStatus normalizes a raw backend status string.
func ParseBackendStatus(raw string) BackendStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PAID":
		return BackendPaid
	case "FAILED":
		return BackendFailed
	case "PENDING":
		return BackendPending
	default:
		return BackendOther
	}
}
