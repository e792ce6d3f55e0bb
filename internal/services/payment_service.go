package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"tike-storefront/internal/domain"
	"tike-storefront/internal/domain/models"
	"tike-storefront/internal/upstream"
	"tike-storefront/internal/utils"
)

// Status messages surfaced to the web client. Kept as the product copy the
// pages render verbatim.
const (
	MsgProcessing     = "Processing payment..."
	MsgBeingProcessed = "Payment is being processed"
	MsgPaymentFailed  = "Payment failed"
	MsgSuccess        = "Payment successful"
	MsgExpired        = "Payment time has expired. Please start a new booking."
	MsgPollTimeout    = "Payment processing timed out. Please try again."
	MsgVerifyFailed   = "Unable to verify payment status. Please contact support."
	MsgUnexpected     = "Unexpected payment response"
	MsgInvalidPhone   = "Please enter a valid phone number"
	MsgProcessFailed  = "Failed to process payment"
)

// PaymentsAPI is the slice of the upstream client the reconciler needs.
type PaymentsAPI interface {
	ProcessPayment(ctx context.Context, bookingID string, amount int64, phoneNumber string) (*upstream.ProcessResponse, error)
	PaymentStatus(ctx context.Context, bookingID string) (*upstream.StatusResponse, error)
}

// Attempt is the externally visible state of one payment session.
type Attempt struct {
	Status  domain.PaymentState `json:"status"`
	Message string              `json:"message"`
	Locked  bool                `json:"-"`
}

type attempt struct {
	status   domain.PaymentState
	message  string
	locked   bool
	polling  bool
	pollDone chan struct{}
}

// PaymentService drives the payment lifecycle for each booking: submit,
// initiation envelope interpretation, bounded status polling, and the
// timer-driven timeout. All transitions are compare-and-set under one lock;
// terminal states never regress, and results arriving after a lockout flag
// was observed are discarded.
type PaymentService struct {
	Payments PaymentsAPI
	Timer    *TimerService
	Clock    Clock

	PollAttempts int
	PollInterval time.Duration

	mu       sync.Mutex
	attempts map[string]*attempt
}

func NewPaymentService(payments PaymentsAPI, timer *TimerService, clock Clock, pollAttempts int, pollInterval time.Duration) *PaymentService {
	if pollAttempts <= 0 {
		pollAttempts = 50
	}
	if pollInterval <= 0 {
		pollInterval = 12 * time.Second
	}
	s := &PaymentService{
		Payments:     payments,
		Timer:        timer,
		Clock:        clock,
		PollAttempts: pollAttempts,
		PollInterval: pollInterval,
		attempts:     map[string]*attempt{},
	}
	if timer != nil {
		timer.OnExpire = s.MarkTimeout
	}
	return s
}

func (s *PaymentService) attemptLocked(bookingID string) *attempt {
	a, ok := s.attempts[bookingID]
	if !ok {
		a = &attempt{status: domain.PaymentIdle}
		s.attempts[bookingID] = a
	}
	return a
}

// Attempt reports the current state of a booking's payment session.
func (s *PaymentService) Attempt(bookingID string) Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.attemptLocked(bookingID)
	return Attempt{Status: a.status, Message: a.message, Locked: a.locked}
}

// MarkLocked records a server-side lockout flag (canceled booking or
// payment_status=FAILED). The timer is cleared immediately and any result
// still in flight will be discarded on arrival.
func (s *PaymentService) MarkLocked(ctx context.Context, bookingID string) {
	s.mu.Lock()
	s.attemptLocked(bookingID).locked = true
	s.mu.Unlock()
	if s.Timer != nil {
		_ = s.Timer.Clear(ctx, bookingID)
	}
}

// MarkTimeout applies timer expiry. It only overrides idle or pending:
// a payment that already succeeded or failed is never rewritten by a
// late-firing tick.
func (s *PaymentService) MarkTimeout(bookingID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.attemptLocked(bookingID)
	if a.locked {
		return
	}
	if a.status == domain.PaymentIdle || a.status == domain.PaymentPending {
		a.status = domain.PaymentTimeout
		a.message = MsgExpired
	}
}

// Submit runs the precondition checks and, when they pass, issues the
// payment initiation request and interprets the response envelope.
func (s *PaymentService) Submit(ctx context.Context, b models.Booking, phoneNumber string) (Attempt, error) {
	if b.Canceled || domain.ParseBackendStatus(b.PaymentStatus) == domain.BackendFailed {
		s.MarkLocked(ctx, b.ID)
		return s.Attempt(b.ID), domain.ConflictError{Resource: "booking", Msg: "payment is locked for this booking"}
	}

	phoneNumber = utils.NormalizePhone(phoneNumber)
	if phoneNumber == "" {
		s.setLocalFailure(b.ID, MsgInvalidPhone)
		return s.Attempt(b.ID), domain.ValidationError{Field: "phoneNumber", Msg: "phone number is required"}
	}

	remaining, err := s.Timer.Begin(ctx, b.ID)
	if err != nil {
		return s.Attempt(b.ID), domain.InternalError{Msg: "payment timer unavailable", Err: err}
	}
	if remaining <= 0 {
		return s.Attempt(b.ID), domain.ValidationError{Msg: MsgExpired}
	}

	if err := s.beginAttempt(b.ID); err != nil {
		return s.Attempt(b.ID), err
	}

	resp, err := s.Payments.ProcessPayment(ctx, b.ID, b.Price, phoneNumber)
	if err != nil {
		// Initiation is never retried automatically; the user resubmits.
		if errors.Is(err, upstream.ErrBadEnvelope) {
			s.applyFromPending(b.ID, domain.PaymentFailed, MsgUnexpected)
		} else {
			s.applyFromPending(b.ID, domain.PaymentFailed, MsgProcessFailed)
		}
		return s.Attempt(b.ID), nil
	}

	switch {
	case resp.Payload != nil && resp.Payload.Payment != nil:
		s.interpretInitiation(b.ID, resp.Payload)

	case resp.MetaData != nil && resp.MetaData.StatusCode == "500":
		// The backend declared the enqueue failed, but the charge may have
		// gone through downstream anyway; confirm with one status check.
		msg := utils.FirstNonEmpty(resp.MetaData.Message, MsgPaymentFailed)
		s.applyFromPending(b.ID, domain.PaymentFailed, msg)
		s.confirmOnce(b.ID)

	default:
		s.applyFromPending(b.ID, domain.PaymentFailed, MsgUnexpected)
	}

	return s.Attempt(b.ID), nil
}

func (s *PaymentService) interpretInitiation(bookingID string, p *upstream.ProcessPayload) {
	declaredFailed := domain.ParseBackendStatus(p.Payment.Status) == domain.BackendFailed ||
		p.Payment.ResponseCode == "400" ||
		(p.ItechpayResponse != nil && p.ItechpayResponse.Status == 400)

	if declaredFailed {
		s.applyFromPending(bookingID, domain.PaymentFailed, p.Message(MsgPaymentFailed))
		// Same defensive confirmation as the metaData branch; it can never
		// replace the specific failure message already recorded.
		s.confirmOnce(bookingID)
		return
	}

	msg := MsgBeingProcessed
	if p.ItechpayResponse != nil && utils.TrimOrEmpty(p.ItechpayResponse.Data.Message) != "" {
		msg = p.ItechpayResponse.Data.Message
	}
	s.applyFromPending(bookingID, domain.PaymentPending, msg)
	s.startPoll(bookingID)
}

// beginAttempt moves the session to pending when nothing forbids it.
// Pending guards against overlapping poll chains; success and timeout are
// final for the session; failed allows a manual resubmit.
func (s *PaymentService) beginAttempt(bookingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.attemptLocked(bookingID)
	if a.locked {
		return domain.ConflictError{Resource: "booking", Msg: "payment is locked for this booking"}
	}
	switch a.status {
	case domain.PaymentPending:
		return domain.ConflictError{Resource: "payment", Msg: "a payment is already in progress"}
	case domain.PaymentSuccess:
		return domain.ConflictError{Resource: "payment", Msg: "payment already completed"}
	case domain.PaymentTimeout:
		return domain.ValidationError{Msg: MsgExpired}
	}
	a.status = domain.PaymentPending
	a.message = MsgProcessing
	return nil
}

// setLocalFailure records a validation failure message without touching an
// in-flight or terminal session.
func (s *PaymentService) setLocalFailure(bookingID, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.attemptLocked(bookingID)
	if a.locked {
		return
	}
	if a.status == domain.PaymentIdle || a.status == domain.PaymentFailed {
		a.status = domain.PaymentFailed
		a.message = msg
	}
}

// applyFromPending is the compare-and-set every asynchronous result goes
// through: it only lands while the session is still pending and not locked
// out, so stale poll responses and late ticks can never rewrite a terminal
// state.
func (s *PaymentService) applyFromPending(bookingID string, to domain.PaymentState, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.attemptLocked(bookingID)
	if a.locked {
		return false
	}
	if a.status != domain.PaymentPending {
		return false
	}
	a.status = to
	a.message = msg
	return true
}

// startPoll launches the bounded polling chain. Only one chain may run per
// booking; the pending status already blocks a second submit, and this
// guard blocks a duplicate chain from the same submit being retried.
func (s *PaymentService) startPoll(bookingID string) {
	s.mu.Lock()
	a := s.attemptLocked(bookingID)
	if a.polling {
		s.mu.Unlock()
		return
	}
	a.polling = true
	done := make(chan struct{})
	a.pollDone = done
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			a.polling = false
			s.mu.Unlock()
			close(done)
		}()
		s.poll(context.Background(), bookingID, s.PollAttempts, s.PollInterval)
	}()
}

// poll requests the payment status up to maxAttempts times, interval apart.
// Transport errors are retryable and consume the same budget as
// non-terminal answers; the final attempt's nature picks the user-facing
// failure message.
func (s *PaymentService) poll(ctx context.Context, bookingID string, maxAttempts int, interval time.Duration) {
	for att := 1; att <= maxAttempts; att++ {
		resp, err := s.Payments.PaymentStatus(ctx, bookingID)
		if err == nil {
			if p := resp.Payment(); p != nil {
				switch domain.ParseBackendStatus(p.Status) {
				case domain.BackendFailed:
					s.applyFromPending(bookingID, domain.PaymentFailed, failureMessage(p))
					return
				case domain.BackendPaid:
					if s.applyFromPending(bookingID, domain.PaymentSuccess, MsgSuccess) {
						// Success is the only poll outcome that releases the
						// persisted timer record.
						_ = s.Timer.Clear(ctx, bookingID)
					}
					return
				}
			}
		}

		if att == maxAttempts {
			if err != nil {
				s.applyFromPending(bookingID, domain.PaymentFailed, MsgVerifyFailed)
			} else {
				s.applyFromPending(bookingID, domain.PaymentFailed, MsgPollTimeout)
			}
			return
		}

		if !s.Clock.Sleep(ctx, interval) {
			return
		}

		// The session may have timed out or been locked while sleeping;
		// the chain has nothing left to deliver then.
		s.mu.Lock()
		a := s.attemptLocked(bookingID)
		stop := a.locked || a.status != domain.PaymentPending
		s.mu.Unlock()
		if stop {
			return
		}
	}
}

// confirmOnce issues a single status check after a declared initiation
// failure. Its result goes through the same compare-and-set, so it cannot
// replace the failure message already shown.
func (s *PaymentService) confirmOnce(bookingID string) {
	s.mu.Lock()
	a := s.attemptLocked(bookingID)
	if a.polling {
		s.mu.Unlock()
		return
	}
	a.polling = true
	done := make(chan struct{})
	a.pollDone = done
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			a.polling = false
			s.mu.Unlock()
			close(done)
		}()
		resp, err := s.Payments.PaymentStatus(context.Background(), bookingID)
		if err != nil {
			return
		}
		if p := resp.Payment(); p != nil {
			switch domain.ParseBackendStatus(p.Status) {
			case domain.BackendFailed:
				s.applyFromPending(bookingID, domain.PaymentFailed, failureMessage(p))
			case domain.BackendPaid:
				if s.applyFromPending(bookingID, domain.PaymentSuccess, MsgSuccess) {
					_ = s.Timer.Clear(context.Background(), bookingID)
				}
			}
		}
	}()
}

func failureMessage(p *upstream.Payment) string {
	if p.CallbackPayload != nil && utils.TrimOrEmpty(p.CallbackPayload.Data.Message) != "" {
		return p.CallbackPayload.Data.Message
	}
	return MsgPaymentFailed
}

// waitPoll blocks until the booking's current poll chain finishes. Test
// hook; nil-safe when no chain ever ran.
func (s *PaymentService) waitPoll(bookingID string) {
	s.mu.Lock()
	a := s.attemptLocked(bookingID)
	done := a.pollDone
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}
