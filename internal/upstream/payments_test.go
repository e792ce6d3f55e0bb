package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tike-storefront/internal/domain"
)

func TestStatusResponsePaymentUnwrap(t *testing.T) {
	shallow := []byte(`{"payload":{"metaData":{"payment":{"status":"PAID"}}}}`)
	deep := []byte(`{"payload":{"payload":{"metaData":{"payment":{"status":"FAILED","callbackPayload":{"data":{"message":"Insufficient funds"}}}}}}}`)
	empty := []byte(`{"payload":{}}`)

	var r StatusResponse
	if err := json.Unmarshal(shallow, &r); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	p := r.Payment()
	if p == nil || p.Status != "PAID" {
		t.Fatalf("shallow shape: got %+v", p)
	}

	r = StatusResponse{}
	if err := json.Unmarshal(deep, &r); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	p = r.Payment()
	if p == nil || p.Status != "FAILED" {
		t.Fatalf("deep shape: got %+v", p)
	}
	if p.CallbackPayload == nil || p.CallbackPayload.Data.Message != "Insufficient funds" {
		t.Fatalf("deep shape dropped callback payload: %+v", p.CallbackPayload)
	}

	r = StatusResponse{}
	if err := json.Unmarshal(empty, &r); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if p := r.Payment(); p != nil {
		t.Fatalf("empty payload: got %+v, want nil", p)
	}
}

func TestProcessPayloadMessagePriority(t *testing.T) {
	p := &ProcessPayload{
		Payment:          &Payment{CallbackPayload: &CallbackPayload{}},
		ItechpayResponse: &ItechpayResponse{},
	}
	p.Payment.CallbackPayload.Data.Message = "Transaction declined"
	p.ItechpayResponse.Data.Message = "Provider message"
	if got := p.Message("fallback"); got != "Transaction declined" {
		t.Fatalf("got %q, want callback message first", got)
	}

	p.Payment.CallbackPayload.Data.Message = ""
	if got := p.Message("fallback"); got != "Provider message" {
		t.Fatalf("got %q, want provider message second", got)
	}

	p.ItechpayResponse.Data.Message = ""
	if got := p.Message("fallback"); got != "fallback" {
		t.Fatalf("got %q, want fallback", got)
	}
}

func TestProcessPaymentDecodesErrorBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-1" {
			t.Errorf("authorization header: got %q", got)
		}
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"metaData":{"statusCode":"500","message":"enqueue rejected"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "token-1")
	resp, err := c.ProcessPayment(context.Background(), "bk_1", 4500, "0781234567")
	if err != nil {
		t.Fatalf("ProcessPayment error: %v", err)
	}
	if resp.MetaData == nil || resp.MetaData.StatusCode != "500" || resp.MetaData.Message != "enqueue rejected" {
		t.Fatalf("got %+v", resp.MetaData)
	}
}

func TestPaymentStatusTransportFailuresAreRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, "token-1")
	_, err := c.PaymentStatus(context.Background(), "bk_1")
	if !domain.IsUnavailable(err) {
		t.Fatalf("got %v, want unavailable", err)
	}
}
