package models

// GatewayCallback is the notification body the mobile-money provider posts
// back after a charge settles. Field names follow the provider wire format.
type GatewayCallback struct {
	RequestTransactionID string `json:"requesttransactionid"`
	TransactionID        string `json:"transactionid"`
	ResponseCode         string `json:"responsecode"`
	Status               string `json:"status"`
}

// GatewayCallbackEnvelope wraps the callback the way the provider sends it.
type GatewayCallbackEnvelope struct {
	JSONPayload *GatewayCallback `json:"jsonpayload"`
}
