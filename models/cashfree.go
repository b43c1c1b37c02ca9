package models

// CustomerDetails identifies the paying customer to the gateway.
type CustomerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	CustomerName  string `json:"customer_name"`
}

// CashfreeOrderRequest is the order-creation payload sent to Cashfree.
type CashfreeOrderRequest struct {
	CustomerDetails CustomerDetails `json:"customer_details"`
	OrderID         string          `json:"order_id"`
	OrderAmount     float64         `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency"`
}

// WebhookPayload is the callback body the gateway posts after a payment
// attempt settles.
type WebhookPayload struct {
	OrderID  string `json:"orderId"`
	TxStatus string `json:"txStatus"`
	TxMsg    string `json:"txMsg,omitempty"`
}
