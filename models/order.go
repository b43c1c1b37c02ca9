package models

import "time"

type Order struct {
	ID               string    `json:"id" bson:"id"`
	UserID           string    `json:"userId" bson:"userId"`
	CartID           string    `json:"cartId" bson:"cartId"`
	Status           string    `json:"status" bson:"status"`
	TotalAmount      float64   `json:"totalAmount" bson:"totalAmount"`
	PaymentReference string    `json:"paymentReference,omitempty" bson:"paymentReference,omitempty"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}
