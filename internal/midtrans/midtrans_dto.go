package midtrans

import "time"

type CreateTransactionRequest struct {
	OrderID       string           `json:"orderId"`
	GrossAmount   int64            `json:"grossAmount"`
	Customer      *CustomerDetails `json:"customer"`
	Items         []ItemDetail     `json:"items"`
	Discount      int64            `json:"discount"`
	PromoCode     string           `json:"promoCode,omitempty"`
	PaymentMethod string           `json:"paymentMethod,omitempty"`
	ExpiresAt     time.Time        `json:"expiresAt"`
}

type CustomerDetails struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type ItemDetail struct {
	ID    string `json:"id"`
	Price int64  `json:"price"`
	Qty   int32  `json:"qty"`
	Name  string `json:"name"`
}

type CreateTransactionResponse struct {
	Token       string `json:"snapToken"`
	RedirectURL string `json:"redirectUrl"`
}

// TransactionStatus is the subset of the status API the reconciler reads.
type TransactionStatus struct {
	OrderID           string
	TransactionID     string
	TransactionStatus string
	FraudStatus       string
	PaymentType       string
	StatusCode        string
	GrossAmount       string
}
