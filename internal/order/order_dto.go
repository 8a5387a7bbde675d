package order

import "time"

// ==================== REQUEST STRUCTS ====================

type CheckoutItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int32  `json:"quantity" binding:"required,min=1,max=100"`
	// Price is what the client displayed. Only used to log drift; the
	// catalog price always wins.
	Price *int64 `json:"price"`
}

type CustomerRequest struct {
	FirstName string `json:"firstName" binding:"required,max=255"`
	LastName  string `json:"lastName" binding:"max=255"`
	Email     string `json:"email" binding:"required,email,max=255"`
	Phone     string `json:"phone" binding:"max=19"`
}

type CheckoutRequest struct {
	Items         []CheckoutItemRequest `json:"items" binding:"required,min=1,max=50,dive"`
	Customer      CustomerRequest       `json:"customer"`
	PromoCode     string                `json:"promoCode" binding:"max=32"`
	PaymentMethod string                `json:"paymentMethod" binding:"omitempty,oneof=credit_card gopay shopeepay qris bank_transfer bca_va bni_va bri_va permata_va other_va echannel indomaret alfamart"`
}

type ListQuery struct {
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=10" binding:"min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=ALL PENDING PAID FAILED EXPIRED REFUNDED"`
}

// MidtransNotificationRequest has no binding tags on purpose: the webhook
// always answers the processor, so shape errors are reported by the service.
type MidtransNotificationRequest struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	TransactionTime   string `json:"transaction_time"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
}

type OverrideStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PAID REFUNDED"`
	Note   string `json:"note" binding:"required,max=500"`
}

// ==================== RESPONSE STRUCTS ====================

type PaymentResponse struct {
	SnapToken   string `json:"snapToken"`
	RedirectURL string `json:"redirectUrl"`
}

type CheckoutResponse struct {
	Order   OrderResponse   `json:"order"`
	Payment PaymentResponse `json:"payment"`
}

type OrderResponse struct {
	ID                string              `json:"id"`
	OrderNumber       string              `json:"orderNumber"`
	Status            string              `json:"status"`
	Subtotal          int64               `json:"subtotal"`
	DiscountAmount    int64               `json:"discountAmount"`
	PromoCode         *string             `json:"promoCode,omitempty"`
	Total             int64               `json:"total"`
	PaymentMethod     *string             `json:"paymentMethod,omitempty"`
	PaymentType       *string             `json:"paymentType,omitempty"`
	FulfillmentStatus *string             `json:"fulfillmentStatus,omitempty"`
	ExpiresAt         time.Time           `json:"expiresAt"`
	PaidAt            *time.Time          `json:"paidAt,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	SnapToken         *string             `json:"snapToken,omitempty"`
	SnapRedirectUrl   *string             `json:"snapRedirectUrl,omitempty"`
	Items             []OrderItemResponse `json:"items,omitempty"`
}

type OrderItemResponse struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int32  `json:"quantity"`
	IsFree    bool   `json:"isFree"`
	Subtotal  int64  `json:"subtotal"` // unitPrice * quantity, 0 for free items
}

// OrderStatusResponse is the public lookup view. No customer data.
type OrderStatusResponse struct {
	OrderNumber string     `json:"orderNumber"`
	Status      string     `json:"status"`
	Total       int64      `json:"total"`
	ExpiresAt   time.Time  `json:"expiresAt"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
}

type OrderAdminResponse struct {
	OrderResponse
	UserID        string `json:"userId"`
	CustomerEmail string `json:"customerEmail"`
	TransactionID string `json:"transactionId,omitempty"`
	Note          string `json:"note,omitempty"`
}

// ==================== INTERNAL ====================

// TransitionResult reports what a reconciliation attempt did.
type TransitionResult struct {
	OrderNumber string
	From        string
	To          string
	Applied     bool
	Reason      string
}
