package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentInProgress PaymentStatus = "in_progress"
	PaymentPaid       PaymentStatus = "paid"
	PaymentExpired    PaymentStatus = "expired"
	PaymentCancelled  PaymentStatus = "cancelled"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentInProgress, PaymentPaid, PaymentExpired, PaymentCancelled:
		return true
	}
	return false
}

// PackageDetails is the feature snapshot copied from the selected
// product package at order creation.
type PackageDetails struct {
	Undangan string `json:"undangan"`
	Foto     string `json:"foto"`
	Video    string `json:"video"`
	Share    string `json:"share"`
}

type Order struct {
	ID             string         `json:"id"`
	InvoiceNumber  string         `json:"invoice_number"`
	ProductID      string         `json:"product_id"`
	ProductName    string         `json:"product_name"`
	PackageName    string         `json:"package_name"`
	PackagePrice   int64          `json:"package_price"`
	CustomerName   string         `json:"customer_name"`
	CustomerEmail  string         `json:"customer_email"`
	CustomerPhone  string         `json:"customer_phone"`
	PackageDetails PackageDetails `json:"package_details"`

	Subtotal       int64   `json:"subtotal"`
	DiscountCode   *string `json:"discount_code,omitempty"`
	DiscountAmount int64   `json:"discount_amount"`
	Tax            int64   `json:"tax"`
	Total          int64   `json:"total"`

	PaymentMethod   string        `json:"payment_method"`
	PaymentBank     string        `json:"payment_bank,omitempty"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	PaymentProofURL *string       `json:"payment_proof_url,omitempty"`
	PaymentDeadline time.Time     `json:"payment_deadline"`
	PaidAt          *time.Time    `json:"paid_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveStatus reports the status with lazy expiry applied: a pending
// order past its deadline is expired even if no sweep has persisted it yet.
func (o *Order) EffectiveStatus(now time.Time) PaymentStatus {
	if o.PaymentStatus == PaymentPending && now.After(o.PaymentDeadline) {
		return PaymentExpired
	}
	return o.PaymentStatus
}

type CreateOrderRequest struct {
	ProductID     string `json:"product_id"`
	PackageIndex  int    `json:"package_index"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	BankAccountID string `json:"bank_account_id"`
	DiscountCode  string `json:"discount_code,omitempty"`
}

type OrderStats struct {
	Total      int   `json:"total"`
	Pending    int   `json:"pending"`
	InProgress int   `json:"in_progress"`
	Paid       int   `json:"paid"`
	Revenue    int64 `json:"revenue"`
	ThisWeek   int   `json:"this_week"`
	ThisMonth  int   `json:"this_month"`
}

// RevenueChart holds paid revenue per day for the trailing week,
// oldest day first.
type RevenueChart struct {
	Categories []string `json:"categories"`
	Series     []int64  `json:"series"`
}
