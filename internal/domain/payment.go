package domain

import (
	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCash         = "cash"
	PaymentMethodCheck        = "check"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodMoneyOrder   = "money_order"
	PaymentMethodOther        = "other"
)

const (
	PaymentTypeRent            = "rent"
	PaymentTypeSecurityDeposit = "security_deposit"
	PaymentTypeLateFee         = "late_fee"
	PaymentTypeUtility         = "utility"
	PaymentTypeMaintenance     = "maintenance"
	PaymentTypeOther           = "other"
)

// Payment is money received from a tenant against a lease
type Payment struct {
	PaymentID       int64           `json:"payment_id" db:"payment_id"`
	LeaseID         int64           `json:"lease_id" db:"lease_id"`
	TenantID        int64           `json:"tenant_id" db:"tenant_id"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	PaymentDate     Date            `json:"payment_date" db:"payment_date"`
	PaymentMethod   string          `json:"payment_method" db:"payment_method"`
	PaymentType     string          `json:"payment_type" db:"payment_type"`
	Memo            *string         `json:"memo,omitempty" db:"memo"`
	ReferenceNumber *string         `json:"reference_number,omitempty" db:"reference_number"`
	ReceiptImageURL *string         `json:"receipt_image_url,omitempty" db:"receipt_image_url"`
}

func (p *Payment) IsRent() bool {
	return p.PaymentType == PaymentTypeRent
}

type PaymentRequest struct {
	LeaseID         int64           `json:"lease_id" validate:"required,gt=0"`
	TenantID        int64           `json:"tenant_id" validate:"required,gt=0"`
	Amount          decimal.Decimal `json:"amount" validate:"decimal_gt=0"`
	PaymentDate     Date            `json:"payment_date" validate:"required"`
	PaymentMethod   string          `json:"payment_method" validate:"required,oneof=cash check bank_transfer credit_card money_order other"`
	PaymentType     string          `json:"payment_type" validate:"omitempty,oneof=rent security_deposit late_fee utility maintenance other"`
	Memo            *string         `json:"memo,omitempty"`
	ReferenceNumber *string         `json:"reference_number,omitempty"`
	ReceiptImageURL *string         `json:"receipt_image_url,omitempty" validate:"omitempty,url"`
}

func (r *PaymentRequest) ToPayment() *Payment {
	paymentType := r.PaymentType
	if paymentType == "" {
		paymentType = PaymentTypeRent
	}
	return &Payment{
		LeaseID:         r.LeaseID,
		TenantID:        r.TenantID,
		Amount:          r.Amount,
		PaymentDate:     r.PaymentDate,
		PaymentMethod:   r.PaymentMethod,
		PaymentType:     paymentType,
		Memo:            r.Memo,
		ReferenceNumber: r.ReferenceNumber,
		ReceiptImageURL: r.ReceiptImageURL,
	}
}
