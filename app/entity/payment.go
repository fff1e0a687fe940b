package entity

import (
	"errors"
	"strings"
	"time"
)

var ErrUnknownPaymentType = errors.New("unknown payment type")

type PaymentType string

const (
	PaymentTypeSingle       PaymentType = "SINGLE"
	PaymentTypeInstallment  PaymentType = "INSTALLMENT"
	PaymentTypeSubscription PaymentType = "SUBSCRIPTION"
)

// The backend spells a single payment SINGLE_PAYMENT on the wire.
const singlePaymentWireName = "SINGLE_PAYMENT"

// ParsePaymentType accepts both the short and the wire spelling, case-insensitively.
func ParsePaymentType(raw string) (PaymentType, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(PaymentTypeSingle), singlePaymentWireName:
		return PaymentTypeSingle, nil
	case string(PaymentTypeInstallment):
		return PaymentTypeInstallment, nil
	case string(PaymentTypeSubscription):
		return PaymentTypeSubscription, nil
	default:
		return "", ErrUnknownPaymentType
	}
}

func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeSingle, PaymentTypeInstallment, PaymentTypeSubscription:
		return true
	default:
		return false
	}
}

// WireName is the spelling the payment backend expects in requests.
func (t PaymentType) WireName() string {
	if t == PaymentTypeSingle {
		return singlePaymentWireName
	}
	return string(t)
}

type VirtualAccount struct {
	Number      string
	BankName    string
	AccountName string
	ExpiryDate  string
}

// PaymentRecord is a read-only snapshot of a backend payment. Pointer fields
// are optional: nil means the backend did not send the field.
type PaymentRecord struct {
	ID          string
	Description string
	Category    string

	Amount          int64
	DownPayment     *int64
	RemainingAmount *int64

	// PaymentType is empty when the backend sent a value outside the known set.
	PaymentType PaymentType
	Status      string

	CompletedPayments *int
	NumberOfPayments  *int

	CustomerAccountNumber *string
	VirtualAccount        *VirtualAccount
}

type ChildSummary struct {
	ID            string
	FirstName     string
	Surname       string
	ClassGrade    string
	BranchName    string
	PendingAmount *int64
}

func (c ChildSummary) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.Surname)
}

// Snapshot is the result of a single backend read. Derived views must be
// computed from one snapshot, never from fields of two different reads.
type Snapshot struct {
	Children  []ChildSummary
	Payments  []PaymentRecord
	FetchedAt time.Time
}
