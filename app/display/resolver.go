package display

import (
	"math"

	"github.com/vibast-solutions/ms-go-school-fees/app/entity"
	"github.com/vibast-solutions/ms-go-school-fees/app/status"
)

// Basis names the record field the displayed amount came from.
type Basis string

const (
	BasisRemainingBalance Basis = "REMAINING_BALANCE"
	BasisDownPayment      Basis = "DOWN_PAYMENT"
	BasisFullAmount       Basis = "FULL_AMOUNT"
)

type Amount struct {
	Amount    int64 `json:"amount"`
	IsPartial bool  `json:"isPartial"`
	// ProgressStarted lets callers pick "Remaining Balance" over "Down Payment".
	ProgressStarted bool  `json:"progressStarted"`
	Basis           Basis `json:"basis"`
	// InstallmentProgress is nil unless the record is an installment with a
	// known, positive number of payments.
	InstallmentProgress *float64 `json:"installmentProgress,omitempty"`
}

// Resolve applies, in order: installment remaining balance, installment down
// payment (only when no remaining balance is reported), then the full amount.
// Subscriptions always show the full amount.
func Resolve(record entity.PaymentRecord) Amount {
	out := Amount{
		Amount:          record.Amount,
		Basis:           BasisFullAmount,
		ProgressStarted: record.CompletedPayments != nil && *record.CompletedPayments > 0,
	}

	if record.PaymentType == entity.PaymentTypeInstallment {
		switch {
		case record.RemainingAmount != nil && *record.RemainingAmount < record.Amount:
			out.Amount = *record.RemainingAmount
			out.IsPartial = true
			out.Basis = BasisRemainingBalance
		case record.RemainingAmount == nil && record.DownPayment != nil && *record.DownPayment < record.Amount:
			out.Amount = *record.DownPayment
			out.IsPartial = true
			out.Basis = BasisDownPayment
		}
		out.InstallmentProgress = progress(record)
	}

	return out
}

// ProgressPercent rounds the installment progress to a whole percent.
func (a Amount) ProgressPercent() (int, bool) {
	if a.InstallmentProgress == nil {
		return 0, false
	}
	return int(math.Round(*a.InstallmentProgress * 100)), true
}

func progress(record entity.PaymentRecord) *float64 {
	if record.NumberOfPayments == nil || *record.NumberOfPayments <= 0 {
		return nil
	}
	completed := 0
	if record.CompletedPayments != nil {
		completed = *record.CompletedPayments
	}

	fraction := float64(completed) / float64(*record.NumberOfPayments)
	fraction = math.Max(0, math.Min(1, fraction))
	return &fraction
}

// Outstanding is what a payment still contributes to a child's pending
// total: the remaining balance of an installment that reports one, otherwise
// the full amount.
func Outstanding(record entity.PaymentRecord) int64 {
	if record.PaymentType == entity.PaymentTypeInstallment && record.RemainingAmount != nil {
		return *record.RemainingAmount
	}
	return record.Amount
}

// PendingTotal sums Outstanding over pending and active payments.
func PendingTotal(payments []entity.PaymentRecord) int64 {
	var total int64
	for _, p := range payments {
		if status.Classify(p.Status).State.IsOpen() {
			total += Outstanding(p)
		}
	}
	return total
}

// Partition splits payments into open (pending/active) and history
// (terminal) lists. Payments with an unknown status are in neither.
func Partition(payments []entity.PaymentRecord) (open, history []entity.PaymentRecord) {
	for _, p := range payments {
		state := status.Classify(p.Status).State
		switch {
		case state.IsOpen():
			open = append(open, p)
		case state.IsTerminal():
			history = append(history, p)
		}
	}
	return open, history
}
