package mapper

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vibast-solutions/ms-go-school-fees/app/entity"
	"github.com/vibast-solutions/ms-go-school-fees/app/types"
)

func PaymentFromResponse(item *types.PaymentResponse) *entity.PaymentRecord {
	if item == nil {
		return nil
	}

	// An unrecognized type maps to "" and is displayed like a single payment.
	paymentType, _ := entity.ParsePaymentType(item.PaymentType)

	// Older records carry the count as numberOfInstallments.
	count := item.NumberOfPayments
	if count == nil {
		count = item.NumberOfInstallments
	}

	return &entity.PaymentRecord{
		ID:                    string(item.ID),
		Description:           strings.TrimSpace(item.Description),
		Category:              strings.TrimSpace(item.Category),
		Amount:                wholeUnits(item.Amount),
		DownPayment:           nullableUnits(item.DownPayment),
		RemainingAmount:       nullableUnits(item.RemainingAmount),
		PaymentType:           paymentType,
		Status:                item.Status,
		CompletedPayments:     cloneInt(item.CompletedPayments),
		NumberOfPayments:      cloneInt(count),
		CustomerAccountNumber: nonEmptyString(item.CustomerAccountNumber),
		VirtualAccount:        virtualAccountFromResponse(item),
	}
}

func PaymentsFromResponse(items []types.PaymentResponse) []entity.PaymentRecord {
	result := make([]entity.PaymentRecord, 0, len(items))
	for i := range items {
		result = append(result, *PaymentFromResponse(&items[i]))
	}
	return result
}

func ChildFromResponse(item *types.ChildResponse) entity.ChildSummary {
	return entity.ChildSummary{
		ID:            string(item.ID),
		FirstName:     strings.TrimSpace(item.FirstName),
		Surname:       strings.TrimSpace(item.Surname),
		ClassGrade:    strings.ToUpper(strings.TrimSpace(item.ClassGrade)),
		BranchName:    strings.TrimSpace(item.BranchName),
		PendingAmount: nullableUnits(item.PendingAmount),
	}
}

func SnapshotFromResponse(item *types.SnapshotResponse, fetchedAt time.Time) *entity.Snapshot {
	children := make([]entity.ChildSummary, 0, len(item.Children))
	for i := range item.Children {
		children = append(children, ChildFromResponse(&item.Children[i]))
	}
	return &entity.Snapshot{
		Children:  children,
		Payments:  PaymentsFromResponse(item.Payments),
		FetchedAt: fetchedAt.UTC(),
	}
}

func virtualAccountFromResponse(item *types.PaymentResponse) *entity.VirtualAccount {
	if va := item.VirtualAccount; va != nil {
		return &entity.VirtualAccount{
			Number:      strings.TrimSpace(va.AccountNumber),
			BankName:    strings.TrimSpace(va.BankName),
			AccountName: strings.TrimSpace(va.AccountName),
			ExpiryDate:  strings.TrimSpace(va.ExpiryDate),
		}
	}
	if item.VirtualAccountNumber == nil || strings.TrimSpace(*item.VirtualAccountNumber) == "" {
		return nil
	}
	return &entity.VirtualAccount{
		Number:      strings.TrimSpace(*item.VirtualAccountNumber),
		BankName:    derefString(item.BankName),
		AccountName: derefString(item.AccountName),
		ExpiryDate:  derefString(item.ExpiryDate),
	}
}

// wholeUnits rounds half away from zero; the backend sends whole naira but
// may serialize them with a fractional part.
func wholeUnits(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

func nullableUnits(d decimal.NullDecimal) *int64 {
	if !d.Valid {
		return nil
	}
	v := wholeUnits(d.Decimal)
	return &v
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func nonEmptyString(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	s := strings.TrimSpace(*v)
	return &s
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}
