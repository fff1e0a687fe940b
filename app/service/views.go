package service

import (
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-school-fees/app/display"
	"github.com/vibast-solutions/ms-go-school-fees/app/entity"
	"github.com/vibast-solutions/ms-go-school-fees/app/polling"
	"github.com/vibast-solutions/ms-go-school-fees/app/status"
)

const (
	labelRemainingBalance = "Remaining Balance"
	labelDownPayment      = "Down Payment"
	labelAmount           = "Amount"
)

type VirtualAccountView struct {
	Number      string `json:"accountNumber"`
	BankName    string `json:"bankName"`
	AccountName string `json:"accountName,omitempty"`
	ExpiryDate  string `json:"expiryDate,omitempty"`
}

type PaymentView struct {
	ID                    string                `json:"id"`
	Description           string                `json:"description,omitempty"`
	Category              string                `json:"category,omitempty"`
	PaymentType           entity.PaymentType    `json:"paymentType,omitempty"`
	Status                status.Classification `json:"status"`
	Amount                display.Amount        `json:"display"`
	AmountLabel           string                `json:"amountLabel"`
	FormattedAmount       string                `json:"formattedAmount"`
	FormattedTotal        string                `json:"formattedTotal"`
	ProgressPercent       *int                  `json:"progressPercent,omitempty"`
	Progress              string                `json:"progress,omitempty"`
	CustomerAccountNumber string                `json:"customerAccountNumber,omitempty"`
	VirtualAccount        *VirtualAccountView   `json:"virtualAccount,omitempty"`
}

type ChildView struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	ClassGrade             string `json:"classGrade"`
	BranchName             string `json:"branchName,omitempty"`
	PendingAmount          int64  `json:"pendingAmount"`
	FormattedPendingAmount string `json:"formattedPendingAmount"`
}

// Dashboard is everything a parent view renders from one snapshot, so no
// two panels can show amounts from different fetches.
type Dashboard struct {
	FetchedAt             time.Time     `json:"fetchedAt"`
	Children              []ChildView   `json:"children"`
	Open                  []PaymentView `json:"open"`
	History               []PaymentView `json:"history"`
	PendingTotal          int64         `json:"pendingTotal"`
	FormattedPendingTotal string        `json:"formattedPendingTotal"`
	Polling               bool          `json:"polling"`
}

func (s *PortalService) DescribePayment(record entity.PaymentRecord) PaymentView {
	amount := display.Resolve(record)

	view := PaymentView{
		ID:              record.ID,
		Description:     record.Description,
		Category:        record.Category,
		PaymentType:     record.PaymentType,
		Status:          status.Classify(record.Status),
		Amount:          amount,
		AmountLabel:     amountLabel(amount),
		FormattedAmount: s.formatter.Format(amount.Amount),
		FormattedTotal:  s.formatter.Format(record.Amount),
	}

	if pct, ok := amount.ProgressPercent(); ok {
		view.ProgressPercent = &pct
		completed := 0
		if record.CompletedPayments != nil {
			completed = *record.CompletedPayments
		}
		view.Progress = formatProgress(completed, *record.NumberOfPayments)
	}

	if record.CustomerAccountNumber != nil {
		view.CustomerAccountNumber = *record.CustomerAccountNumber
	}

	if va := record.VirtualAccount; va != nil {
		view.VirtualAccount = &VirtualAccountView{
			Number:      va.Number,
			BankName:    va.BankName,
			AccountName: va.AccountName,
			ExpiryDate:  va.ExpiryDate,
		}
	}

	return view
}

func (s *PortalService) DescribePayments(records []entity.PaymentRecord) []PaymentView {
	out := make([]PaymentView, 0, len(records))
	for _, record := range records {
		out = append(out, s.DescribePayment(record))
	}
	return out
}

func (s *PortalService) DescribeChildren(children []entity.ChildSummary) []ChildView {
	out := make([]ChildView, 0, len(children))
	for _, child := range children {
		var pending int64
		if child.PendingAmount != nil {
			pending = *child.PendingAmount
		}
		out = append(out, ChildView{
			ID:                     child.ID,
			Name:                   child.FullName(),
			ClassGrade:             child.ClassGrade,
			BranchName:             child.BranchName,
			PendingAmount:          pending,
			FormattedPendingAmount: s.formatter.Format(pending),
		})
	}
	return out
}

// BuildDashboard derives every panel from snap. A nil snapshot yields an
// empty dashboard that still reports polling, since nothing has loaded yet.
func (s *PortalService) BuildDashboard(snap *entity.Snapshot) Dashboard {
	if snap == nil {
		return Dashboard{
			Children:              []ChildView{},
			Open:                  []PaymentView{},
			History:               []PaymentView{},
			FormattedPendingTotal: s.formatter.Format(0),
			Polling:               true,
		}
	}

	open, history := display.Partition(snap.Payments)
	total := display.PendingTotal(snap.Payments)

	return Dashboard{
		FetchedAt:             snap.FetchedAt,
		Children:              s.DescribeChildren(snap.Children),
		Open:                  s.DescribePayments(open),
		History:               s.DescribePayments(history),
		PendingTotal:          total,
		FormattedPendingTotal: s.formatter.Format(total),
		Polling:               polling.ShouldPoll(snap.Children, snap.Payments),
	}
}

// WithPendingTotals returns copies of children whose pending amount is
// recomputed from paymentsByChild. Children with no entry keep the amount
// the backend reported.
func WithPendingTotals(children []entity.ChildSummary, paymentsByChild map[string][]entity.PaymentRecord) []entity.ChildSummary {
	out := make([]entity.ChildSummary, 0, len(children))
	for _, child := range children {
		if payments, ok := paymentsByChild[child.ID]; ok {
			total := display.PendingTotal(payments)
			child.PendingAmount = &total
		}
		out = append(out, child)
	}
	return out
}

func amountLabel(amount display.Amount) string {
	if !amount.IsPartial {
		return labelAmount
	}
	if amount.ProgressStarted {
		return labelRemainingBalance
	}
	return labelDownPayment
}

func formatProgress(completed, total int) string {
	if completed < 0 {
		completed = 0
	}
	if completed > total {
		completed = total
	}
	return fmt.Sprintf("%d of %d payments", completed, total)
}
