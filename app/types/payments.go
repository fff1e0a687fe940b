package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ID accepts both JSON strings and numbers; the backend uses numeric ids for
// students and string ids for some payment sources.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("id must be a string or number")
	}
	*id = ID(n.String())
	return nil
}

type VirtualAccountResponse struct {
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	ExpiryDate    string `json:"expiryDate"`
}

// PaymentResponse is a payment record as returned by the payment backend.
// Amounts are decimals so "1000", 1000 and 1000.00 all decode; Null* fields
// stay invalid when the backend omits them.
type PaymentResponse struct {
	ID          ID     `json:"id"`
	Description string `json:"description"`
	Category    string `json:"category"`

	Amount          decimal.Decimal     `json:"amount"`
	DownPayment     decimal.NullDecimal `json:"downPayment"`
	RemainingAmount decimal.NullDecimal `json:"remainingAmount"`

	PaymentType string `json:"paymentType"`
	Status      string `json:"status"`

	CompletedPayments    *int `json:"completedPayments"`
	NumberOfPayments     *int `json:"numberOfPayments"`
	NumberOfInstallments *int `json:"numberOfInstallments"`

	CustomerAccountNumber *string `json:"customerAccountNumber"`

	VirtualAccount *VirtualAccountResponse `json:"virtualAccount"`
	// Flat virtual account fields used by the payment detail endpoint.
	VirtualAccountNumber *string `json:"virtualAccountNumber"`
	BankName             *string `json:"bankName"`
	AccountName          *string `json:"accountName"`
	ExpiryDate           *string `json:"expiryDate"`
}

type ChildResponse struct {
	ID            ID                  `json:"id"`
	FirstName     string              `json:"firstName"`
	Surname       string              `json:"surname"`
	ClassGrade    string              `json:"classGrade"`
	BranchName    string              `json:"branchName"`
	PendingAmount decimal.NullDecimal `json:"pendingAmount"`
}

type SnapshotResponse struct {
	Children []ChildResponse   `json:"children"`
	Payments []PaymentResponse `json:"payments"`
}
