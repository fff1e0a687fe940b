package plan

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vibast-solutions/ms-go-school-fees/app/entity"
	"github.com/vibast-solutions/ms-go-school-fees/app/installment"
)

var ErrUnknownPlanType = errors.New("unknown plan type")

type BankSelection struct {
	BankCode      string `json:"bankCode" validate:"required"`
	AccountNumber string `json:"accountNumber" validate:"required,len=10,digits"`
}

type InstallmentOption struct {
	Frequency installment.Frequency `json:"frequency" validate:"required,oneof=WEEKLY MONTHLY"`
	Count     int                   `json:"numberOfPayments" validate:"required,min=1"`
}

// Request is the normalized plan submission. Fields that do not apply to the
// plan type are nil so they are omitted on the wire.
type Request struct {
	PaymentType       string                 `json:"paymentType"`
	Frequency         *installment.Frequency `json:"frequency,omitempty"`
	NumberOfPayments  *int                   `json:"numberOfPayments,omitempty"`
	BankCode          *string                `json:"bankCode,omitempty"`
	BankAccountNumber *string                `json:"bankAccountNumber,omitempty"`
}

type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationErrors carries one entry per violated rule.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, item := range e {
		parts = append(parts, item.Field+": "+item.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e ValidationErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for _, item := range e {
		out = append(out, item.Field)
	}
	return out
}

type Selector struct {
	validate *validator.Validate
	calc     *installment.Calculator
}

// NewSelector checks installment counts against calc's per-frequency maximum.
// A nil calc uses the default 12 weekly / 3 monthly limits.
func NewSelector(calc *installment.Calculator) *Selector {
	if calc == nil {
		calc, _ = installment.NewCalculator(installment.DefaultConfig())
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	if err := v.RegisterValidation("digits", isDigits); err != nil {
		panic(fmt.Sprintf("plan: register digits validation: %v", err))
	}

	return &Selector{validate: v, calc: calc}
}

// Select validates the choice for planType. Bad user input comes back as
// ValidationErrors; an unsupported planType is ErrUnknownPlanType.
func (s *Selector) Select(planType entity.PaymentType, bank *BankSelection, option *InstallmentOption) (*Request, error) {
	if !planType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlanType, planType)
	}

	req := &Request{PaymentType: planType.WireName()}
	if planType == entity.PaymentTypeSingle {
		return req, nil
	}

	var errs ValidationErrors

	if planType == entity.PaymentTypeInstallment {
		opt := InstallmentOption{}
		if option != nil {
			opt = *option
			opt.Frequency = installment.Frequency(strings.ToUpper(strings.TrimSpace(string(opt.Frequency))))
		}
		optErrs := s.check(opt)
		if len(optErrs) == 0 {
			optErrs = s.checkCount(opt)
		}
		errs = append(errs, optErrs...)

		frequency, count := opt.Frequency, opt.Count
		req.Frequency = &frequency
		req.NumberOfPayments = &count
	} else {
		monthly := installment.Monthly
		req.Frequency = &monthly
	}

	sel := BankSelection{}
	if bank != nil {
		sel.BankCode = strings.TrimSpace(bank.BankCode)
		sel.AccountNumber = strings.TrimSpace(bank.AccountNumber)
	}
	errs = append(errs, s.check(sel)...)
	req.BankCode = &sel.BankCode
	req.BankAccountNumber = &sel.AccountNumber

	if len(errs) > 0 {
		return nil, errs
	}
	return req, nil
}

func (s *Selector) checkCount(opt InstallmentOption) ValidationErrors {
	maxCount, err := s.calc.MaxPayments(opt.Frequency)
	if err != nil {
		return ValidationErrors{{Field: "frequency", Reason: "Please select payment frequency"}}
	}
	if opt.Count > maxCount {
		return ValidationErrors{{
			Field:  "numberOfPayments",
			Reason: fmt.Sprintf("Must be at most %d for %s payments", maxCount, strings.ToLower(string(opt.Frequency))),
		}}
	}
	return nil
}

func (s *Selector) check(v interface{}) ValidationErrors {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return ValidationErrors{{Field: "", Reason: err.Error()}}
	}

	out := make(ValidationErrors, 0, len(validationErrors))
	for _, e := range validationErrors {
		out = append(out, ValidationError{Field: e.Field(), Reason: formatValidationError(e)})
	}
	return out
}

var fieldMessages = map[string]string{
	"bankCode.required":         "Please select your bank",
	"accountNumber.required":    "Bank account number is required",
	"accountNumber.len":         "Please enter a valid 10-digit account number",
	"accountNumber.digits":      "Please enter a valid 10-digit account number",
	"frequency.required":        "Please select payment frequency",
	"frequency.oneof":           "Please select payment frequency",
	"numberOfPayments.required": "Please select number of payments",
}

func formatValidationError(e validator.FieldError) string {
	if msg, ok := fieldMessages[e.Field()+"."+e.Tag()]; ok {
		return msg
	}
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Must be at least " + e.Param()
	case "max":
		return "Must be at most " + e.Param()
	case "len":
		return "Must be exactly " + e.Param() + " characters"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "digits":
		return "Must contain digits only"
	default:
		return "Invalid value"
	}
}

func isDigits(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}
