package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vibast-solutions/ms-go-school-fees/app/entity"
	"github.com/vibast-solutions/ms-go-school-fees/app/factory"
	"github.com/vibast-solutions/ms-go-school-fees/app/fees"
	"github.com/vibast-solutions/ms-go-school-fees/app/installment"
	"github.com/vibast-solutions/ms-go-school-fees/app/money"
	"github.com/vibast-solutions/ms-go-school-fees/app/plan"
)

// PortalService answers the questions the registration and dashboard views
// ask: what a grade costs, what an installment plan looks like, which plan
// request to submit and how each payment should be shown.
type PortalService struct {
	schedule  fees.Schedule
	calc      *installment.Calculator
	formatter *money.Formatter
	selector  *plan.Selector
	logger    logrus.FieldLogger
}

// NewPortalService falls back to the default schedule, calculator and naira
// formatter for any nil argument.
func NewPortalService(schedule fees.Schedule, calc *installment.Calculator, formatter *money.Formatter) *PortalService {
	if schedule == nil {
		schedule = fees.DefaultSchedule()
	}
	if calc == nil {
		calc, _ = installment.NewCalculator(installment.DefaultConfig())
	}
	if formatter == nil {
		formatter = money.MustNewFormatter(money.DefaultCurrency, money.DefaultLocale)
	}

	return &PortalService{
		schedule:  schedule,
		calc:      calc,
		formatter: formatter,
		selector:  plan.NewSelector(calc),
		logger:    factory.NewModuleLogger("portal_service"),
	}
}

type InstallmentPreview struct {
	installment.Result
	Period                    string   `json:"period"`
	Schedule                  []int64  `json:"schedule"`
	FormattedDownPayment      string   `json:"formattedDownPayment"`
	FormattedRemainingAmount  string   `json:"formattedRemainingAmount"`
	FormattedAmountPerPayment string   `json:"formattedAmountPerPayment"`
	FormattedSchedule         []string `json:"formattedSchedule"`
}

type Quote struct {
	Grade          string              `json:"grade"`
	PaymentType    entity.PaymentType  `json:"paymentType"`
	TotalFee       int64               `json:"totalFee"`
	FormattedTotal string              `json:"formattedTotal"`
	DueNow         int64               `json:"dueNow"`
	FormattedDue   string              `json:"formattedDueNow"`
	Installment    *InstallmentPreview `json:"installment,omitempty"`
}

// QuoteRegistration prices grade under planType. Installment quotes need an
// option; a count outside the allowed range previews the default count, the
// same way the registration form does before the plan is submitted.
func (s *PortalService) QuoteRegistration(grade string, planType entity.PaymentType, option *plan.InstallmentOption) (*Quote, error) {
	if !planType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaymentType, planType)
	}

	fee, err := s.schedule.Lookup(grade)
	if err != nil {
		return nil, err
	}

	quote := &Quote{
		Grade:          strings.ToUpper(strings.TrimSpace(grade)),
		PaymentType:    planType,
		TotalFee:       fee,
		FormattedTotal: s.formatter.Format(fee),
		DueNow:         fee,
	}

	if planType == entity.PaymentTypeInstallment {
		if option == nil {
			return nil, ErrMissingInstallments
		}
		preview, err := s.PreviewInstallments(fee, option.Frequency, option.Count)
		if err != nil {
			return nil, err
		}
		quote.Installment = preview
		quote.DueNow = preview.DownPayment
	}

	quote.FormattedDue = s.formatter.Format(quote.DueNow)
	return quote, nil
}

// PreviewInstallments computes and formats the plan for an arbitrary total.
func (s *PortalService) PreviewInstallments(totalFee int64, frequency installment.Frequency, count int) (*InstallmentPreview, error) {
	frequency = installment.Frequency(strings.ToUpper(strings.TrimSpace(string(frequency))))
	result, err := s.calc.Compute(totalFee, frequency, count)
	if err != nil {
		return nil, err
	}

	schedule := result.Schedule()
	formatted := make([]string, 0, len(schedule))
	for _, item := range schedule {
		formatted = append(formatted, s.formatter.Format(item))
	}

	return &InstallmentPreview{
		Result:                    result,
		Period:                    frequency.Period(),
		Schedule:                  schedule,
		FormattedDownPayment:      s.formatter.Format(result.DownPayment),
		FormattedRemainingAmount:  s.formatter.Format(result.RemainingAmount),
		FormattedAmountPerPayment: s.formatter.Format(result.AmountPerPayment),
		FormattedSchedule:         formatted,
	}, nil
}

// QuoteAllGrades quotes every priced grade. Grades that fail are skipped and
// the first failure is returned alongside the quotes that succeeded.
func (s *PortalService) QuoteAllGrades(planType entity.PaymentType, option *plan.InstallmentOption) ([]*Quote, error) {
	var firstErr error
	out := make([]*Quote, 0, len(s.schedule))
	for _, grade := range s.schedule.Grades() {
		quote, err := s.QuoteRegistration(grade, planType, option)
		if err != nil {
			firstErr = keepFirstErr(firstErr, fmt.Errorf("grade %s: %w", grade, err))
			continue
		}
		out = append(out, quote)
	}
	return out, firstErr
}

// PreparePlan validates a plan choice and returns the request to submit.
// rawType accepts the wire names, including SINGLE_PAYMENT.
func (s *PortalService) PreparePlan(rawType string, bank *plan.BankSelection, option *plan.InstallmentOption) (*plan.Request, error) {
	planType, err := entity.ParsePaymentType(rawType)
	if err != nil {
		return nil, err
	}

	req, err := s.selector.Select(planType, bank, option)
	if err != nil {
		var validationErrs plan.ValidationErrors
		if errors.As(err, &validationErrs) {
			s.logger.WithFields(logrus.Fields{
				"payment_type": planType,
				"fields":       validationErrs.Fields(),
			}).Debug("plan_rejected")
		}
		return nil, err
	}

	s.logger.WithField("payment_type", req.PaymentType).Debug("plan_prepared")
	return req, nil
}

func (s *PortalService) Banks() []plan.Bank {
	return plan.Banks()
}

func (s *PortalService) Grades() []string {
	return s.schedule.Grades()
}
