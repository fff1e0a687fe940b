package installment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownFrequency = errors.New("unknown installment frequency")
	ErrInvalidConfig    = errors.New("invalid installment config")
)

type Frequency string

const (
	Weekly  Frequency = "WEEKLY"
	Monthly Frequency = "MONTHLY"
)

func ParseFrequency(raw string) (Frequency, error) {
	switch Frequency(strings.ToUpper(strings.TrimSpace(raw))) {
	case Weekly:
		return Weekly, nil
	case Monthly:
		return Monthly, nil
	default:
		return "", ErrUnknownFrequency
	}
}

func (f Frequency) Valid() bool {
	return f == Weekly || f == Monthly
}

// Period is the unit a single installment covers, used in preview text.
func (f Frequency) Period() string {
	if f == Weekly {
		return "Week"
	}
	return "Month"
}

type Config struct {
	DownPaymentPercent int
	WeeklyMaxPayments  int
	MonthlyMaxPayments int
}

func DefaultConfig() Config {
	return Config{
		DownPaymentPercent: 20,
		WeeklyMaxPayments:  12,
		MonthlyMaxPayments: 3,
	}
}

type Result struct {
	TotalFee         int64     `json:"totalFee"`
	DownPayment      int64     `json:"downPayment"`
	RemainingAmount  int64     `json:"remainingAmount"`
	NumberOfPayments int       `json:"numberOfPayments"`
	AmountPerPayment int64     `json:"amountPerPayment"`
	Frequency        Frequency `json:"frequency"`
}

type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) (*Calculator, error) {
	if cfg.DownPaymentPercent < 0 || cfg.DownPaymentPercent > 100 {
		return nil, fmt.Errorf("%w: down payment percent %d outside 0-100", ErrInvalidConfig, cfg.DownPaymentPercent)
	}
	if cfg.WeeklyMaxPayments <= 0 || cfg.MonthlyMaxPayments <= 0 {
		return nil, fmt.Errorf("%w: max payments must be > 0", ErrInvalidConfig)
	}
	return &Calculator{cfg: cfg}, nil
}

var defaultCalculator = &Calculator{cfg: DefaultConfig()}

// Compute uses the default 20% down payment, 12 weekly or 3 monthly payments.
func Compute(totalFee int64, frequency Frequency, requestedCount int) (Result, error) {
	return defaultCalculator.Compute(totalFee, frequency, requestedCount)
}

// MaxPayments returns the default per-frequency maximum.
func MaxPayments(frequency Frequency) (int, error) {
	return defaultCalculator.MaxPayments(frequency)
}

func (c *Calculator) Config() Config {
	return c.cfg
}

// MaxPayments is also the default count used when no valid count is requested.
func (c *Calculator) MaxPayments(frequency Frequency) (int, error) {
	switch frequency {
	case Weekly:
		return c.cfg.WeeklyMaxPayments, nil
	case Monthly:
		return c.cfg.MonthlyMaxPayments, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFrequency, frequency)
	}
}

// Compute derives the installment plan for totalFee. A requestedCount outside
// [1, max] falls back to the frequency default. amountPerPayment is rounded
// up, so amountPerPayment*numberOfPayments may exceed remainingAmount.
func (c *Calculator) Compute(totalFee int64, frequency Frequency, requestedCount int) (Result, error) {
	maxCount, err := c.MaxPayments(frequency)
	if err != nil {
		return Result{}, err
	}

	numberOfPayments := maxCount
	if requestedCount > 0 && requestedCount <= maxCount {
		numberOfPayments = requestedCount
	}

	downPayment := decimal.NewFromInt(totalFee).
		Mul(decimal.NewFromInt(int64(c.cfg.DownPaymentPercent))).
		Div(decimal.NewFromInt(100)).
		Ceil().
		IntPart()
	remaining := totalFee - downPayment

	perPayment := decimal.NewFromInt(remaining).
		Div(decimal.NewFromInt(int64(numberOfPayments))).
		Ceil().
		IntPart()

	return Result{
		TotalFee:         totalFee,
		DownPayment:      downPayment,
		RemainingAmount:  remaining,
		NumberOfPayments: numberOfPayments,
		AmountPerPayment: perPayment,
		Frequency:        frequency,
	}, nil
}

// Schedule lists the down payment followed by each period amount. The last
// period absorbs the ceiling overshoot so the entries sum to TotalFee.
func (r Result) Schedule() []int64 {
	if r.NumberOfPayments <= 0 {
		return []int64{r.DownPayment}
	}

	items := make([]int64, 0, r.NumberOfPayments+1)
	items = append(items, r.DownPayment)

	left := r.RemainingAmount
	for i := 0; i < r.NumberOfPayments; i++ {
		amount := r.AmountPerPayment
		if i == r.NumberOfPayments-1 || amount > left {
			amount = left
		}
		if amount < 0 {
			amount = 0
		}
		items = append(items, amount)
		left -= amount
	}
	return items
}
