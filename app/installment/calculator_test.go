package installment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeWeeklyDefaultCount(t *testing.T) {
	got, err := Compute(1000, Weekly, 0)
	require.NoError(t, err)

	assert.Equal(t, Result{
		TotalFee:         1000,
		DownPayment:      200,
		RemainingAmount:  800,
		NumberOfPayments: 12,
		AmountPerPayment: 67,
		Frequency:        Weekly,
	}, got)
}

func TestComputeMonthlyRequestedCount(t *testing.T) {
	got, err := Compute(1000, Monthly, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(200), got.DownPayment)
	assert.Equal(t, int64(800), got.RemainingAmount)
	assert.Equal(t, 2, got.NumberOfPayments)
	assert.Equal(t, int64(400), got.AmountPerPayment)
	assert.Equal(t, Monthly, got.Frequency)
}

func TestComputeRequestedCountOutOfRangeFallsBack(t *testing.T) {
	tests := []struct {
		name      string
		frequency Frequency
		count     int
		want      int
	}{
		{name: "zero weekly", frequency: Weekly, count: 0, want: 12},
		{name: "negative weekly", frequency: Weekly, count: -3, want: 12},
		{name: "above weekly max", frequency: Weekly, count: 13, want: 12},
		{name: "weekly max", frequency: Weekly, count: 12, want: 12},
		{name: "weekly one", frequency: Weekly, count: 1, want: 1},
		{name: "above monthly max", frequency: Monthly, count: 4, want: 3},
		{name: "negative monthly", frequency: Monthly, count: -1, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(1000, tt.frequency, tt.count)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.NumberOfPayments)
		})
	}
}

func TestComputeZeroFee(t *testing.T) {
	got, err := Compute(0, Monthly, 0)
	require.NoError(t, err)

	assert.Zero(t, got.DownPayment)
	assert.Zero(t, got.RemainingAmount)
	assert.Zero(t, got.AmountPerPayment)
	assert.Equal(t, 3, got.NumberOfPayments)
}

func TestComputeDownPaymentRoundsUp(t *testing.T) {
	// 20% of 1001 is 200.2
	got, err := Compute(1001, Monthly, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(201), got.DownPayment)
	assert.Equal(t, int64(800), got.RemainingAmount)
	assert.Equal(t, int64(267), got.AmountPerPayment)
}

func TestComputeProperties(t *testing.T) {
	fees := []int64{0, 1, 7, 99, 100, 101, 999, 1000, 1001, 12345, 250000, 1234567}
	for _, fee := range fees {
		for _, frequency := range []Frequency{Weekly, Monthly} {
			for count := -1; count <= 13; count++ {
				got, err := Compute(fee, frequency, count)
				require.NoError(t, err)

				assert.Equal(t, fee, got.DownPayment+got.RemainingAmount, "fee=%d", fee)
				assert.GreaterOrEqual(t, got.NumberOfPayments, 1)

				n := int64(got.NumberOfPayments)
				assert.GreaterOrEqual(t, got.AmountPerPayment*n, got.RemainingAmount, "fee=%d n=%d", fee, n)
				if got.RemainingAmount > 0 {
					assert.Less(t, (got.AmountPerPayment-1)*n, got.RemainingAmount, "fee=%d n=%d", fee, n)
				}
			}
		}
	}
}

func TestComputeLastPeriodIsSmallerForStandardFee(t *testing.T) {
	for _, frequency := range []Frequency{Weekly, Monthly} {
		for count := 1; count <= 12; count++ {
			got, err := Compute(1000, frequency, count)
			require.NoError(t, err)

			n := int64(got.NumberOfPayments)
			assert.Less(t, got.AmountPerPayment*(n-1), got.RemainingAmount, "frequency=%s n=%d", frequency, n)
		}
	}
}

func TestComputeUnknownFrequency(t *testing.T) {
	_, err := Compute(1000, Frequency("DAILY"), 0)
	assert.True(t, errors.Is(err, ErrUnknownFrequency))
}

func TestComputeIsIdempotent(t *testing.T) {
	first, err := Compute(4321, Weekly, 5)
	require.NoError(t, err)
	second, err := Compute(4321, Weekly, 5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNewCalculatorValidatesConfig(t *testing.T) {
	_, err := NewCalculator(Config{DownPaymentPercent: 101, WeeklyMaxPayments: 12, MonthlyMaxPayments: 3})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewCalculator(Config{DownPaymentPercent: -1, WeeklyMaxPayments: 12, MonthlyMaxPayments: 3})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewCalculator(Config{DownPaymentPercent: 20, WeeklyMaxPayments: 0, MonthlyMaxPayments: 3})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCalculatorCustomConfig(t *testing.T) {
	calc, err := NewCalculator(Config{DownPaymentPercent: 50, WeeklyMaxPayments: 4, MonthlyMaxPayments: 2})
	require.NoError(t, err)

	got, err := calc.Compute(1000, Weekly, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(500), got.DownPayment)
	assert.Equal(t, 4, got.NumberOfPayments)
	assert.Equal(t, int64(125), got.AmountPerPayment)

	got, err = calc.Compute(1000, Monthly, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, got.NumberOfPayments)
}

func TestResultScheduleSumsToTotal(t *testing.T) {
	got, err := Compute(1000, Weekly, 0)
	require.NoError(t, err)

	items := got.Schedule()
	require.Len(t, items, 13)
	assert.Equal(t, int64(200), items[0])
	assert.Equal(t, int64(67), items[1])
	assert.Equal(t, int64(63), items[12])

	var sum int64
	for _, item := range items {
		sum += item
	}
	assert.Equal(t, int64(1000), sum)
}

func TestParseFrequency(t *testing.T) {
	got, err := ParseFrequency(" weekly ")
	require.NoError(t, err)
	assert.Equal(t, Weekly, got)

	got, err = ParseFrequency("MONTHLY")
	require.NoError(t, err)
	assert.Equal(t, Monthly, got)

	_, err = ParseFrequency("yearly")
	assert.ErrorIs(t, err, ErrUnknownFrequency)
}
