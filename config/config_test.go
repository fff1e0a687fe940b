package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-school-fees/app/fees"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("setenv %s failed: %v", key, err)
	}
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		}
	})
}

var allKeys = []string{
	"APP_SERVICE_NAME",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"FEES_CURRENCY",
	"FEES_LOCALE",
	"FEES_SCHEDULE",
	"INSTALLMENT_DOWN_PAYMENT_PERCENT",
	"INSTALLMENT_WEEKLY_MAX_PAYMENTS",
	"INSTALLMENT_MONTHLY_MAX_PAYMENTS",
	"POLL_INTERVAL_SECONDS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		unsetEnv(t, key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.App.ServiceName != "school-fees" {
		t.Fatalf("unexpected service name: %s", cfg.App.ServiceName)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
	if cfg.Fees.Currency != "NGN" || cfg.Fees.Locale != "en-NG" {
		t.Fatalf("unexpected currency config: %+v", cfg.Fees)
	}
	if len(cfg.Fees.Schedule) != 6 {
		t.Fatalf("expected 6 priced grades, got %d", len(cfg.Fees.Schedule))
	}
	if fee, err := cfg.Fees.Schedule.Lookup("ss3"); err != nil || fee != 1000 {
		t.Fatalf("unexpected SS3 fee: %d err=%v", fee, err)
	}
	if cfg.Installment.DownPaymentPercent != 20 || cfg.Installment.WeeklyMaxPayments != 12 || cfg.Installment.MonthlyMaxPayments != 3 {
		t.Fatalf("unexpected installment config: %+v", cfg.Installment)
	}
	if cfg.Polling.Interval != 5*time.Second {
		t.Fatalf("unexpected poll interval: %v", cfg.Polling.Interval)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	setEnv(t, "APP_SERVICE_NAME", "fees-test")
	setEnv(t, "LOG_LEVEL", "debug")
	setEnv(t, "LOG_FORMAT", "JSON")
	setEnv(t, "FEES_CURRENCY", "usd")
	setEnv(t, "FEES_LOCALE", "en-US")
	setEnv(t, "FEES_SCHEDULE", "JSS1=1500, ss2=2500")
	setEnv(t, "INSTALLMENT_DOWN_PAYMENT_PERCENT", "25")
	setEnv(t, "INSTALLMENT_WEEKLY_MAX_PAYMENTS", "8")
	setEnv(t, "INSTALLMENT_MONTHLY_MAX_PAYMENTS", "6")
	setEnv(t, "POLL_INTERVAL_SECONDS", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.App.ServiceName != "fees-test" {
		t.Fatalf("unexpected service name: %s", cfg.App.ServiceName)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
	if cfg.Fees.Currency != "USD" || cfg.Fees.Locale != "en-US" {
		t.Fatalf("unexpected currency config: %+v", cfg.Fees)
	}
	if fee, _ := cfg.Fees.Schedule.Lookup("SS2"); fee != 2500 {
		t.Fatalf("unexpected SS2 fee: %d", fee)
	}
	if _, err := cfg.Fees.Schedule.Lookup("SS3"); !errors.Is(err, fees.ErrUnpricedGrade) {
		t.Fatalf("expected SS3 to be unpriced, got %v", err)
	}
	if cfg.Installment.DownPaymentPercent != 25 || cfg.Installment.WeeklyMaxPayments != 8 || cfg.Installment.MonthlyMaxPayments != 6 {
		t.Fatalf("unexpected installment config: %+v", cfg.Installment)
	}
	if cfg.Polling.Interval != 30*time.Second {
		t.Fatalf("unexpected poll interval: %v", cfg.Polling.Interval)
	}
}

func TestLoadIgnoresUnparseableNumbers(t *testing.T) {
	clearEnv(t)
	setEnv(t, "INSTALLMENT_WEEKLY_MAX_PAYMENTS", "many")
	setEnv(t, "POLL_INTERVAL_SECONDS", "-3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Installment.WeeklyMaxPayments != 12 {
		t.Fatalf("expected default weekly max, got %d", cfg.Installment.WeeklyMaxPayments)
	}
	if cfg.Polling.Interval != 5*time.Second {
		t.Fatalf("expected default poll interval, got %v", cfg.Polling.Interval)
	}
}

func TestLoadRejectsMalformedSchedule(t *testing.T) {
	clearEnv(t)
	setEnv(t, "FEES_SCHEDULE", "JSS1:1000")

	_, err := Load()
	if !errors.Is(err, fees.ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule, got %v", err)
	}
}

func TestLoadRejectsNegativeFee(t *testing.T) {
	clearEnv(t)
	setEnv(t, "FEES_SCHEDULE", "JSS1=-5")

	_, err := Load()
	if !errors.Is(err, fees.ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule, got %v", err)
	}
}

func TestLoadRejectsDownPaymentPercentOutOfRange(t *testing.T) {
	for _, value := range []string{"-1", "101"} {
		clearEnv(t)
		setEnv(t, "INSTALLMENT_DOWN_PAYMENT_PERCENT", value)
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for percent %s", value)
		}
	}
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	clearEnv(t)
	setEnv(t, "LOG_FORMAT", "xml")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}
