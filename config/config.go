package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/vibast-solutions/ms-go-school-fees/app/fees"
	"github.com/vibast-solutions/ms-go-school-fees/app/installment"
	"github.com/vibast-solutions/ms-go-school-fees/app/money"
)

type Config struct {
	App         AppConfig
	Log         LogConfig
	Fees        FeesConfig
	Installment installment.Config
	Polling     PollingConfig
}

type AppConfig struct {
	ServiceName string
}

type LogConfig struct {
	Level  string
	Format string
}

type FeesConfig struct {
	Currency string
	Locale   string
	Schedule fees.Schedule
}

type PollingConfig struct {
	Interval time.Duration
}

const defaultSchedule = "JSS1=1000,JSS2=1000,JSS3=1000,SS1=1000,SS2=1000,SS3=1000"

func Load() (*Config, error) {
	_ = godotenv.Load()

	schedule, err := fees.ParseSchedule(getEnv("FEES_SCHEDULE", defaultSchedule))
	if err != nil {
		return nil, fmt.Errorf("FEES_SCHEDULE: %w", err)
	}

	downPaymentPercent := getIntEnv("INSTALLMENT_DOWN_PAYMENT_PERCENT", 20)
	if downPaymentPercent < 0 || downPaymentPercent > 100 {
		return nil, fmt.Errorf("INSTALLMENT_DOWN_PAYMENT_PERCENT must be between 0 and 100, got %d", downPaymentPercent)
	}

	logFormat := strings.ToLower(getEnv("LOG_FORMAT", "text"))
	if logFormat != "text" && logFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", logFormat)
	}

	return &Config{
		App: AppConfig{
			ServiceName: getEnv("APP_SERVICE_NAME", "school-fees"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: logFormat,
		},
		Fees: FeesConfig{
			Currency: strings.ToUpper(getEnv("FEES_CURRENCY", money.DefaultCurrency)),
			Locale:   getEnv("FEES_LOCALE", money.DefaultLocale),
			Schedule: schedule,
		},
		Installment: installment.Config{
			DownPaymentPercent: downPaymentPercent,
			WeeklyMaxPayments:  getIntEnv("INSTALLMENT_WEEKLY_MAX_PAYMENTS", 12),
			MonthlyMaxPayments: getIntEnv("INSTALLMENT_MONTHLY_MAX_PAYMENTS", 3),
		},
		Polling: PollingConfig{
			Interval: getSecondsEnv("POLL_INTERVAL_SECONDS", 5*time.Second),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

func getSecondsEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
