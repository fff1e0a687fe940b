package cmd

import (
	"encoding/json"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/vibast-solutions/ms-go-school-fees/app/installment"
	"github.com/vibast-solutions/ms-go-school-fees/app/money"
	"github.com/vibast-solutions/ms-go-school-fees/app/service"
	"github.com/vibast-solutions/ms-go-school-fees/config"
)

func mustCreatePortalService() (*config.Config, *service.PortalService) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	calc, err := installment.NewCalculator(cfg.Installment)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create installment calculator")
	}

	formatter, err := money.NewFormatter(cfg.Fees.Currency, cfg.Fees.Locale)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create currency formatter")
	}

	return cfg, service.NewPortalService(cfg.Fees.Schedule, calc, formatter)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if prettyOutput {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
