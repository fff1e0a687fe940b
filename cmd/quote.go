package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vibast-solutions/ms-go-school-fees/app/entity"
	"github.com/vibast-solutions/ms-go-school-fees/app/installment"
	"github.com/vibast-solutions/ms-go-school-fees/app/plan"
)

var (
	quotePaymentType string
	quoteFrequency   string
	quoteCount       int
	quoteAll         bool
)

var quoteCmd = &cobra.Command{
	Use:   "quote [grade]",
	Short: "Price a registration and preview its installment plan",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringVar(&quotePaymentType, "type", string(entity.PaymentTypeSingle), "Payment type: SINGLE, INSTALLMENT or SUBSCRIPTION")
	quoteCmd.Flags().StringVar(&quoteFrequency, "frequency", string(installment.Weekly), "Installment frequency: WEEKLY or MONTHLY")
	quoteCmd.Flags().IntVar(&quoteCount, "count", 0, "Number of installment payments (0 uses the frequency maximum)")
	quoteCmd.Flags().BoolVar(&quoteAll, "all", false, "Quote every priced grade")
}

func runQuote(cmd *cobra.Command, args []string) error {
	_, portal := mustCreatePortalService()

	planType, err := entity.ParsePaymentType(quotePaymentType)
	if err != nil {
		return err
	}

	var option *plan.InstallmentOption
	if planType == entity.PaymentTypeInstallment {
		option = &plan.InstallmentOption{
			Frequency: installment.Frequency(quoteFrequency),
			Count:     quoteCount,
		}
	}

	if quoteAll {
		quotes, err := portal.QuoteAllGrades(planType, option)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), quotes)
	}

	if len(args) == 0 {
		return errors.New("grade is required unless --all is set")
	}

	quote, err := portal.QuoteRegistration(args[0], planType, option)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), quote)
}
