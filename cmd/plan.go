package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vibast-solutions/ms-go-school-fees/app/installment"
	"github.com/vibast-solutions/ms-go-school-fees/app/plan"
)

var (
	planPaymentType   string
	planBankCode      string
	planAccountNumber string
	planFrequency     string
	planCount         int
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Validate a payment plan choice and print the request to submit",
	RunE:  runPlan,
}

var banksCmd = &cobra.Command{
	Use:   "banks",
	Short: "List the banks a payer can pay from",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, portal := mustCreatePortalService()
		return writeJSON(cmd.OutOrStdout(), portal.Banks())
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(banksCmd)

	planCmd.Flags().StringVar(&planPaymentType, "type", "", "Payment type: SINGLE_PAYMENT, INSTALLMENT or SUBSCRIPTION")
	planCmd.Flags().StringVar(&planBankCode, "bank-code", "", "Payer bank code")
	planCmd.Flags().StringVar(&planAccountNumber, "account", "", "Payer 10-digit account number")
	planCmd.Flags().StringVar(&planFrequency, "frequency", "", "Installment frequency: WEEKLY or MONTHLY")
	planCmd.Flags().IntVar(&planCount, "count", 0, "Number of installment payments")
	_ = planCmd.MarkFlagRequired("type")
}

type planRejection struct {
	Errors plan.ValidationErrors `json:"errors"`
}

func runPlan(cmd *cobra.Command, _ []string) error {
	_, portal := mustCreatePortalService()

	bank := &plan.BankSelection{BankCode: planBankCode, AccountNumber: planAccountNumber}
	option := &plan.InstallmentOption{Frequency: installment.Frequency(planFrequency), Count: planCount}

	req, err := portal.PreparePlan(planPaymentType, bank, option)
	if err != nil {
		var validationErrs plan.ValidationErrors
		if errors.As(err, &validationErrs) {
			if writeErr := writeJSON(cmd.OutOrStdout(), planRejection{Errors: validationErrs}); writeErr != nil {
				return writeErr
			}
		}
		return err
	}
	return writeJSON(cmd.OutOrStdout(), req)
}
