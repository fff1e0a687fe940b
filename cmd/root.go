package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var prettyOutput bool

var rootCmd = &cobra.Command{
	Use:   "fees",
	Short: "School fee and installment engine",
	Long:  "Price registrations, preview installment plans, validate plan choices and follow payment progress for the school portal.",
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().BoolVar(&prettyOutput, "pretty", true, "Indent JSON output")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
