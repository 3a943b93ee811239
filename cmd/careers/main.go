package main

import (
	"fmt"
	"os"

	"github.com/fadilmartias/careers/internal/cli"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "careers",
		Short: "Apply for a job or review applications",
		Long: `careers talks to the careers API: applicants submit applications with
their documents, admins browse, search and update them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cli.ApplyCmd())
	rootCmd.AddCommand(cli.AdminCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
