package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fadilmartias/careers/internal/applicant"
	"github.com/fadilmartias/careers/internal/config"
	"github.com/fadilmartias/careers/internal/logger"
	"github.com/fadilmartias/careers/internal/service"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// ApplyCmd returns the apply command
func ApplyCmd() *cobra.Command {
	var (
		form            applicant.Form
		apiURL          string
		cvPath          string
		coverLetterPath string
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Submit a job application",
		Long: `Submit a job application. Attached documents are uploaded to the
object store first, then the application is sent to the API.

Examples:
  careers apply --name "Ana" --email ana@example.com --phone 0811 --residence Bandung
  careers apply --name "Ana" --email ana@example.com --phone 0811 --residence Bandung --cv resume.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()

			var err error
			if form.CV, err = readFile(cvPath); err != nil {
				return err
			}
			if form.CoverLetterFile, err = readFile(coverLetterPath); err != nil {
				return err
			}

			var uploader service.StorageServiceInterface
			if form.CV != nil || form.CoverLetterFile != nil {
				storage, err := service.NewStorageService(config.LoadStorageConfig())
				if err != nil {
					return fmt.Errorf("attachments need object storage: %w", err)
				}
				uploader = storage
			}

			submitter := applicant.NewSubmitter(apiURL, uploader, logger.Discard())
			res, err := submitter.Submit(cmd.Context(), &form, func(name string, percent float64) {
				fmt.Fprintf(errOut, "\rUploading %s... %3.0f%%", name, percent)
				if percent >= 100 {
					fmt.Fprintln(errOut)
				}
			})
			if err != nil {
				return userError(errOut, err)
			}

			okColor.Fprintf(out, "✓ %s\n", res.Message)
			if res.Application.ID != uuid.Nil {
				dimColor.Fprintf(out, "  id: %s\n", res.Application.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "Full name (required)")
	cmd.Flags().StringVar(&form.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&form.PhoneNumber, "phone", "", "Phone number (required)")
	cmd.Flags().StringVar(&form.PhoneNumber2, "phone2", "", "Second phone number")
	cmd.Flags().StringVar(&form.CurrentResidence, "residence", "", "Current residence (required)")
	cmd.Flags().StringVar(&form.CoverLetterText, "cover-letter-text", "", "Cover letter as text")
	cmd.Flags().StringVar(&cvPath, "cv", "", "Path to the CV (PDF, DOC or DOCX, max 5MB)")
	cmd.Flags().StringVar(&coverLetterPath, "cover-letter-file", "", "Path to a cover letter document")
	cmd.Flags().StringVar(&apiURL, "api-url", config.LoadClientConfig().APIURL, "Careers API base URL")

	return cmd
}

func readFile(path string) (*applicant.FileInput, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &applicant.FileInput{Name: filepath.Base(path), Data: data}, nil
}
