package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fadilmartias/careers/internal/config"
	"github.com/fadilmartias/careers/internal/logger"
	"github.com/fadilmartias/careers/internal/model"
	"github.com/fadilmartias/careers/internal/review"
	"github.com/fadilmartias/careers/internal/util"
	"github.com/spf13/cobra"
)

type adminOptions struct {
	apiURL string
	token  string
}

func (o *adminOptions) dashboard(pageSize int) *review.Dashboard {
	client := review.NewClient(o.apiURL)
	client.SetToken(o.token)
	return review.NewDashboard(client, pageSize, logger.Discard())
}

// AdminCmd returns the admin command
func AdminCmd() *cobra.Command {
	opts := &adminOptions{}
	clientConfig := config.LoadClientConfig()

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Review submitted applications",
		Long: `Review submitted applications. Log in once with "careers admin login"
and export the printed token as CAREERS_ADMIN_TOKEN (or pass --token).`,
	}
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", clientConfig.APIURL, "Careers API base URL")
	cmd.PersistentFlags().StringVar(&opts.token, "token", clientConfig.AdminToken, "Admin session token")

	cmd.AddCommand(adminLoginCmd(opts))
	cmd.AddCommand(adminLogoutCmd(opts))
	cmd.AddCommand(adminListCmd(opts))
	cmd.AddCommand(adminShowCmd(opts))
	cmd.AddCommand(adminStatusCmd(opts))
	cmd.AddCommand(adminStatsCmd(opts))

	return cmd
}

func adminLoginCmd(opts *adminOptions) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Open an admin session and print its token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("CAREERS_ADMIN_PASSWORD")
			}
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && err != io.EOF {
					return err
				}
				password = strings.TrimRight(line, "\r\n")
			}

			client := review.NewClient(opts.apiURL)
			session, err := client.Login(cmd.Context(), password)
			if err != nil {
				return userError(cmd.ErrOrStderr(), err)
			}

			okColor.Fprintf(cmd.ErrOrStderr(), "✓ Logged in until %s\n", session.ExpiresAt.Local().Format("2006-01-02 15:04"))
			fmt.Fprintln(cmd.OutOrStdout(), session.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Admin password (prompted when empty)")

	return cmd
}

func adminLogoutCmd(opts *adminOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the admin session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.dashboard(review.DefaultPageSize).Logout(cmd.Context()); err != nil {
				return userError(cmd.ErrOrStderr(), err)
			}
			okColor.Fprintln(cmd.OutOrStdout(), "✓ Logged out")
			return nil
		},
	}
}

func adminListCmd(opts *adminOptions) *cobra.Command {
	var (
		search   string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applications, newest first",
		Long: `List applications, newest first. --search matches name, email,
phone number and residence, ignoring case.

Examples:
  careers admin list
  careers admin list --search jakarta --page 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dash := opts.dashboard(pageSize)
			if err := dash.Refresh(cmd.Context()); err != nil {
				return userError(cmd.ErrOrStderr(), err)
			}
			dash.State.SetSearch(search)
			dash.State.GoToPage(page)

			printApplications(cmd.OutOrStdout(), dash.State)
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Filter by name, email, phone or residence")
	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	cmd.Flags().IntVar(&pageSize, "page-size", review.DefaultPageSize, "Rows per page")

	return cmd
}

func printApplications(w io.Writer, state *review.State) {
	items := state.PageItems()
	if len(items) == 0 {
		dimColor.Fprintln(w, "No applications found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tRESIDENCE\tSTATUS\tSUBMITTED")
	for _, app := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			app.ID,
			app.Name,
			app.Email,
			app.PhoneNumber,
			app.CurrentResidence,
			statusColor(app.Status),
			app.CreatedAt.Local().Format("2006-01-02"),
		)
	}
	tw.Flush()

	dimColor.Fprintf(w, "Page %d of %d (%d matching)\n", state.Page(), state.TotalPages(), len(state.Filtered()))
}

func adminShowCmd(opts *adminOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.dashboard(review.DefaultPageSize).Client.GetApplication(cmd.Context(), args[0])
			if err != nil {
				return userError(cmd.ErrOrStderr(), err)
			}
			printApplication(cmd.OutOrStdout(), app)
			return nil
		},
	}
}

func printApplication(w io.Writer, app *model.JobApplication) {
	boldColor.Fprintf(w, "%s\n", app.Name)
	fmt.Fprintf(w, "  ID:          %s\n", app.ID)
	fmt.Fprintf(w, "  Status:      %s\n", statusColor(app.Status))
	fmt.Fprintf(w, "  Email:       %s\n", app.Email)
	fmt.Fprintf(w, "  Phone:       %s\n", app.PhoneNumber)
	fmt.Fprintf(w, "  Phone 2:     %s\n", orDash(app.PhoneNumber2))
	fmt.Fprintf(w, "  Residence:   %s\n", app.CurrentResidence)
	fmt.Fprintf(w, "  Submitted:   %s\n", app.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "  CV:          %s\n", orDash(app.CV().PreviewURL))
	fmt.Fprintf(w, "  Cover file:  %s\n", orDash(app.CoverLetterFile().PreviewURL))
	if note := app.CoverLetterNote(); note.Present() {
		fmt.Fprintln(w, "  Cover letter:")
		for _, line := range strings.Split(note.Text, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
}

func adminStatusCmd(opts *adminOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change the status of an application",
		Long: `Change the status of an application to one of:
new, reviewed, contacted, hired, rejected.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, status := args[0], model.Status(strings.ToLower(args[1]))

			dash := opts.dashboard(review.DefaultPageSize)
			if err := dash.Refresh(cmd.Context()); err != nil {
				return userError(cmd.ErrOrStderr(), err)
			}
			if !dash.State.Select(id) {
				return userError(cmd.ErrOrStderr(), util.NotFoundError("Application not found"))
			}
			if err := dash.ChangeStatus(cmd.Context(), id, status); err != nil {
				return userError(cmd.ErrOrStderr(), err)
			}

			app, _ := dash.State.Selected()
			okColor.Fprintf(cmd.OutOrStdout(), "✓ %s is now %s\n", app.Name, statusColor(app.Status))
			return nil
		},
	}
}

func adminStatsCmd(opts *adminOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show application counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := opts.dashboard(review.DefaultPageSize).Client.Stats(cmd.Context())
			if err != nil {
				return userError(cmd.ErrOrStderr(), err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Total:              %d\n", stats.Total)
			fmt.Fprintf(w, "This month:         %d\n", stats.ThisMonth)
			fmt.Fprintf(w, "With CV:            %d\n", stats.WithCV)
			fmt.Fprintf(w, "With cover letter:  %d\n", stats.WithCoverLetter)
			return nil
		},
	}
}
