package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nikogura/career-kit/pkg/config"
	"github.com/nikogura/career-kit/pkg/history"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var appCompany string

//nolint:gochecknoglobals // Cobra boilerplate
var appPosition string

//nolint:gochecknoglobals // Cobra boilerplate
var appStatus string

//nolint:gochecknoglobals // Cobra boilerplate
var appNotes string

//nolint:gochecknoglobals // Cobra boilerplate
var applicationsCmd = &cobra.Command{
	Use:   "applications",
	Short: "Track job applications",
	Long: `Track job applications. Saving an application for a company and position
that is already tracked updates it, so the same command moves an
application through Applied, Phone Screen, Technical Interview, Onsite,
Offer or Rejected.`,
}

//nolint:gochecknoglobals // Cobra boilerplate
var applicationsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or update an application",
	Long: `Add or update an application.

Example:
  career-kit applications add --company Acme --position "Staff Engineer"
  career-kit applications add --company Acme --position "Staff Engineer" --status onsite --notes "panel on Friday"`,
	RunE: runApplicationsAdd,
}

//nolint:gochecknoglobals // Cobra boilerplate
var applicationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked applications",
	RunE:  runApplicationsList,
}

//nolint:gochecknoglobals // Cobra boilerplate
var applicationsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize applications by status",
	RunE:  runApplicationsStats,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(applicationsCmd)
	applicationsCmd.AddCommand(applicationsAddCmd, applicationsListCmd, applicationsStatsCmd)

	applicationsAddCmd.Flags().StringVar(&appCompany, "company", "", "Company name (required)")
	applicationsAddCmd.Flags().StringVar(&appPosition, "position", "", "Position title (required)")
	applicationsAddCmd.Flags().StringVar(&appStatus, "status", string(history.StatusApplied), "Application status")
	applicationsAddCmd.Flags().StringVar(&appNotes, "notes", "", "Contacts, requirements, follow-up dates")
	_ = applicationsAddCmd.MarkFlagRequired("company")
	_ = applicationsAddCmd.MarkFlagRequired("position")
}

func withHistory(fn func(ctx context.Context, store history.Store) error) (err error) {
	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	var store *history.SQLiteStore
	store, err = openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	err = fn(context.Background(), store)
	return err
}

func runApplicationsAdd(cmd *cobra.Command, args []string) (err error) {
	var status history.Status
	status, err = history.ParseStatus(appStatus)
	if err != nil {
		return err
	}

	err = withHistory(func(ctx context.Context, store history.Store) (err error) {
		var saved history.Application
		saved, err = store.SaveApplication(ctx, history.Application{
			Company:  appCompany,
			Position: appPosition,
			Status:   status,
			Notes:    appNotes,
		})
		if err != nil {
			return err
		}

		fmt.Printf("%s Saved application to %s - %s (%s)\n", saved.Status.Icon(), saved.Company, saved.Position, saved.Status)
		return err
	})
	return err
}

func runApplicationsList(cmd *cobra.Command, args []string) (err error) {
	err = withHistory(func(ctx context.Context, store history.Store) (err error) {
		var apps []history.Application
		apps, err = store.ListApplications(ctx)
		if err != nil {
			return err
		}

		printApplications(os.Stdout, apps)
		return err
	})
	return err
}

func printApplications(w io.Writer, apps []history.Application) {
	if len(apps) == 0 {
		fmt.Fprintln(w, "No applications tracked yet. Add one with 'career-kit applications add'.")
		return
	}

	for _, app := range apps {
		fmt.Fprintf(w, "%s %s - %s\n", app.Status.Icon(), app.Company, app.Position)
		fmt.Fprintf(w, "   Status: %s | Date: %s\n", app.Status, app.AppliedAt.Format("2006-01-02"))
		if app.Notes != "" {
			fmt.Fprintf(w, "   Notes: %s\n", app.Notes)
		}
	}
}

func runApplicationsStats(cmd *cobra.Command, args []string) (err error) {
	err = withHistory(func(ctx context.Context, store history.Store) (err error) {
		var stats history.Stats
		stats, err = store.Stats(ctx)
		if err != nil {
			return err
		}

		printStats(os.Stdout, stats)
		return err
	})
	return err
}

func printStats(w io.Writer, stats history.Stats) {
	fmt.Fprintf(w, "Applications: %d\n", stats.Applications)
	fmt.Fprintf(w, "Cover letters: %d\n", stats.CoverLetters)
	fmt.Fprintf(w, "Projects: %d\n", stats.Projects)
	fmt.Fprintf(w, "Skills: %d\n", stats.Skills)
	for _, status := range history.Statuses() {
		if count := stats.ByStatus[status]; count > 0 {
			fmt.Fprintf(w, "  %s %-20s %d\n", status.Icon(), status, count)
		}
	}
}
