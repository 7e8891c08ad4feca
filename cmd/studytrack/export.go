package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"studytrack/internal/export"
)

var (
	flagExportOut   string
	flagExportEmail bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all notes as CSV or an email summary",
	Long: `Collects every stored note and writes a CSV file, one row per note.
With --email, prints a plain-text summary and a mailto link instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		if flagExportEmail {
			body, err := export.EmailBody(store.Tasks(), store.StartDate())
			if err != nil {
				return err
			}
			subject := export.EmailSubject(store.Today())
			fmt.Println(body)
			fmt.Printf("mailto: %s\n", export.MailtoLink(subject, body))
			return nil
		}

		csv, err := export.CSV(store.Tasks(), store.StartDate())
		if err != nil {
			return err
		}
		out := flagExportOut
		if out == "" {
			out = export.Filename(store.Today())
		}
		if err := os.WriteFile(out, []byte(csv), 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Printf("Notes exported to %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "output file (default study-tracker-notes-<today>.csv)")
	exportCmd.Flags().BoolVar(&flagExportEmail, "email", false, "print an email summary instead of writing CSV")
}
