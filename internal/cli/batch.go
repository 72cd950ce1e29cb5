package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"uenvalidator/internal/batch"
)

func newBatchCommand(e *env) *cobra.Command {
	var (
		input   string
		format  string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Validate every record in a .jsonl, .csv or .xlsx file",
		Long: `batch reads records from --input and validates them concurrently.
CSV and XLSX inputs need a header row naming BusinessReg, LocalCompany and/or
OtherEntity; XLSX input is read from the first sheet. JSONL lines use the keys
business_reg, local_company and other_entity.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			inFormat, err := batch.FormatFromPath(input)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				workers = e.cfg.Batch.Workers
			}

			f, err := os.Open(input) // #nosec G304 -- path is the operator's own argument
			if err != nil {
				return fmt.Errorf("opening input: %w", err)
			}
			defer func() { _ = f.Close() }()

			rows, err := batch.Read(inFormat, f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", input, err)
			}

			e.log.DebugContext(cmd.Context(), "batch started", "rows", len(rows), "workers", workers)
			report, err := batch.Run(cmd.Context(), e.service, rows, workers)
			if err != nil {
				return fmt.Errorf("running batch: %w", err)
			}
			e.log.InfoContext(cmd.Context(), "batch finished",
				"total", report.Summary.Total,
				"valid", report.Summary.Valid,
				"invalid", report.Summary.Invalid,
				"rejected", report.Summary.Rejected,
			)

			if format == FormatJSON {
				err = batch.WriteJSON(cmd.OutOrStdout(), report)
			} else {
				err = batch.WriteText(cmd.OutOrStdout(), report)
			}
			if err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			if report.Summary.Valid != report.Summary.Total {
				return ErrInvalid
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input file (.jsonl, .csv or .xlsx)")
	cmd.Flags().StringVarP(&format, "format", "f", FormatText, "output format: json or text")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent validations (default from batch.workers)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
