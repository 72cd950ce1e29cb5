package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"uenvalidator/internal/uen/models"
	"uenvalidator/pkg/platform/validation"
	s "uenvalidator/pkg/string"
)

func newValidateCommand(e *env) *cobra.Command {
	var (
		rec    models.Record
		format string
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate one record of up to three identifiers",
		Example: `  uen validate --business-reg 53012345D
  uen validate --local-company 201912345K --other-entity T09LL0001B --format text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			s.TrimStrings(&rec.BusinessReg, &rec.LocalCompany, &rec.OtherEntity)
			for _, f := range models.Fields {
				if err := validation.CheckStringLength(string(f), rec.Value(f), validation.MaxFieldLength); err != nil {
					return err
				}
			}

			out := e.service.Validate(cmd.Context(), rec)
			if err := writeOutcome(cmd.OutOrStdout(), format, out); err != nil {
				return fmt.Errorf("writing outcome: %w", err)
			}
			if !out.Valid {
				return ErrInvalid
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&rec.BusinessReg, "business-reg", "", "business registration number (nnnnnnnnX)")
	cmd.Flags().StringVar(&rec.LocalCompany, "local-company", "", "local company number (yyyynnnnnX)")
	cmd.Flags().StringVar(&rec.OtherEntity, "other-entity", "", "other entity number (TyyPQnnnnX)")
	cmd.Flags().StringVarP(&format, "format", "f", FormatJSON, "output format: json or text")
	return cmd
}

func writeOutcome(w io.Writer, format string, out models.Outcome) error {
	if format == FormatJSON {
		if out.RecordErrors == nil {
			out.RecordErrors = []string{}
		}
		return json.NewEncoder(w).Encode(out)
	}
	if out.Valid {
		_, err := fmt.Fprintln(w, "VALID")
		return err
	}
	for _, msg := range out.Messages() {
		if _, err := fmt.Fprintln(w, msg); err != nil {
			return err
		}
	}
	return nil
}
