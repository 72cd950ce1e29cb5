package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"uenvalidator/pkg/platform/validation"
)

func newCheckCommand(e *env) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "check <value>",
		Short: "Report which UEN format a single identifier follows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			value := strings.TrimSpace(args[0])
			if err := validation.CheckStringLength("value", value, validation.MaxFieldLength); err != nil {
				return err
			}
			kind, ok := e.service.Classify(cmd.Context(), value)

			label := string(kind)
			if !ok {
				label = "unknown"
			}
			w := cmd.OutOrStdout()
			var err error
			if format == FormatJSON {
				err = json.NewEncoder(w).Encode(map[string]any{"value": value, "kind": label, "valid": ok})
			} else {
				_, err = fmt.Fprintf(w, "%s: %s\n", value, label)
			}
			if err != nil {
				return fmt.Errorf("writing result: %w", err)
			}
			if !ok {
				return ErrInvalid
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", FormatText, "output format: json or text")
	return cmd
}
