// Package cli implements the uen command line tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"uenvalidator/internal/platform/config"
	"uenvalidator/internal/platform/logger"
	"uenvalidator/internal/platform/tracing"
	"uenvalidator/internal/uen/service"
	"uenvalidator/internal/uen/tracer"
)

// ErrInvalid is returned when at least one record fails validation, so the
// process exits non-zero.
var ErrInvalid = errors.New("validation failed")

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// env is the per-invocation state shared by subcommands.
type env struct {
	cfgFile  string
	cfg      *config.Config
	log      *slog.Logger
	provider *tracing.Provider
	service  *service.Service
}

// Run executes the command line in args and flushes tracing afterwards, even
// when the command fails.
func Run(ctx context.Context, version string, args []string, stdout, stderr io.Writer) error {
	root, e := newRootCommand(version)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if cerr := e.close(context.Background()); cerr != nil && err == nil {
		err = fmt.Errorf("flushing traces: %w", cerr)
	}
	return err
}

func newRootCommand(version string) (*cobra.Command, *env) {
	e := &env{}

	root := &cobra.Command{
		Use:           "uen",
		Short:         "Validate Singapore Unique Entity Numbers",
		Long:          `uen checks UEN identifiers against the business, local company and other entity formats.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.init(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&e.cfgFile, "config", "c", "", "config file (default: $UEN_CONFIG)")

	root.AddCommand(
		newValidateCommand(e),
		newCheckCommand(e),
		newBatchCommand(e),
	)
	return root, e
}

func (e *env) init(cmd *cobra.Command) error {
	cfg, err := config.Load(e.cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	e.cfg = cfg
	e.log = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level)

	e.provider, err = tracing.NewProvider(tracing.Config{
		Enabled:    cfg.Tracing.Enabled,
		Exporter:   cfg.Tracing.Exporter,
		SampleRate: cfg.Tracing.SampleRate,
		Writer:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}

	e.service = service.New(
		service.WithLogger(e.log),
		service.WithTracer(tracer.NewOTel(tracer.WithOTelTracer(e.provider.TracerProvider().Tracer("uenvalidator/cli")))),
	)
	return nil
}

func (e *env) close(ctx context.Context) error {
	if e.provider == nil {
		return nil
	}
	return e.provider.Shutdown(ctx)
}

func checkFormat(format string) error {
	if format != FormatJSON && format != FormatText {
		return fmt.Errorf("unknown output format %q: want %s or %s", format, FormatJSON, FormatText)
	}
	return nil
}
