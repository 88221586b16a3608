// Package cli implements the helios command-line interface.  Commands share
// one loaded configuration and scenario service, carried through the cobra
// command context.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/Helios-Economics/internal/application/scenario"
	"github.com/turtacn/Helios-Economics/internal/config"
	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/Helios-Economics/pkg/types/common"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// cliContext is the per-invocation state shared by all subcommands.
type cliContext struct {
	cfg    *config.Config
	svc    *scenario.Service
	output string
}

type ctxKey struct{}

func withCLIContext(ctx context.Context, c *cliContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func fromContext(ctx context.Context) (*cliContext, error) {
	c, ok := ctx.Value(ctxKey{}).(*cliContext)
	if !ok {
		return nil, fmt.Errorf("command context not initialised")
	}
	return c, nil
}

// NewRootCmd builds the helios root command with all subcommands attached.
func NewRootCmd(version common.VersionInfo) *cobra.Command {
	var (
		configPath string
		output     string
		verbose    bool
	)

	root := &cobra.Command{
		Use:   "helios",
		Short: "Development-economics engine for community-solar projects",
		Long: `helios projects risk-weighted cash flows for community-solar development
pipelines, solves them for project and portfolio IRR, and sweeps individual
risk categories to show which milestones drive returns.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.GitCommit, version.BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if output != OutputText && output != OutputJSON {
				return fmt.Errorf("unknown output format %q (want %s or %s)", output, OutputText, OutputJSON)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// CLI runs log to stderr and stay quiet unless asked; results go
			// to stdout.
			logCfg := cfg.Log
			logCfg.OutputPaths = []string{"stderr"}
			if !verbose {
				logCfg.Level = "error"
			}
			log, err := logging.NewLogger(logCfg)
			if err != nil {
				return err
			}
			logging.SetDefault(log)

			svc := scenario.NewService(cfg.Scenario, log, prometheus.NewNoopCollector())
			cmd.SetContext(withCLIContext(cmd.Context(), &cliContext{
				cfg:    cfg,
				svc:    svc,
				output: output,
			}))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the configuration file")
	root.PersistentFlags().StringVarP(&output, "output", "o", OutputText, "output format: text or json")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable info-level logging")

	root.AddCommand(
		newProjectCmd(),
		newSensitivityCmd(),
		newExportCmd(),
	)
	return root
}
