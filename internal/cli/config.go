package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/alexander-cohen/SG-Design-Classification/internal/config"
)

// NewConfigCommand creates the config command.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration enumerate would run with, after merging the config
file and SGDESIGN_* environment variables, as YAML.

Example:
  sgdesign config
  SGDESIGN_MAX_POINTS=12 sgdesign config --config ci.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(rootOpts.ConfigFile, nil)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid configuration", err)
			}
			return rootOpts.formatter(cmd).Success(configView(cfg))
		},
	}
}

// configView renders as YAML in text mode.
type configView config.Config

// RenderText implements textRenderer.
func (c configView) RenderText(w io.Writer) error {
	out, err := config.Dump(config.Config(c))
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
