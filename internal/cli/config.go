package cli

import (
	"strings"

	"shoplist-cli/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.Path()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, envelope(app, map[string]any{"path": p}))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (file, env and flags applied)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, envelope(app, configView(app.cfg)))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write one key to the config file",
		Example: strings.TrimSpace(`
  shoplist config set glyphs ascii
  shoplist config set login_delay 500ms
`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Env and flags are not baked into the file.
			cfg, err := config.LoadFile()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := config.Save(cfg); err != nil {
				return writeErr(cmd, err)
			}
			app.logger().Info("config updated", zap.String("key", args[0]))
			return writeOut(cmd, app, envelope(app, map[string]any{"key": args[0], "value": args[1]}))
		},
	})
	return cmd
}

type effectiveConfig struct {
	DataDir    string `json:"dataDir"`
	LogFile    string `json:"logFile"`
	LogLevel   string `json:"logLevel"`
	LoginDelay string `json:"loginDelay"`
	Glyphs     string `json:"glyphs"`
	Persist    bool   `json:"persist"`
	Demo       bool   `json:"demo"`
}

func configView(c config.Config) effectiveConfig {
	return effectiveConfig{
		DataDir:    c.DataDir,
		LogFile:    c.LogFile,
		LogLevel:   c.LogLevel,
		LoginDelay: c.LoginDelay.String(),
		Glyphs:     c.Glyphs,
		Persist:    c.Persist,
		Demo:       c.Demo,
	}
}
