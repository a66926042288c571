package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xqrs/tview-listbox"
)

type config struct {
	Mode     tview.SelectionMode
	Items    int
	Gap      int
	Tabs     bool
	LogFile  string
	LogLevel slog.Level
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "listbox-demo",
		Short: "Browse and select items of a generated list in the terminal.",
		Example: `
listbox-demo --mode "multiple|toggle" --items 5000
LISTBOX_GAP=1 listbox-demo --tabs
`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	addFlags(cmd, v)
	return cmd
}

// addFlags declares the flags and binds them to v. Flags left unset fall
// back to LISTBOX_ variables, then to the config file.
func addFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.Flags()
	flags.String("config", "", "config file (default ./.listbox-demo.yaml or ~/.listbox-demo.yaml)")
	flags.String("mode", "single", `selection mode: "none" or flags joined by "|" (single, multiple, toggle, always-selected)`)
	flags.Int("items", 1000, "number of generated items")
	flags.Int("gap", 0, "blank rows between items")
	flags.Bool("tabs", false, "use the tab strip variant")
	flags.String("log-file", "", "write JSON logs to this file")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	_ = v.BindPFlags(flags)
}

func loadConfig(v *viper.Viper) (config, error) {
	v.SetEnvPrefix("LISTBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".listbox-demo")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config{}, fmt.Errorf("read config: %w", err)
		}
	}

	mode, err := tview.ParseSelectionMode(v.GetString("mode"))
	if err != nil {
		return config{}, fmt.Errorf("invalid mode: %w", err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
		return config{}, fmt.Errorf("invalid log level: %w", err)
	}
	items := v.GetInt("items")
	if items < 0 {
		return config{}, fmt.Errorf("invalid item count %d", items)
	}

	return config{
		Mode:     mode,
		Items:    items,
		Gap:      v.GetInt("gap"),
		Tabs:     v.GetBool("tabs"),
		LogFile:  v.GetString("log-file"),
		LogLevel: level,
	}, nil
}
