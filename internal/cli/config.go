package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jbonatakis/skinwell/internal/config"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and write skinwell config files",
		Long: `Config is read from .skinwell/config.json in the working directory and
from ~/.skinwell/config.json. Project values win over global values, which
win over defaults.`,
	}
	cmd.AddCommand(newConfigInitCommand(a), newConfigShowCommand(a), newConfigSetCommand(a))
	return cmd
}

// configTarget picks the project or global config path.
func configTarget(a *app, global bool) (string, error) {
	if !global {
		return config.ProjectConfigPath(a.projectRoot), nil
	}
	path, ok := config.GlobalConfigPath()
	if !ok {
		return "", errors.New("cannot resolve home directory for the global config")
	}
	return path, nil
}

func newConfigInitCommand(a *app) *cobra.Command {
	var global, force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with every option at its default",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configTarget(a, global)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				fmt.Fprintf(a.out, "config already exists: %s\n", path)
				return nil
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("stat config: %w", err)
			}
			if err := config.SaveConfigValues(path, config.DefaultOptionValues()); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "created config: %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "write ~/.skinwell/config.json")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show every option with its applied value and source",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := config.ResolveSettings(a.projectRoot)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tVALUE\tSOURCE")
			for _, option := range config.OptionRegistry() {
				applied := res.Applied[option.KeyPath]
				fmt.Fprintf(w, "%s\t%s\t%s\n", option.KeyPath, applied.Value.Display(), applied.Source)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			for _, lw := range res.LayerWarnings {
				fmt.Fprintf(a.out, "warning: %s config ignored (%s)\n", lw.Source, lw.Kind)
			}
			for _, ow := range res.OptionWarnings {
				msg := fmt.Sprintf("warning: %s %s (%s)", ow.Source, ow.KeyPath, ow.Kind)
				if ow.ClampedInt != nil {
					msg += fmt.Sprintf(", using %d", *ow.ClampedInt)
				}
				fmt.Fprintln(a.out, msg)
			}
			return nil
		},
	}
}

func newConfigSetCommand(a *app) *cobra.Command {
	var global, unset bool
	cmd := &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Set or unset one option in a config file",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return UsageError{Message: "config set requires <key> and a value, or <key> --unset"}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			option, ok := lookupOption(args[0])
			if !ok {
				keys := make([]string, 0, len(config.OptionRegistry()))
				for _, o := range config.OptionRegistry() {
					keys = append(keys, o.KeyPath)
				}
				return UsageError{Message: fmt.Sprintf("unknown key %q (one of: %s)", args[0], strings.Join(keys, ", "))}
			}
			if unset == (len(args) == 2) {
				return UsageError{Message: "pass either a value or --unset"}
			}

			path, err := configTarget(a, global)
			if err != nil {
				return err
			}
			values, err := loadLayerValues(a, global)
			if err != nil {
				return err
			}
			if unset {
				delete(values, option.KeyPath)
			} else {
				value, err := parseOptionValue(option, args[1])
				if err != nil {
					return UsageError{Message: err.Error()}
				}
				values[option.KeyPath] = value
			}
			if err := config.SaveConfigValues(path, values); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "updated %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "edit ~/.skinwell/config.json")
	cmd.Flags().BoolVar(&unset, "unset", false, "remove the key")
	return cmd
}

func lookupOption(key string) (config.OptionMetadata, bool) {
	for _, o := range config.OptionRegistry() {
		if o.KeyPath == key {
			return o, true
		}
	}
	return config.OptionMetadata{}, false
}

func loadLayerValues(a *app, global bool) (map[string]config.RawOptionValue, error) {
	var (
		raw config.RawConfig
		err error
	)
	if global {
		raw, _, err = config.LoadGlobalConfig()
	} else {
		raw, _, err = config.LoadProjectConfig(a.projectRoot)
	}
	if err != nil {
		return nil, err
	}
	return config.RawOptionValues(raw), nil
}

func parseOptionValue(option config.OptionMetadata, s string) (config.RawOptionValue, error) {
	switch option.Type {
	case config.OptionTypeInt:
		n, err := strconv.Atoi(s)
		if err != nil {
			return config.RawOptionValue{}, fmt.Errorf("%s expects an integer, got %q", option.KeyPath, s)
		}
		if b := option.Bounds; b != nil && (n < b.Min || n > b.Max) {
			return config.RawOptionValue{}, fmt.Errorf("%s must be between %d and %d", option.KeyPath, b.Min, b.Max)
		}
		return config.RawOptionValue{Int: &n}, nil
	case config.OptionTypeBool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return config.RawOptionValue{}, fmt.Errorf("%s expects true or false, got %q", option.KeyPath, s)
		}
		return config.RawOptionValue{Bool: &v}, nil
	default:
		if len(option.Choices) > 0 && !slices.Contains(option.Choices, s) {
			return config.RawOptionValue{}, fmt.Errorf("%s must be one of: %s", option.KeyPath, strings.Join(option.Choices, ", "))
		}
		return config.RawOptionValue{String: &s}, nil
	}
}
