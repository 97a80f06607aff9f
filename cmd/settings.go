package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/audiolibrelab/lapsecapture/internal/settings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the persisted capture settings",
	Long:  `View and change the interval and frame count edited on the touchscreen.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the persisted settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := settings.NewFileStore(cfg.Paths.Settings)
		values := store.Load()

		fmt.Printf("file: %s\n", store.Path())
		for _, f := range settings.Fields {
			fmt.Printf("%s %s (range %d-%d)\n", f.Key, f.Format(values.Get(f.Key)), f.Min, f.Max)
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one setting; values are clamped into range",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, ok := lookupField(args[0])
		if !ok {
			return fmt.Errorf("unknown setting %q (known: %s)", args[0], fieldNames())
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", field.Key, err)
		}

		store := settings.NewFileStore(cfg.Paths.Settings)
		values := store.Load()
		values[field.Key] = field.Clamp(n)
		if err := store.Save(values); err != nil {
			return err
		}

		fmt.Printf("%s %s\n", field.Key, field.Format(values[field.Key]))
		return nil
	},
}

func lookupField(name string) (settings.Field, bool) {
	for _, f := range settings.Fields {
		if strings.EqualFold(string(f.Key), name) {
			return f, true
		}
	}
	return settings.Field{}, false
}

func fieldNames() string {
	names := make([]string, 0, len(settings.Fields))
	for _, f := range settings.Fields {
		names = append(names, string(f.Key))
	}
	return strings.Join(names, ", ")
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
