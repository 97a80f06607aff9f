package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/audiolibrelab/lapsecapture/internal/settings"
	"github.com/audiolibrelab/lapsecapture/internal/system"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show resolved configuration, file paths and dependencies",
	Long:  `Display the resolved paths, the persisted capture settings and whether the external programs the controller invokes are installed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		green := lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
		red := lipgloss.NewStyle().Foreground(lipgloss.Color("#E95420"))
		gray := lipgloss.NewStyle().Foreground(lipgloss.Color("#9A9EA0"))
		bold := lipgloss.NewStyle().Bold(true)

		fmt.Printf("=== FILE PATHS ===\n")
		fmt.Printf("config: %s\n", cfgFile)
		fmt.Printf("settings: %s\n", cfg.Paths.Settings)
		fmt.Printf("icons: %s\n", cfg.Paths.Icons)
		fmt.Printf("background: %s\n", cfg.BackgroundPath())
		fmt.Printf("output: %s\n", cfg.Paths.Output)

		probe := system.NewDiskProbe(cfg.Paths.Output, time.Second)
		if free, ok := probe.Free(); ok {
			fmt.Printf("free: %s\n", system.FormatBytes(free))
		} else {
			fmt.Printf("free: %s\n", gray.Render("unknown"))
		}

		fmt.Printf("\n=== SETTINGS ===\n")
		values := settings.NewFileStore(cfg.Paths.Settings).Load()
		for _, f := range settings.Fields {
			fmt.Printf("%s %s\n", f.Label, f.Format(values.Get(f.Key)))
		}

		fmt.Printf("\n=== CAPTURE ===\n")
		fmt.Printf("camera: %s %s\n", cfg.Camera.Backend, cfg.Camera.Resolution)
		fmt.Printf("encoder: %s %dfps %s\n", cfg.Encoder.Command, cfg.Encoder.FPS, cfg.Encoder.Codec)
		fmt.Printf("settling: %dms\n", cfg.Session.SettlingMs)
		fmt.Printf("drivers: %s\n", strings.Join(cfg.Display.Drivers, ", "))

		fmt.Printf("\n%s\n\n", bold.Render("Dependencies:"))
		allRequiredOk := true
		for _, r := range system.Check(system.Dependencies(cfg)) {
			var status string
			switch {
			case r.Available:
				status = green.Render("✓")
			case r.Dependency.Required:
				status = red.Render("✗")
				allRequiredOk = false
			default:
				status = gray.Render("○")
			}
			fmt.Printf("  %s %s\n", status, bold.Render(r.Dependency.Name))
			fmt.Printf("    %s\n", gray.Render(r.Dependency.Description))
			if r.Available {
				fmt.Printf("    Path: %s\n", r.Path)
			}
		}

		fmt.Println()
		if allRequiredOk {
			fmt.Println(green.Render("All required dependencies are installed!"))
		} else {
			fmt.Println(red.Render("Some required dependencies are missing."))
		}
		return nil
	},
}
