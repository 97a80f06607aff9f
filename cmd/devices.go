package cmd

import (
	"fmt"
	"runtime"

	"github.com/audiolibrelab/lapsecapture/internal/display"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List framebuffers and input devices",
	Long:  `List the framebuffers and evdev input devices the controller can use for drawing and touch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		green := lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
		gray := lipgloss.NewStyle().Foreground(lipgloss.Color("#9A9EA0"))
		bold := lipgloss.NewStyle().Bold(true)

		fmt.Printf("🖥  Display Devices (%s)\n", runtime.GOOS)
		fmt.Printf("═══════════════════════════════════════\n\n")

		fbs, err := display.ListFramebuffers()
		if err != nil {
			return fmt.Errorf("failed to list framebuffers: %w", err)
		}
		fmt.Printf("📋 FRAMEBUFFERS (%d found):\n", len(fbs))
		for i, fb := range fbs {
			marker := " "
			if fb.Device == cfg.Display.Framebuffer {
				marker = green.Render("*")
			}
			fmt.Printf(" %s%d. %s %s\n", marker, i+1, bold.Render(fb.Device), gray.Render(fb.Name))
			fmt.Printf("     %dx%d, %d bpp, stride %d\n", fb.Width, fb.Height, fb.BitsPerPixel, fb.Stride)
		}

		inputs, err := display.ListInputDevices()
		if err != nil {
			return fmt.Errorf("failed to list input devices: %w", err)
		}
		fmt.Printf("\n📋 INPUT DEVICES (%d found):\n", len(inputs))
		for i, in := range inputs {
			var roles []string
			if in.Touch {
				roles = append(roles, green.Render("touch"))
			}
			if in.Quit {
				roles = append(roles, "esc")
			}
			fmt.Printf("  %d. %s %s %v\n", i+1, bold.Render(in.Path), gray.Render(in.Name), roles)
		}

		fmt.Printf("\n💡 Usage:\n")
		fmt.Printf("  • Set display.framebuffer to the panel device (current: %s)\n", cfg.Display.Framebuffer)
		fmt.Printf("  • Leave display.touch_device empty to pick the first touch device\n")
		fmt.Printf("  • Registered drivers: %v\n\n", display.Drivers())

		return nil
	},
}
