package main

import (
	"fmt"

	"github.com/philipparndt/arfocus/pkg/geometry"
	"github.com/philipparndt/arfocus/pkg/scenario"
	"github.com/philipparndt/arfocus/pkg/tracking"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a recording",
	Long:  "Show frame count, duration, feature and plane statistics, tracking quality and light estimates.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	s, err := scenario.Parse(filename)
	if err != nil {
		return err
	}
	result, err := scenario.Summarize(s)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Recording Information")
	fmt.Fprintln(out, "=====================")
	if result.Name != "" {
		fmt.Fprintf(out, "Name: %s\n", result.Name)
	}
	fmt.Fprintf(out, "File: %s\n\n", filename)

	vp := s.ViewportSize()
	fmt.Fprintln(out, "Session:")
	fmt.Fprintf(out, "  Frames: %d\n", result.FrameCount)
	fmt.Fprintf(out, "  Duration: %s\n", result.Duration)
	fmt.Fprintf(out, "  Viewport: %.0fx%.0f\n", vp.Width, vp.Height)
	fmt.Fprintf(out, "  Field of view: %.1f°\n", geometry.Degrees(s.FieldOfView()))
	fmt.Fprintf(out, "  Frames without camera: %d\n\n", result.FramesNoCamera)

	fmt.Fprintln(out, "Tracking:")
	for _, state := range []tracking.State{tracking.Normal, tracking.Limited, tracking.NotAvailable} {
		fmt.Fprintf(out, "  %s: %d\n", state, result.TrackingStates[state])
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Feature Points:")
	fmt.Fprintf(out, "  Per frame: min %d, max %d, avg %.1f\n", result.MinFeatures, result.MaxFeatures, result.AvgFeatures)
	if result.HasFeatures {
		fmt.Fprintf(out, "  Min: %s\n", formatVector(result.FeatureBounds.Min))
		fmt.Fprintf(out, "  Max: %s\n", formatVector(result.FeatureBounds.Max))
		fmt.Fprintf(out, "  Center: %s\n", formatVector(result.FeatureBounds.Center()))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Planes:")
	fmt.Fprintf(out, "  Distinct: %d\n", result.PlaneCount)
	fmt.Fprintf(out, "  Largest area: %.3f m²\n", result.MaxPlaneArea)

	if result.HasLight {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Light:")
		fmt.Fprintf(out, "  Ambient: %.0f - %.0f lm\n", result.MinAmbient, result.MaxAmbient)
	}
	return nil
}

func formatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}
