package main

import (
	"fmt"

	"github.com/philipparndt/arfocus/pkg/geometry"
	"github.com/philipparndt/arfocus/pkg/resolver"
	"github.com/philipparndt/arfocus/pkg/scenario"
	"github.com/philipparndt/arfocus/pkg/viewer"
	"github.com/spf13/cobra"
)

var (
	resolveFrame         int
	resolveX, resolveY   float64
	resolveRefY          float64
	resolveInfinitePlane bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [file]",
	Short: "Resolve the world position under a screen point",
	Long: `Run the world-position resolver on one frame of a recording.
Without --x/--y the recording's screen point, or the viewport center, is used.
Planes win over feature points, which win over the infinite ground plane.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().IntVar(&resolveFrame, "frame", 0, "frame index")
	resolveCmd.Flags().Float64Var(&resolveX, "x", 0, "screen X in pixels")
	resolveCmd.Flags().Float64Var(&resolveY, "y", 0, "screen Y in pixels")
	resolveCmd.Flags().Float64Var(&resolveRefY, "ref-y", 0, "height of the infinite plane")
	resolveCmd.Flags().BoolVar(&resolveInfinitePlane, "infinite-plane", false, "allow the infinite plane to win over feature hits")

	resolveCmd.MarkFlagsRequiredTogether("x", "y")
}

func runResolve(cmd *cobra.Command, args []string) error {
	filename := args[0]

	s, err := scenario.Parse(filename)
	if err != nil {
		return err
	}
	frame, err := s.TrackingFrame(resolveFrame)
	if err != nil {
		return err
	}

	screen := s.Screen()
	if cmd.Flags().Changed("x") {
		screen = viewer.ScreenPoint{X: resolveX, Y: resolveY}
	}
	var ref *geometry.Vector3
	if cmd.Flags().Changed("ref-y") {
		r := geometry.NewVector3(0, resolveRefY, 0)
		ref = &r
	}

	res := resolver.New(cfg.ResolverConfig()).Resolve(frame, screen, ref, resolveInfinitePlane)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "World Position")
	fmt.Fprintln(out, "==============")
	fmt.Fprintf(out, "Frame: %d (t=%s, tracking %s)\n", resolveFrame, frame.Timestamp, frame.Tracking)
	fmt.Fprintf(out, "Screen point: (%.1f, %.1f)\n", screen.X, screen.Y)
	if ray, ok := frame.Camera.Ray(screen); ok {
		fmt.Fprintf(out, "Ray: %s -> %s\n", formatVector(ray.Origin), formatVector(ray.Direction))
	}
	fmt.Fprintln(out)

	if !res.Found() {
		fmt.Fprintln(out, "No position resolved")
		return nil
	}

	fmt.Fprintf(out, "Source: %s\n", res.Source)
	fmt.Fprintf(out, "Position: %s\n", formatVector(*res.Position))
	fmt.Fprintf(out, "Hit plane: %t\n", res.HitPlane)
	if res.Plane != nil {
		fmt.Fprintf(out, "Plane: %s (height %.4f)\n", res.Plane.ID, res.Plane.Height())
	}
	if frame.Camera != nil {
		fmt.Fprintf(out, "Distance: %.4f m\n", res.Position.Distance(frame.Camera.Position()))
	}
	return nil
}
