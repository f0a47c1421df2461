package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/philipparndt/arfocus/pkg/focus"
	"github.com/philipparndt/arfocus/pkg/geometry"
	"github.com/philipparndt/arfocus/pkg/logging"
	"github.com/philipparndt/arfocus/pkg/resolver"
	"github.com/philipparndt/arfocus/pkg/scenario"
	"github.com/philipparndt/arfocus/pkg/watcher"
	"github.com/spf13/cobra"
)

var (
	replayStep          time.Duration
	replayWatch         bool
	replayInfinitePlane bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [file]",
	Short: "Replay a recording through the focus indicator",
	Long: `Drive the focus indicator over every frame of a recording and print its
state, smoothed transform and appearance per frame. With --watch the replay
runs again whenever the file changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().DurationVar(&replayStep, "step", 0, "animation time per frame (default: recorded frame times)")
	replayCmd.Flags().BoolVar(&replayWatch, "watch", false, "replay again when the file changes")
	replayCmd.Flags().BoolVar(&replayInfinitePlane, "infinite-plane", false, "allow the infinite plane to win over feature hits")
}

func runReplay(cmd *cobra.Command, args []string) error {
	filename := args[0]
	out := cmd.OutOrStdout()

	if err := replayFile(out, filename); err != nil {
		return err
	}
	if !replayWatch {
		return nil
	}

	fw, err := watcher.NewFileWatcher(200 * time.Millisecond)
	if err != nil {
		return err
	}
	defer fw.Close()

	err = fw.Watch([]string{filename}, replayOnChange(out, cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	fmt.Fprintf(out, "\nWatching %s (Ctrl+C to stop)\n", filename)
	if err := fw.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// replayOnChange returns a watch callback that replays the changed file.
// Callbacks run one at a time so their output never interleaves.
func replayOnChange(out, errOut io.Writer) func(string) {
	var mu sync.Mutex
	return func(path string) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Fprintf(out, "\n%s changed, replaying\n\n", path)
		if err := replayFile(out, path); err != nil {
			logging.Logger().Error("replay failed", "path", path, "error", err)
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
	}
}

func replayFile(out io.Writer, filename string) error {
	s, err := scenario.Parse(filename)
	if err != nil {
		return err
	}
	player, err := scenario.NewPlayer(s)
	if err != nil {
		return err
	}

	indicator := focus.NewIndicator(cfg.FocusOptions())
	controller := focus.NewController(player, resolver.New(cfg.ResolverConfig()), indicator)
	controller.SetAllowInfinitePlane(replayInfinitePlane)
	screen := s.Screen()
	controller.SetScreenPoint(&screen)

	fmt.Fprintf(out, "Replaying %s (%d frames)\n", displayName(s, filename), player.Len())
	fmt.Fprintf(out, "%5s %9s %-13s %-15s %-6s %-28s %7s %6s %-7s %5s\n",
		"frame", "time", "tracking", "source", "state", "position", "yaw", "scale", "phase", "alpha")

	var last time.Duration
	for {
		frame, _ := player.CurrentFrame()
		dt := replayStep
		if dt == 0 && frame != nil {
			dt = frame.Timestamp - last
			last = frame.Timestamp
		}

		res := controller.Tick(dt)
		printTick(out, player.Index(), res)

		if !player.Next() {
			break
		}
	}
	return nil
}

func printTick(out io.Writer, index int, res focus.TickResult) {
	position := "-"
	if res.HasPose {
		position = formatVector(res.Pose.Position)
	}
	state := res.State.String()
	if !res.Appearance.Visible {
		state = "hidden"
	}
	marker := ""
	if res.Transition.Flash {
		marker = " *flash*"
	}

	fmt.Fprintf(out, "%5d %9s %-13s %-15s %-6s %-28s %6.1f° %6.3f %-7s %5.2f%s\n",
		index, res.Timestamp, res.Tracking, res.Resolved.Source, state, position,
		geometry.Degrees(res.Pose.Yaw), res.Pose.Scale, res.Appearance.Phase, res.Appearance.Ambient, marker)
}

func displayName(s *scenario.Scenario, filename string) string {
	if s.Name != "" {
		return s.Name
	}
	return filename
}
