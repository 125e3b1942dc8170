package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	xdomtest "github.com/go-drift/xdom/pkg/testing"
	"github.com/go-drift/xdom/pkg/xdom"
)

var (
	renderFrames int
	renderClicks []string
)

func init() {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Run the demo offline and print its HTML",
		Long: `Run the demo application on a manually stepped frame clock and print
the resulting HTML.

Each --click dispatches a click on the element with that id, followed by one
frame. --frames more frames run afterwards.

Examples:
  xdom render
  xdom render --click inc --click inc --click toggle
  xdom render --click add --frames 20`,
		Args: cobra.NoArgs,
		RunE: runRender,
	}
	cmd.Flags().IntVar(&renderFrames, "frames", 3, "frames to run after the clicks")
	cmd.Flags().StringArrayVar(&renderClicks, "click", nil, "id of an element to click (repeatable)")
	RegisterCommand(cmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderFrames < 0 {
		return fmt.Errorf("--frames must not be negative (got %d)", renderFrames)
	}

	clock := xdomtest.NewManualFrameClock()
	rt, err := xdom.New(clock, resolved.Scheduler)
	if err != nil {
		return err
	}
	defer rt.Close()

	app := newDemo(rt, resolved.AppName)
	rt.Start()

	interval := resolved.Scheduler.FrameInterval
	for _, id := range renderClicks {
		if err := app.click(id); err != nil {
			return err
		}
		clock.Frame(interval)
	}
	clock.Frames(renderFrames, interval)

	out, err := rt.Render()
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	stats := rt.Stats()
	logger.WithFields(logrus.Fields{
		"frames":       stats.Frames,
		"shadow_nodes": stats.ShadowNodes,
		"bound":        stats.BoundObjects,
		"light_bound":  stats.LightBoundObjects,
		"recurring":    stats.RecurringUpdates,
	}).Debug("render finished")

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
