package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snapgraph/snapgraph/pkg/document"
	"github.com/snapgraph/snapgraph/pkg/host"
	"github.com/snapgraph/snapgraph/pkg/host/memhost"
)

// newDemoCmd creates the demo command. It builds a small graph on the
// in-memory host, captures it, and writes the resulting document. The
// output is a convenient starting point for the other commands.
func newDemoCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write a sample captured document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "demo.json", "output file")
	return cmd
}

func runDemo(cmd *cobra.Command, output string) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	h := memhost.New()
	slider, err := h.AddByName("Number Slider")
	if err != nil {
		return err
	}
	if s, ok := slider.(host.SliderNode); ok {
		if err := s.SetFromPacked("3;0;10;2.5"); err != nil {
			return err
		}
	}
	add, err := h.AddByName("Addition")
	if err != nil {
		return err
	}
	panel, err := h.AddByName("Panel")
	if err != nil {
		return err
	}
	if err := panel.SetPropertyValue("UserText", "sum"); err != nil {
		return err
	}

	wires := []struct{ from, fromParam, to, toParam string }{
		{slider.ID(), "Value", add.ID(), "A"},
		{slider.ID(), "Value", add.ID(), "B"},
		{add.ID(), "Result", panel.ID(), "Input"},
	}
	for _, w := range wires {
		err := h.Connect(
			host.Endpoint{NodeID: w.from, Parameter: w.fromParam},
			host.Endpoint{NodeID: w.to, Parameter: w.toParam},
		)
		if err != nil {
			return err
		}
	}

	doc := newCapturer().Capture(cmd.Context(), h)
	if err := document.WriteFile(doc, output); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Captured %d components", len(doc.Components)))

	printSuccess("Wrote sample document")
	printFile(output)
	printStats(len(doc.Components), len(doc.Connections), false)
	printNextStep("Validate it", "snapgraph validate "+output)
	return nil
}
