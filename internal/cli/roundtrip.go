package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snapgraph/snapgraph/pkg/document"
	"github.com/snapgraph/snapgraph/pkg/errors"
	"github.com/snapgraph/snapgraph/pkg/host/memhost"
)

// newRoundtripCmd creates the roundtrip command. It restores a document
// onto a fresh in-memory host, captures the result, and diffs the two
// documents. A clean diff means the document survives a full
// restore/capture cycle without losing information.
func newRoundtripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roundtrip <file>",
		Short: "Restore a document and verify it re-captures identically",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoundtrip(cmd, args[0])
		},
	}
}

func runRoundtrip(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, err := document.ReadFile(path)
	if err != nil {
		return err
	}

	h := memhost.New()
	result := newRestorer().Restore(ctx, doc, h)
	if result.SkippedComponents > 0 || result.SkippedConnections > 0 {
		printWarning("Skipped %d components, %d connections",
			result.SkippedComponents, result.SkippedConnections)
	}

	recaptured := newCapturer().Capture(ctx, h)
	diffs := document.Diff(doc, recaptured)
	prog.done(fmt.Sprintf("Round-tripped %d components", len(recaptured.Components)))

	if len(diffs) > 0 {
		for _, d := range diffs {
			printError("%s", d)
		}
		return errors.New(errors.ErrCodeInvalidDocument,
			"%s: %d differences after round trip", path, len(diffs))
	}

	printSuccess("Round trip is lossless")
	printStats(len(recaptured.Components), len(recaptured.Connections), false)
	return nil
}
