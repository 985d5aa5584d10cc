package cli

import (
	"github.com/snapgraph/snapgraph/pkg/capture"
	"github.com/snapgraph/snapgraph/pkg/codec"
	"github.com/snapgraph/snapgraph/pkg/host/memhost"
	"github.com/snapgraph/snapgraph/pkg/restore"
	"github.com/snapgraph/snapgraph/pkg/validate"
)

// The CLI works against the in-memory reference host. Every command
// shares one codec registry and one property descriptor table so that
// whatever capture writes the other commands can read.

func newCapturer() *capture.Capturer {
	return capture.New(codec.Default(), memhost.Descriptors())
}

func newValidator() *validate.Validator {
	return validate.New(codec.Default(), memhost.New().Types())
}

func newRestorer() *restore.Restorer {
	return restore.New(codec.Default(), memhost.Descriptors())
}
