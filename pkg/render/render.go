// Package render defines the static-view renderer collaborator used to
// produce HTML artifacts from stamped notebooks.
package render

import (
	"os/exec"

	"github.com/pkg/errors"

	"github.com/handin-io/handin/pkg/logging"
)

// Renderer produces a static view of the document at a source path, writing
// the result to an output path.
type Renderer interface {
	// Render converts the document at source into a static artifact at
	// output.
	Render(source, output string) error
}

// NBConvert is a Renderer that shells out to the Jupyter nbconvert tool.
type NBConvert struct {
	// Command is the converter entry point. If empty, "jupyter" is used.
	Command string
	// Logger is the logger to use for converter output. It may be nil.
	Logger *logging.Logger
}

// Render implements Renderer.Render by invoking nbconvert's HTML exporter.
func (c *NBConvert) Render(source, output string) error {
	// Determine the command name.
	name := c.Command
	if name == "" {
		name = "jupyter"
	}

	// Set up the conversion process, forwarding converter output to the
	// logger.
	converter := exec.Command(name, "nbconvert", "--to", "html", source, "--output", output)
	converter.Stdout = c.Logger.Writer()
	converter.Stderr = c.Logger.Writer()

	// Run the conversion.
	if err := converter.Run(); err != nil {
		return errors.Wrap(err, "converter failed")
	}

	// Success.
	return nil
}
