// Package cli implements the interactive dataset menu.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/couchcryptid/disaster-map/internal/domain"
)

// Visualizer runs one fetch-and-render cycle for a chosen source.
type Visualizer interface {
	Visualize(ctx context.Context, source domain.PointSource) (string, error)
}

// Menu prints numbered dataset choices, dispatches selections to the
// visualizer, and re-prompts until the user exits. A loader failure is
// reported as a readable message, never as a session-ending error.
type Menu struct {
	in      io.Reader
	out     io.Writer
	viz     Visualizer
	sources []domain.PointSource
	logger  *slog.Logger
}

// NewMenu creates a menu over the given sources, presented in order.
func NewMenu(in io.Reader, out io.Writer, viz Visualizer, sources []domain.PointSource, logger *slog.Logger) *Menu {
	return &Menu{
		in:      in,
		out:     out,
		viz:     viz,
		sources: sources,
		logger:  logger,
	}
}

// Run drives the prompt loop until the user picks the exit option, input
// reaches EOF, or the context is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	fmt.Fprintln(m.out, "Global Disaster Visualization")
	m.printOptions()

	scanner := bufio.NewScanner(m.in)
	exitChoice := strconv.Itoa(len(m.sources) + 1)

	for {
		fmt.Fprintf(m.out, "Enter your choice (1-%d): ", len(m.sources)+1)
		if !scanner.Scan() {
			fmt.Fprintln(m.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		choice := strings.TrimSpace(scanner.Text())
		if choice == exitChoice {
			fmt.Fprintln(m.out, "Exiting.")
			return nil
		}

		idx, err := strconv.Atoi(choice)
		if err != nil || idx < 1 || idx > len(m.sources) {
			fmt.Fprintf(m.out, "Invalid choice. Please enter a number between 1 and %d.\n", len(m.sources)+1)
			continue
		}

		m.dispatch(ctx, m.sources[idx-1])
	}
}

func (m *Menu) printOptions() {
	for i, src := range m.sources {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, src.Title())
	}
	fmt.Fprintf(m.out, "%d. Exit\n", len(m.sources)+1)
}

func (m *Menu) dispatch(ctx context.Context, source domain.PointSource) {
	path, err := m.viz.Visualize(ctx, source)
	if err != nil {
		fmt.Fprintln(m.out, failureMessage(source, err))
		return
	}
	fmt.Fprintf(m.out, "Plot saved as %s\n", path)
}

// failureMessage translates a loader failure kind into a sentence for the
// user. Technical detail stays in the logs.
func failureMessage(source domain.PointSource, err error) string {
	switch {
	case errors.Is(err, domain.ErrParseFailed):
		return fmt.Sprintf("The %s feed returned data that could not be understood.", source.Name())
	case errors.Is(err, domain.ErrNoData):
		return fmt.Sprintf("No %s data available to plot.", source.Name())
	case errors.Is(err, domain.ErrFetchFailed):
		return fmt.Sprintf("Could not reach the %s feed. Check your connection and try again.", source.Name())
	default:
		return fmt.Sprintf("Could not produce the %s plot: %v", source.Name(), err)
	}
}
