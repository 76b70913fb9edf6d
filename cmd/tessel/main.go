package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vango-dev/tessel/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔╦╗┌─┐┌─┐┌─┐┌─┐┬
   ║ ├┤ └─┐└─┐├┤ │
   ╩ └─┘└─┘└─┘└─┘┴─┘
`

func main() {
	if err := rootCmd().Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tessel",
		Short: "A reactive runtime for terminal interfaces",
		Long: `Tessel renders reactive views into the terminal.

Views are mounted into a node tree that is laid out, painted and
redrawn only when a signal they read changes. Features include:

  • Keyed list reconciliation
  • Focus traversal and event bubbling
  • Overlays with z-ordering
  • Paced redraws
  • A devtools server for inspecting a running app`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		demoCmd(),
		configCmd(),
		versionCmd(),
	)
	return cmd
}

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

// console writes the CLI's human-facing messages.
type console struct{ w io.Writer }

func (c console) banner() { fmt.Fprint(c.w, dimStyle.Render(banner)+"\n") }

func (c console) success(format string, args ...any) { c.line(okStyle.Render("✓"), format, args) }

func (c console) info(format string, args ...any) { c.line(" ", format, args) }

func (c console) warn(format string, args ...any) { c.line(warnStyle.Render("⚠"), format, args) }

func (c console) line(mark, format string, args []any) {
	fmt.Fprintf(c.w, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// reportError prints err to w, as a full report when it carries a code.
func reportError(w io.Writer, err error) {
	var coded *errors.Error
	if stderrors.As(err, &coded) && coded.Code != "" {
		fmt.Fprint(w, coded.Format())
		return
	}
	fmt.Fprintf(w, "%s %s\n", errStyle.Render("Error:"), err)
}
