package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tessel"
	"github.com/vango-dev/tessel/pkg/components"
	"github.com/vango-dev/tessel/pkg/devtools"
	"github.com/vango-dev/tessel/pkg/event"
	"github.com/vango-dev/tessel/pkg/toast"
)

func demoCmd() *cobra.Command {
	var (
		dir      string
		devAddr  string
		maxFPS   int
		noMouse  bool
		noAltScr bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive demo",
		Long: `Run a small todo app built from the bundled components.

Keys:
  tab / shift+tab   move focus
  up / down, enter  select and toggle todos
  ?                 show help
  q, ctrl+c         quit

Examples:
  tessel demo
  tessel demo --devtools 127.0.0.1:7070
  tessel demo --fps 30 --no-mouse`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := tessel.ConfigFromFile(dir)
			if err != nil {
				return err
			}
			defer closeLog()

			if devAddr != "" {
				cfg.DevtoolsAddr = devAddr
			}
			if maxFPS != 0 {
				cfg.MaxFPS = maxFPS
			}
			if noMouse {
				cfg.Mouse = false
			}
			if noAltScr {
				cfg.AltScreen = false
			}
			return runDemo(cfg)
		},
	}

	cmd.Flags().StringVarP(&dir, "config", "c", ".", "Directory holding tessel.json")
	cmd.Flags().StringVar(&devAddr, "devtools", "", "Serve devtools on this address")
	cmd.Flags().IntVar(&maxFPS, "fps", 0, "Redraw cap (default from tessel.json)")
	cmd.Flags().BoolVar(&noMouse, "no-mouse", false, "Disable mouse reporting")
	cmd.Flags().BoolVar(&noAltScr, "no-alt-screen", false, "Draw in the main screen buffer")

	return cmd
}

func runDemo(cfg tessel.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := console{os.Stdout}
	out.banner()
	app := tessel.New(cfg)

	if cfg.DevtoolsAddr != "" {
		out.info("devtools on http://%s", cfg.DevtoolsAddr)
		srv := devtools.New(app, devtools.WithLogger(app.Logger()))
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.DevtoolsAddr); err != nil {
				app.Logger().Error("tessel: devtools stopped", "error", err)
			}
		}()
	}

	err := app.Run(ctx, tessel.NewTerminal(cfg), demoView(app))
	if stderrors.Is(err, context.Canceled) {
		return nil
	}
	if err == nil {
		stats := app.Stats()
		out.info("%d frames, %d invalidations", stats.Frames, stats.Invalidations)
	}
	return err
}

// =============================================================================
// Demo View
// =============================================================================

type todo struct {
	ID    int
	Title string
	Done  bool
}

func demoView(app *tessel.App) *tessel.View {
	return tessel.Component(func() *tessel.View {
		todos := tessel.NewSignal([]todo{
			{ID: 1, Title: "Read the docs"},
			{ID: 2, Title: "Try the devtools", Done: true},
		})
		nextID := 3
		draft := tessel.NewSignal("")
		selected := tessel.NewSignal("")
		tab := tessel.NewSignal(0)
		help := tessel.NewSignal(false)
		toasts := toast.NewStack()
		tessel.OnCleanup(toasts.Clear)

		add := func(title string) {
			if title == "" {
				return
			}
			id := nextID
			nextID++
			tessel.Batch(func() {
				todos.Update(func(ts []todo) []todo {
					return append(append([]todo(nil), ts...), todo{ID: id, Title: title})
				})
				draft.Set("")
			})
			toasts.Info("added " + title)
		}
		toggle := func(t todo) {
			todos.Update(func(ts []todo) []todo {
				out := append([]todo(nil), ts...)
				for i := range out {
					if out[i].ID == t.ID {
						out[i].Done = !out[i].Done
					}
				}
				return out
			})
		}
		clearDone := func() {
			cleared := 0
			todos.Update(func(ts []todo) []todo {
				var out []todo
				for _, t := range ts {
					if !t.Done {
						out = append(out, t)
					}
				}
				cleared = len(ts) - len(out)
				return out
			})
			if cleared == 0 {
				toasts.Warning("nothing to clear")
				return
			}
			toasts.Success(fmt.Sprintf("cleared %d", cleared))
		}

		remaining := tessel.NewMemo(func() int {
			n := 0
			for _, t := range todos.Get() {
				if !t.Done {
					n++
				}
			}
			return n
		})

		todoTab := tessel.Col(
			tessel.Row(
				tessel.Constraint(tessel.Length(1)),
				tessel.Text("New: ", tessel.Constraint(tessel.Length(5))),
				components.Input(draft, add, tessel.ID("draft")),
			),
			// Rows are keyed by id and not re-rendered while the key
			// persists, so the title text reads the current list.
			components.List(components.ListConfig[todo]{
				Items: todos.Get,
				Key:   func(t todo) string { return strconv.Itoa(t.ID) },
				Render: func(t todo, sel bool) *tessel.View {
					return tessel.Dyn(func() *tessel.View {
						return tessel.Text(todoLine(todos.Get(), t.ID, sel))
					})
				},
				Selected:   selected,
				OnActivate: toggle,
			}, tessel.ID("todos")),
			tessel.Row(
				tessel.Constraint(tessel.Length(1)),
				tessel.Dyn(func() *tessel.View {
					return tessel.Text(fmt.Sprintf("%d left", remaining.Get()))
				}),
				components.Button("Clear done", clearDone, tessel.ID("clear")),
			),
		)

		aboutTab := tessel.Col(
			tessel.Row(
				tessel.Constraint(tessel.Length(1)),
				components.Spinner(nil, 0, tessel.Constraint(tessel.Length(2))),
				tessel.Text("Rendering with tessel "+version),
			),
			tessel.Dyn(func() *tessel.View {
				return tessel.Text("focus: " + string(app.FocusedID().Get()))
			}),
		)

		return tessel.Col(
			tessel.Name("demo"),
			tessel.OnKeyDown(func(k event.Key, h *event.Handle) {
				switch {
				case k.Matches("q"):
					h.StopPropagation()
					app.Quit()
				case k.Matches("?"):
					h.StopPropagation()
					help.Set(true)
				}
			}),
			components.Tabs([]string{"Todo", "About"}, tab, func(i int) *tessel.View {
				if i == 1 {
					return aboutTab
				}
				return todoTab
			}),
			components.Popup(help, tessel.Col(
				tessel.Text(" tab    move focus"),
				tessel.Text(" enter  toggle"),
				tessel.Text(" q      quit"),
				tessel.Text(" esc    close"),
			), 24, 4, tessel.ID("help")),
			tessel.Col(
				tessel.Name("status"),
				tessel.Constraint(tessel.Length(toast.DefaultMaxVisible)),
				toasts.View(24),
			),
		)
	})
}

func todoLine(ts []todo, id int, selected bool) string {
	for _, t := range ts {
		if t.ID != id {
			continue
		}
		mark := "[ ]"
		if t.Done {
			mark = "[x]"
		}
		cursor := "  "
		if selected {
			cursor = "> "
		}
		return cursor + mark + " " + t.Title
	}
	return ""
}
