// Peruse is a read-only terminal file viewer. It renders a scrollable
// viewport over a file using VT100 escape sequences and decodes raw
// keyboard input itself, with no curses layer in between.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"peruse/buffer"
	"peruse/config"
	"peruse/term"
	"peruse/view"
)

const version = "0.1.0"

func main() {
	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		logPath    string
	)

	cmd := &cobra.Command{
		Use:           "peruse [file]",
		Short:         "View a text file in the terminal",
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			ctx, closeLog, err := setupLogger(cmd.Context(), logPath)
			if err != nil {
				return err
			}
			defer closeLog()
			return run(ctx, path, configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/peruse/config.yaml)")
	cmd.Flags().StringVar(&logPath, "log", "", "append structured debug logs to this file")
	return cmd
}

// setupLogger binds a structured logger to the context. A raw-mode
// program owns the terminal, so logs go to a file or nowhere at all.
func setupLogger(ctx context.Context, logPath string) (context.Context, func(), error) {
	if logPath == "" {
		logger := pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured})
		return pslog.ContextWithLogger(ctx, logger), func() {}, nil
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return ctx, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := pslog.NewWithOptions(f, pslog.Options{Mode: pslog.ModeStructured})
	return pslog.ContextWithLogger(ctx, logger), func() { f.Close() }, nil
}

func run(ctx context.Context, path, configPath string) error {
	log := pslog.Ctx(ctx)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	quitKey, err := config.ParseBinding(cfg.Keys.Quit)
	if err != nil {
		return err
	}

	buf := buffer.New()
	if path != "" {
		buf, err = buffer.Open(path)
		if err != nil {
			return err
		}
		log.Info("file loaded", "path", path, "lines", buf.Len())
	}

	t, err := term.New(os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	if err := t.EnterRawMode(cfg.Input.TimeoutTenths); err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer func() {
		// Clear whatever frame is on screen before handing the
		// terminal back, on every exit path.
		t.Output().WriteString(term.ClearScreen + term.CursorHome)
		if err := t.RestoreMode(); err != nil {
			log.Error("terminal restore failed", "err", err)
		}
	}()

	rows, cols, err := t.Size()
	if err != nil {
		return fmt.Errorf("detecting terminal size: %w", err)
	}
	log.Info("startup", "rows", rows, "cols", cols, "quit", cfg.Keys.Quit)

	welcome := ""
	if cfg.View.Banner {
		welcome = fmt.Sprintf("Peruse viewer -- version %s", version)
	}
	renderer := view.NewRenderer(rows, cols, welcome)
	decoder := term.NewDecoder(t.Input())

	cur := view.Cursor{}
	off := view.Offset{}
	for {
		off = view.Scroll(cur, off, rows)
		if err := renderer.Render(t.Output(), buf, cur, off); err != nil {
			return err
		}

		key, err := decoder.ReadKey()
		if err != nil {
			return err
		}
		if key == quitKey {
			log.Info("quit")
			return nil
		}
		cur = view.Move(key, cur, buf, rows)
	}
}
