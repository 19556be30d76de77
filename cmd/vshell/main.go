package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/docopt/docopt-go"
	"golang.org/x/term"

	"github.com/mwantia/vshell"
	"github.com/mwantia/vshell/log"
	"github.com/mwantia/vshell/metrics"
	"github.com/mwantia/vshell/snapshot"
	"github.com/mwantia/vshell/tui"
)

const Version = "0.1.0"

var usage = fmt.Sprintf(`Nested virtual filesystem shell.

Usage:
    vshell [options] [--exec=<line>...]
    vshell -h | --help
    vshell --version

Options:
    -h --help              Show this screen.
    --version              Show version.
    --store=<address>      Snapshot store: memory://, file://<dir>, sqlite://<path>,
                           postgres://..., consul://<host>/<prefix>, s3://<key>:<secret>@<host>/<bucket>
                           [default: file://.vshell]
    --slot=<name>          Snapshot slot [default: %s].
    --host=<host>          Label of the root host [default: localhost].
    --user=<user>          User of the root host [default: admin].
    --log-level=<level>    debug, info, warn or error [default: warn].
    --log-file=<path>      Also write logs into a rotated file.
    --metrics=<address>    Serve prometheus metrics on this address.
    --no-autosave          Only save on 'save' and when the shell ends.
    --no-seed              Start with an empty tree when the slot is empty.
    --tui                  Run the full screen interface.
    -e --exec=<line>       Run a line against the root host instead of reading input.`,
	snapshot.DefaultSlot,
)

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], Version)
	if err != nil {
		panic(err)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "vshell: %v\n", err)
		os.Exit(1)
	}
}

func run(opts docopt.Opts) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	levelName, _ := opts.String("--log-level")
	level, err := log.Parse(levelName)
	if err != nil {
		return err
	}

	lines, _ := opts["--exec"].([]string)
	fullscreen, _ := opts.Bool("--tui")
	fd := int(os.Stdin.Fd())
	interactive := len(lines) == 0 && term.IsTerminal(fd)

	var logOpts []log.LoggerOption
	if file, _ := opts.String("--log-file"); file != "" {
		logOpts = append(logOpts, log.WithFile(file))
	}

	var shellOpts []vshell.ShellOption
	switch {
	case fullscreen:
		bridge := tui.NewBridge()
		logOpts = append(logOpts, log.WithoutTerminal())
		shellOpts = append(shellOpts,
			vshell.WithInput(bridge),
			vshell.WithPrompter(bridge),
			vshell.WithOutput(bridge),
			vshell.WithColor(),
		)
		return start(ctx, opts, log.NewLogger("vshell", level, logOpts...), shellOpts, func(shell *vshell.Shell) error {
			return tui.Run(ctx, shell, bridge)
		})

	case interactive:
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to enter raw mode: %w", err)
		}
		defer term.Restore(fd, state)

		reader := newTerminalReader(os.Stdin, os.Stdout)
		if width, height, err := term.GetSize(fd); err == nil {
			reader.terminal.SetSize(width, height)
		}
		logOpts = append(logOpts, log.WithWriter(reader))
		shellOpts = append(shellOpts,
			vshell.WithInput(reader),
			vshell.WithPrompter(reader),
			vshell.WithOutput(reader),
			vshell.WithColor(),
		)
		return start(ctx, opts, log.NewLogger("vshell", level, logOpts...), shellOpts, func(shell *vshell.Shell) error {
			reader.complete(shell)
			return shell.Run(ctx)
		})

	case len(lines) > 0:
		logOpts = append(logOpts, log.WithWriter(os.Stderr))
		shellOpts = append(shellOpts, vshell.WithOutput(os.Stdout))
		return start(ctx, opts, log.NewLogger("vshell", level, logOpts...), shellOpts, func(shell *vshell.Shell) error {
			for _, line := range lines {
				// Failures are already reported on the output
				shell.Exec(ctx, line)
			}
			return nil
		})

	default:
		reader := newLineReader(os.Stdin)
		logOpts = append(logOpts, log.WithWriter(os.Stderr))
		shellOpts = append(shellOpts,
			vshell.WithInput(reader),
			vshell.WithPrompter(reader),
			vshell.WithOutput(os.Stdout),
		)
		return start(ctx, opts, log.NewLogger("vshell", level, logOpts...), shellOpts, func(shell *vshell.Shell) error {
			return shell.Run(ctx)
		})
	}
}

// start builds the shell around the front end specific options, restores
// or seeds the world, runs the front end and saves once it returns.
func start(ctx context.Context, opts docopt.Opts, logger *log.Logger, shellOpts []vshell.ShellOption, frontend func(*vshell.Shell) error) error {
	address, _ := opts.String("--store")
	slot, _ := opts.String("--slot")
	host, _ := opts.String("--host")
	user, _ := opts.String("--user")

	shellOpts = append(shellOpts,
		vshell.WithLogger(logger),
		vshell.WithStoreAddress(address),
		vshell.WithSlot(slot),
		vshell.WithRootHost(user, host),
	)
	if noAutosave, _ := opts.Bool("--no-autosave"); !noAutosave {
		shellOpts = append(shellOpts, vshell.WithAutoSave())
	}

	if listen, _ := opts.String("--metrics"); listen != "" {
		go serveMetrics(listen, logger.Named("metrics"))
	}

	shell, err := vshell.NewShell(ctx, shellOpts...)
	if err != nil {
		return err
	}
	defer shell.Close(context.WithoutCancel(ctx))

	// A snapshot that fails to load must not be overwritten on exit
	loaded, err := shell.Load(ctx)
	if err != nil {
		return err
	}
	if noSeed, _ := opts.Bool("--no-seed"); !loaded && !noSeed {
		if err := shell.Seed(vshell.SeedDemo); err != nil {
			return err
		}
		logger.Info("Seeded demo tree for '%s'", shell.World().Root().Host)
	}

	runErr := frontend(shell)
	if err := shell.Save(context.WithoutCancel(ctx)); err != nil {
		logger.Error("Failed to save on exit: %v", err)
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}

func serveMetrics(address string, logger *log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	logger.Info("Serving metrics on %s", address)
	if err := http.ListenAndServe(address, mux); err != nil {
		logger.Error("Metrics endpoint stopped: %v", err)
	}
}
