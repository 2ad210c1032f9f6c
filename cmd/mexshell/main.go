// mexshell drives mexbind dispatchers from a class manifest: construct an
// instance, run actions against it, and watch the handle lifecycle. Useful
// for poking at a class backend without a scripting host attached.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/mexbind"
	"github.com/wippyai/mexbind/dispatch"
	"github.com/wippyai/mexbind/examples/demo"
	"github.com/wippyai/mexbind/registry"
	"github.com/wippyai/mexbind/wasmclass"
)

type shell struct {
	dispatchers map[string]*dispatch.Dispatcher
	residency   *registry.Residency
	closers     []func()
	order       []string
}

func main() {
	var (
		configPath  = flag.String("config", "mexshell.toml", "Path to class manifest")
		className   = flag.String("class", "", "Class to drive in one-shot mode")
		list        = flag.Bool("list", false, "List configured classes and exit")
		nout        = flag.Int("nout", 1, "Number of outputs to request in one-shot mode")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *verbose || cfg.LogLevel == "debug" {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync() //nolint:errcheck
		dispatch.SetLogger(log)
	}

	sh, err := newShell(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer sh.close()

	switch {
	case *list:
		for _, name := range sh.order {
			fmt.Println(name)
		}

	case *interactive:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(sh); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case *className != "":
		if err := sh.oneShot(*className, *nout, flag.Args()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintln(os.Stderr, "Usage: mexshell -config <manifest.toml> -list")
		fmt.Fprintln(os.Stderr, "       mexshell -config <manifest.toml> -class <name> <action> [args...]")
		fmt.Fprintln(os.Stderr, "       mexshell -config <manifest.toml> -i  (interactive mode)")
		os.Exit(1)
	}
}

// newShell builds one dispatcher per configured class. All dispatchers
// share a single residency lock, mirroring one compiled module hosting
// several classes.
func newShell(cfg fileConfig) (*shell, error) {
	sh := &shell{
		dispatchers: make(map[string]*dispatch.Dispatcher, len(cfg.Classes)),
		residency:   &registry.Residency{},
	}

	for _, c := range cfg.Classes {
		var d *dispatch.Dispatcher
		switch c.Kind {
		case kindDemo:
			d = demo.NewDispatcher(dispatch.WithResidency(sh.residency))

		case kindWasm:
			data, err := os.ReadFile(c.Path)
			if err != nil {
				sh.close()
				return nil, fmt.Errorf("class %s: %w", c.Name, err)
			}
			mod, err := wasmclass.Load(context.Background(), c.Name, data)
			if err != nil {
				sh.close()
				return nil, fmt.Errorf("class %s: %w", c.Name, err)
			}
			sh.closers = append(sh.closers, func() { mod.Close(context.Background()) }) //nolint:errcheck
			d = dispatch.New(c.Name, mod.Constructor(), dispatch.WithResidency(sh.residency))
		}

		sh.dispatchers[c.Name] = d
		sh.order = append(sh.order, c.Name)
	}
	return sh, nil
}

func (sh *shell) close() {
	for _, d := range sh.dispatchers {
		d.Registry().Close() //nolint:errcheck
	}
	for _, fn := range sh.closers {
		fn()
	}
}

// oneShot constructs an instance, runs a single action, and destroys the
// instance again.
func (sh *shell) oneShot(class string, nout int, args []string) error {
	d, ok := sh.dispatchers[class]
	if !ok {
		return fmt.Errorf("class %q is not in the manifest", class)
	}
	if len(args) == 0 {
		return fmt.Errorf("one-shot mode needs an action name")
	}

	obj := mexbind.NewObject(class)
	if _, err := d.Dispatch(1, obj); err != nil {
		return err
	}
	defer d.Dispatch(0, obj, mexbind.ActionDelete) //nolint:errcheck

	in := make([]any, 0, len(args)+1)
	in = append(in, any(obj), any(args[0]))
	for _, a := range args[1:] {
		in = append(in, parseArg(a))
	}

	out, err := d.Dispatch(nout, in...)
	if err != nil {
		return err
	}
	for _, v := range out {
		fmt.Printf("%v\n", v)
	}
	return nil
}

// parseArg turns a command-line token into a host value: numbers become
// float64 (the scripting-host convention), everything else stays a string.
func parseArg(s string) any {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
