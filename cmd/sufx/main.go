package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/sufx/internal/config"
	"github.com/funvibe/sufx/internal/lexer"
	"github.com/funvibe/sufx/internal/object"
	"github.com/funvibe/sufx/internal/parser"
	"github.com/funvibe/sufx/internal/vm"
	sufx "github.com/funvibe/sufx/pkg/embed"
	"github.com/funvibe/sufx/pkg/packs"
)

const prompt = "sufx> "

func main() {
	backendFlag := flag.String("backend", "", "registration backend (table-patch, slot-rewrite, hook)")
	packsFlag := flag.String("packs", "", "comma separated packs to enable")
	disasmFlag := flag.Bool("disasm", false, "print bytecode instead of evaluating")
	flag.Parse()

	if err := run(*backendFlag, *packsFlag, *disasmFlag, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "sufx:", err)
		os.Exit(1)
	}
}

func run(backendName, packNames string, disasm bool, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	if backendName != "" {
		cfg.Backend = backendName
	}

	rt, err := sufx.New(sufx.WithBackend(cfg.Backend))
	if err != nil {
		return err
	}

	names := cfg.Packs
	if packNames != "" {
		names = strings.Split(packNames, ",")
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		pack, ok := packs.ByName(name)
		if !ok {
			return fmt.Errorf("unknown pack %q", name)
		}
		if _, err := packs.Enable(rt.Registry(), pack); err != nil {
			return fmt.Errorf("enabling pack %q: %w", name, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if len(args) > 0 {
		return runFile(ctx, rt, args[0], disasm)
	}
	return repl(ctx, rt)
}

func runFile(ctx context.Context, rt *sufx.Runtime, path string, disasm bool) error {
	if disasm {
		return printDisasm(path)
	}
	result, err := rt.EvalFile(ctx, path)
	if err != nil {
		return err
	}
	if result != nil && result != object.TheNone {
		fmt.Fprintln(rt.Output(), result.Inspect())
	}
	return nil
}

func printDisasm(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	p := parser.New(lexer.New(string(data)))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return fmt.Errorf("%s: parse failed:\n  %s", path, strings.Join(errs, "\n  "))
	}
	program.File = path
	chunk, err := vm.NewCompiler().Compile(program)
	if err != nil {
		return err
	}
	fmt.Print(vm.Disassemble(chunk))
	return nil
}

func repl(ctx context.Context, rt *sufx.Runtime) error {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	scanner := bufio.NewScanner(os.Stdin)

	for {
		if interactive {
			fmt.Print(prompt)
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if interactive && (line == "exit" || line == "quit") {
			break
		}

		result, err := rt.Eval(ctx, line)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		if result != object.TheNone {
			fmt.Fprintln(rt.Output(), result.Inspect())
		}
	}
	return scanner.Err()
}
