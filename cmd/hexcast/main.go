// Command hexcast runs a hex pattern-VM program, either straight through or
// one step at a time under an interactive debugger.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/astavie/hexcast/env"
	"github.com/astavie/hexcast/hexvm"
)

var (
	program = flag.String("program", "", "path to a file of newline-separated pattern strings (dir,angleChars)")
	debug   = flag.Bool("debug", false, "drop into the interactive debugger instead of running straight through")
	caster  = flag.String("caster", "Caster", "name of the entity bound as the program's caster")
)

func loadProgram(path string, registry *hexvm.Registry) ([]hexvm.Iota, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var iotas []hexvm.Iota
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		shape, err := hexvm.ParseHexPattern(line)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", line, err)
		}
		if p, ok := registry.Lookup(shape); ok {
			iotas = append(iotas, p)
		} else {
			iotas = append(iotas, &hexvm.Pattern{Shape: shape, Name: "unregistered pattern"})
		}
	}
	return iotas, scanner.Err()
}

// renderStack renders a stack snapshot using the display grammar (§6.5),
// reusing List's own comma-adjacency rule by wrapping the stack in one.
func renderStack(stack []hexvm.Iota) string {
	return hexvm.Render(hexvm.NewList(stack...))
}

// debugger runs one program under an interactive stepper, modelled on the
// teacher's single-step-and-print REPL: 's' steps, 'p' prints the current
// stack/frame state, 'q' quits.
func debugger(vm *hexvm.VM, environment hexvm.Environment, iotas []hexvm.Iota) {
	fmt.Println("hexcast debugger, 'q' to quit")
	in := bufio.NewReader(os.Stdin)
	next := 0
	for {
		fmt.Print(">> ")
		line, err := in.ReadString('\n')
		if err != nil {
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "s", "step":
			n := 1
			if len(args) > 1 {
				if v, err := strconv.Atoi(args[1]); err == nil {
					n = v
				}
			}
			end := next + n
			if end > len(iotas) {
				end = len(iotas)
			}
			// vm.Run drains frame work to quiescence around each external
			// iota; calling Execute directly here would leave a program's
			// Hermes'/Thoth's/Iris' Gambit frames unevaluated.
			for _, result := range vm.Run(environment, iotas[next:end]...) {
				if result.Mishap != nil {
					fmt.Printf("mishap: %s\n", result.Mishap.Message)
				}
			}
			next = end
		case "p", "print":
			fmt.Printf("stack:  %s\n", renderStack(vm.Stack()))
			fmt.Printf("frames: %d deep\n", len(vm.Frames()))
			fmt.Printf("paren:  count=%d buffer=%v\n", vm.ParenCount(), vm.Parenthesized())
		case "r", "run":
			for _, result := range vm.Run(environment, iotas[next:]...) {
				if result.Mishap != nil {
					fmt.Printf("mishap: %s\n", result.Mishap.Message)
				}
			}
			next = len(iotas)
		case "q", "quit":
			return
		default:
			fmt.Printf("unknown command %q\n", args[0])
		}
	}
}

func main() {
	flag.Parse()
	if *program == "" {
		glog.Fatal("hexcast: -program is required")
	}

	registry := hexvm.DefaultRegistry()
	iotas, err := loadProgram(*program, registry)
	if err != nil {
		glog.Fatalf("hexcast: loading %s: %v", *program, err)
	}

	casterEntity := &hexvm.Entity{
		EntityType: &hexvm.EntityType{Name: "Caster"},
		Name:       *caster,
	}
	environment := env.NewStaticEnvironment(casterEntity)
	vm := hexvm.NewVM()

	if *debug {
		debugger(vm, environment, iotas)
		return
	}

	results := vm.Run(environment, iotas...)
	for _, r := range results {
		if r.Mishap != nil {
			fmt.Printf("mishap: %s\n", r.Mishap.Message)
		}
	}
	fmt.Printf("final stack: %s\n", renderStack(vm.Stack()))
}
