package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

var usage = `script

Usage:
  script [options] -c CODE
  script [options] -l ADDR
  script [options] [SCRIPT]
  script -h | --help

Arguments:
  SCRIPT  Path to a program to evaluate.

Options:
  -c, --code=CODE    Evaluate CODE and print the residual.
  -l, --listen=ADDR  Serve websocket command sessions on ADDR.
  -g, --gas=N        Step budget per evaluation [default: 1000000].
  -t, --trace        Log each reduction step.
  -h, --help         Show this help.

With no operands, script reads programs line by line from stdin, or
starts an interactive prompt when stdin is a terminal.
`

func main() {
	parsed, err := docopt.ParseDoc(usage)
	if err != nil {
		// Error in the usage doc itself.
		panic(err.Error())
	}

	gas, err := parsed.Int("--gas")
	if err != nil || gas <= 0 {
		fmt.Fprintln(os.Stderr, "script: --gas wants a positive integer")
		os.Exit(2)
	}

	opts := []Option{WithGas(gas)}
	if trace, _ := parsed.Bool("--trace"); trace {
		opts = append(opts, WithLogf(log.Printf))
	}

	if addr, _ := parsed.String("--listen"); addr != "" {
		if err := Serve(context.Background(), addr, opts...); err != nil {
			fmt.Fprintf(os.Stderr, "script: %v\n", err)
			os.Exit(1)
		}
		return
	}

	in := New(opts...)

	if code, _ := parsed.String("--code"); code != "" {
		oneshot(in, code)
		return
	}

	if path, _ := parsed.String("SCRIPT"); path != "" {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "script: %v\n", err)
			os.Exit(1)
		}
		oneshot(in, string(src))
		return
	}

	if isatty.IsTerminal(os.Stdin.Fd()) {
		repl(in)
		return
	}
	batch(in)
}

func oneshot(in *Interpreter, src string) {
	res, err := in.Eval(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "script: %v\n", err)
		os.Exit(1)
	}
	if out := res.String(); out != "" {
		fmt.Println(out)
	}
}

// batch treats every stdin line as one program against a shared
// dictionary, echoing one residual per line.
func batch(in *Interpreter) {
	scanner := bufio.NewScanner(os.Stdin)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	for scanner.Scan() {
		res, err := in.Eval(scanner.Text())
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		fmt.Fprintln(out, res)
		out.Flush()
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "script: %v\n", err)
		os.Exit(1)
	}
}
