package main

import (
	"fmt"
	"strings"

	"github.com/peterh/liner"
)

// repl runs an interactive prompt against one in-process interpreter.
// The same {Quit} terminator the command channel honors ends the
// session here too.
func repl(in *Interpreter) {
	cli := liner.NewLiner()
	defer cli.Close()

	cli.SetCtrlCAborts(true)

	for {
		line, err := cli.Prompt("> ")
		switch err {
		case nil:
		case liner.ErrPromptAborted:
			continue
		default:
			fmt.Println()
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		cli.AppendHistory(line)

		if quit(line) {
			return
		}

		res, err := in.Eval(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if out := res.String(); out != "" {
			fmt.Println(out)
		}
	}
}
