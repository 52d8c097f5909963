package main

import (
	"github.com/dearmadisonblue/script/internal/panicerr"
)

// An Interpreter owns one dictionary and evaluates programs against
// it.  It is not safe for concurrent use; the serving layer gives
// every client its own.
type Interpreter struct {
	dict  map[string]Value
	gas   int
	logfn func(mess string, args ...interface{})
}

func New(opts ...Option) *Interpreter {
	var in Interpreter
	defaultOptions.apply(&in)
	Options(opts...).apply(&in)
	return &in
}

// Read parses source text into a Value.  The error, if any, is an
// Unreadable.
func (in *Interpreter) Read(src string) (Value, error) {
	return read(src)
}

// Eval parses and evaluates source text in one call.
func (in *Interpreter) Eval(src string) (Value, error) {
	value, err := read(src)
	if err != nil {
		return nil, err
	}
	return in.Evaluate(value)
}

// Evaluate reduces a term under the interpreter's gas budget.  It
// always returns a well-formed residual for program-level trouble;
// the only error a program can provoke is Unknown.
func (in *Interpreter) Evaluate(init Value) (Value, error) {
	return in.guarded(init, in.gas)
}

func (in *Interpreter) guarded(init Value, gas int) (res Value, err error) {
	err = panicerr.Recover("evaluate", func() error {
		var rerr error
		res, rerr = in.rewrite(init, gas)
		return rerr
	})
	return res, err
}

// Define binds name to a program in the dictionary, as the Define
// combinator would.
func (in *Interpreter) Define(name string, body Value) {
	if in.dict == nil {
		in.dict = make(map[string]Value)
	}
	in.dict[name] = body
}

// Delete removes a binding, if present.
func (in *Interpreter) Delete(name string) {
	delete(in.dict, name)
}

// Binding looks up a name in the dictionary.
func (in *Interpreter) Binding(name string) (Value, bool) {
	binding, ok := in.dict[name]
	return binding, ok
}

func (in *Interpreter) logf(mess string, args ...interface{}) {
	if in.logfn != nil {
		in.logfn(mess, args...)
	}
}
