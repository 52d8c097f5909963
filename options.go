package main

// An Option configures an Interpreter at construction.
type Option interface{ apply(in *Interpreter) }

var defaultOptions = Options(
	withGas(DefaultGas),
	optionFunc(func(in *Interpreter) { in.dict = make(map[string]Value) }),
)

type optionFunc func(in *Interpreter)

func (f optionFunc) apply(in *Interpreter) { f(in) }

// Options combines several options into one; nils are skipped.
func Options(opts ...Option) Option { return options(opts) }

type options []Option

func (opts options) apply(in *Interpreter) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(in)
		}
	}
}

// WithGas sets the step budget for each evaluation.
func WithGas(gas int) Option { return withGas(gas) }

// WithDictionary supplies the dictionary backing Define, Delete, and
// variable resolution.  A nil dictionary makes every variable and
// every Define suspend.
func WithDictionary(dict map[string]Value) Option { return withDictionary(dict) }

// WithLogf enables step tracing through the given printf-style
// function.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

type gasOption int
type dictOption map[string]Value
type logfnOption func(mess string, args ...interface{})

func withGas(gas int) gasOption                                          { return gasOption(gas) }
func withDictionary(dict map[string]Value) dictOption                    { return dictOption(dict) }
func withLogfn(logfn func(mess string, args ...interface{})) logfnOption { return logfnOption(logfn) }

func (gas gasOption) apply(in *Interpreter) { in.gas = int(gas) }

func (dict dictOption) apply(in *Interpreter) { in.dict = dict }

func (logfn logfnOption) apply(in *Interpreter) { in.logfn = logfn }
