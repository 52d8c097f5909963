package main

import "errors"

// A machine is one evaluation in flight.  Three stacks, top at the
// end: code holds pending instructions, data holds reduced values,
// and sink holds the residue that could not be reduced.
type machine struct {
	code []Value
	data []Value
	sink []Value
}

var (
	errNoMoreCode = errors.New("no more code")
	errNoMoreData = errors.New("no more data")
)

func newMachine(init Value) *machine {
	return &machine{code: []Value{init}}
}

// getCode peeks at the i-th item from the top of code.
func (m *machine) getCode(i int) (Value, error) {
	if i >= len(m.code) {
		return nil, errNoMoreCode
	}
	return m.code[len(m.code)-1-i], nil
}

// popCode removes the top n items from code.  Underflow here is an
// interpreter bug, not a program error: preconditions are checked
// through the getters first.
func (m *machine) popCode(n int) {
	if n > len(m.code) {
		panic(errNoMoreCode)
	}
	m.code = m.code[:len(m.code)-n]
}

// pushCode pushes a value onto code.  A Catenate is spliced so that
// its first child ends up on top: this is how sequential composition
// unfolds left to right.
func (m *machine) pushCode(value Value) {
	switch value := value.(type) {
	case Catenate:
		for i := len(value.Children) - 1; i >= 0; i-- {
			m.code = append(m.code, value.Children[i])
		}
	default:
		m.code = append(m.code, value)
	}
}

func (m *machine) getData(i int) (Value, error) {
	if i >= len(m.data) {
		return nil, errNoMoreData
	}
	return m.data[len(m.data)-1-i], nil
}

func (m *machine) popData(n int) {
	if n > len(m.data) {
		panic(errNoMoreData)
	}
	m.data = m.data[:len(m.data)-n]
}

func (m *machine) pushData(value Value) {
	m.data = append(m.data, value)
}

// thunk suspends the configuration at the current instruction: the
// data stack is flushed into the sink in order, then the instruction
// itself follows it.  Evaluation order is preserved in the residual
// and no value is invented.
func (m *machine) thunk() {
	m.sink = append(m.sink, m.data...)
	m.data = nil
	if n := len(m.code); n > 0 {
		m.sink = append(m.sink, m.code[n-1])
		m.code = m.code[:n-1]
	}
}

// residual renders what remains: the sink in order, the data stack
// bottom to top, then the unconsumed code top-first so that the next
// instruction is the next token printed.
func (m *machine) residual() Value {
	values := make([]Value, 0, len(m.sink)+len(m.data)+len(m.code))
	values = append(values, m.sink...)
	values = append(values, m.data...)
	for i := len(m.code) - 1; i >= 0; i-- {
		values = append(values, m.code[i])
	}
	return catenate(values...)
}

// dump logs the machine configuration one stack per line.
func (m *machine) dump(logf func(mess string, args ...interface{})) {
	logf("code: %v", m.code)
	logf("data: %v", m.data)
	logf("sink: %v", m.sink)
}
