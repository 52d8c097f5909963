package main

import "fmt"

// DefaultGas bounds the number of reduction steps in one evaluation
// unless overridden by WithGas or a per-request budget.
const DefaultGas = 1_000_000

// Unknown reports a Constant whose name is not in the combinator
// table.  It is the only program construct that fails evaluation
// outright instead of suspending into the residual.
type Unknown struct {
	Name string
}

func (err Unknown) Error() string {
	return fmt.Sprintf("unknown combinator: %v", err.Name)
}

// rewrite runs the small-step loop: while instructions remain and gas
// holds out, dispatch on the top of code.  Whatever configuration the
// loop ends in is rendered back into a single residual value.
func (in *Interpreter) rewrite(init Value, gas int) (Value, error) {
	m := newMachine(init)
	for len(m.code) > 0 && gas > 0 {
		gas--
		hand, err := m.getCode(0)
		if err != nil {
			return nil, err
		}
		if in.logfn != nil {
			in.logf("step %v -- d:%v k:%v", hand, m.data, m.sink)
		}
		switch hand := hand.(type) {
		case Id:
			m.popCode(1)
		case Catenate:
			m.popCode(1)
			m.pushCode(hand)
		case Variable:
			binding, ok := in.dict[hand.Name]
			if !ok {
				m.thunk()
				gas = 0
				continue
			}
			m.popCode(1)
			m.pushCode(binding)
		case Quote:
			m.popCode(1)
			m.pushData(hand)
		case Text:
			m.popCode(1)
			m.pushData(hand)
		case Prompt:
			// Prompts do not reduce; suspend so the prompt
			// lands in the sink with its context intact.
			m.thunk()
			gas = 0
		case Constant:
			stop, err := in.apply(m, hand.Name)
			if err != nil {
				return nil, err
			}
			if stop {
				gas = 0
			}
		}
	}
	if in.logfn != nil {
		m.dump(in.logf)
	}
	return m.residual(), nil
}

// apply fires one combinator against the machine.  When its
// preconditions on the data stack are not met the machine thunks; the
// returned stop flag says whether the suspension is terminal or the
// loop may keep grinding on the remaining code.
func (in *Interpreter) apply(m *machine, name string) (stop bool, err error) {
	switch name {
	case "Copy":
		value, err := m.getData(0)
		if err != nil {
			m.thunk()
			return false, nil
		}
		m.popCode(1)
		m.pushData(value)

	case "Drop":
		if _, err := m.getData(0); err != nil {
			m.thunk()
			return false, nil
		}
		m.popCode(1)
		m.popData(1)

	case "Swap":
		fst, ferr := m.getData(0)
		snd, serr := m.getData(1)
		if ferr != nil || serr != nil {
			m.thunk()
			return false, nil
		}
		m.popCode(1)
		m.popData(2)
		m.pushData(fst)
		m.pushData(snd)

	case "Cat":
		fst, ferr := m.getData(1)
		snd, serr := m.getData(0)
		if ferr != nil || serr != nil {
			m.thunk()
			return false, nil
		}
		fq, fok := fst.(Quote)
		sq, sok := snd.(Quote)
		if !fok || !sok {
			m.thunk()
			return false, nil
		}
		m.popCode(1)
		m.popData(2)
		m.pushData(Quote{Body: catenate(fq.Body, sq.Body)})

	case "Abs":
		value, err := m.getData(0)
		if err != nil {
			m.thunk()
			return false, nil
		}
		m.popCode(1)
		m.popData(1)
		m.pushData(Quote{Body: value})

	case "App":
		value, err := m.getData(0)
		if err != nil {
			m.thunk()
			return true, nil
		}
		quote, ok := value.(Quote)
		if !ok {
			m.thunk()
			return true, nil
		}
		m.popCode(1)
		m.popData(1)
		m.pushCode(quote.Body)

	case "Inl", "Inr":
		inl, lerr := m.getData(2)
		inr, rerr := m.getData(1)
		value, verr := m.getData(0)
		if lerr != nil || rerr != nil || verr != nil {
			m.thunk()
			return true, nil
		}
		lq, lok := inl.(Quote)
		rq, rok := inr.(Quote)
		if !lok || !rok {
			m.thunk()
			return true, nil
		}
		m.popCode(1)
		m.popData(3)
		m.pushData(value)
		// The selected branch goes back onto code still quoted;
		// a following App unwraps and runs it.
		if name == "Inl" {
			m.pushCode(lq)
		} else {
			m.pushCode(rq)
		}

	case "Pair":
		fst, ferr := m.getData(1)
		snd, serr := m.getData(0)
		if ferr != nil || serr != nil {
			m.thunk()
			return false, nil
		}
		m.popCode(1)
		m.popData(2)
		m.pushData(Quote{Body: catenate(fst, snd)})

	case "Shift":
		handler, err := m.getData(0)
		if err != nil {
			m.thunk()
			return true, nil
		}
		quote, ok := handler.(Quote)
		if !ok {
			m.thunk()
			return true, nil
		}
		var captured []Value
		reset := -1
		for i := 1; ; i++ {
			point, err := m.getCode(i)
			if err != nil {
				break
			}
			if c, ok := point.(Constant); ok && c.Name == "Reset" {
				reset = i
				break
			}
			captured = append(captured, point)
		}
		if reset < 0 {
			m.thunk()
			return true, nil
		}
		m.popCode(reset + 1)
		m.popData(1)
		m.pushData(Quote{Body: catenate(captured...)})
		m.pushCode(quote.Body)

	case "Reset":
		// A delimiter nobody asked to cross; preserve it.
		m.thunk()
		return true, nil

	case "Define":
		name, nerr := m.getData(0)
		body, berr := m.getData(1)
		if in.dict == nil || nerr != nil || berr != nil {
			m.thunk()
			return true, nil
		}
		text, tok := name.(Text)
		quote, qok := body.(Quote)
		if !tok || !qok {
			m.thunk()
			return true, nil
		}
		m.popCode(1)
		m.popData(2)
		in.dict[text.Value] = quote.Body

	case "Delete":
		name, err := m.getData(0)
		if in.dict == nil || err != nil {
			m.thunk()
			return true, nil
		}
		text, ok := name.(Text)
		if !ok {
			m.thunk()
			return true, nil
		}
		m.popCode(1)
		m.popData(1)
		delete(in.dict, text.Value)

	default:
		return false, Unknown{Name: name}
	}
	return false, nil
}
