/* Package main: script -- a rewriting interpreter on a command channel

Script is a tiny concatenative combinator language.  A program is a
sequence of tokens; evaluation rewrites that sequence against a
dictionary of named definitions until nothing more can be done, and
whatever is left over is the answer.  There is no hidden state: the
result of evaluation is itself a program, and feeding it back into the
interpreter is always legal.

The surface syntax is small.  Square brackets quote a subprogram,
making it a first-class datum:

	[foo bar]

Double quotes delimit string literals, and curly braces delimit
prompts -- opaque natural-language payloads that ride through
evaluation untouched:

	"some text"
	{ Summarize the last answer. }

Uppercase-initial words name the built-in combinators; lowercase words
are variables resolved through the dictionary.

The machine has three stacks.  Instructions are consumed from the code
stack; values produced by reduction accumulate on the data stack; and
anything that cannot be reduced -- an unresolved variable, a prompt, a
combinator starved of arguments -- is flushed to the sink, preserving
its place in the output.  This suspension protocol makes evaluation
total: a program that cannot make progress degrades into a well-formed
residual instead of failing.

The built-ins cover stack shuffling (Copy, Drop, Swap), quotation
(Abs, Cat, App), encoded products and sums (Pair, Inl, Inr), delimited
control (Shift, Reset), and dictionary mutation (Define, Delete).
Shift captures everything between itself and the nearest following
Reset as a quoted continuation and hands it to a handler, giving
programs first-class access to their own future.

Every evaluation runs under a gas budget.  A program that loops is cut
off mid-stride and the unfinished suffix comes back in the residual,
runnable later with a bigger budget.

The interpreter is embeddable (New, Eval, Evaluate), but the binary
also speaks three dialects of the outside world: a one-shot evaluator,
an interactive prompt, and a websocket command channel that gives each
client its own dictionary and worker.
*/
package main
