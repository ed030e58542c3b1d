package morpheme

// Status of one parser action.
type Status int

const (
	// Success carries a value.
	Success Status = iota
	// Backtracked carries no information: normal control flow for trying
	// the next alternative.
	Backtracked
	// Failed is a hard, located failure. Ordinary alternative combinators
	// do not catch it; it distinguishes "the grammar demands X here and it
	// is missing" from "this branch does not apply".
	Failed
)

// A Result is the tri-state outcome of a parser action.
type Result struct {
	Status Status
	Value  interface{}
	Err    *ParseError
}

func succeed(v interface{}) Result {
	return Result{Status: Success, Value: v}
}

func backtrack() Result {
	return Result{Status: Backtracked}
}

func failed(err *ParseError) Result {
	return Result{Status: Failed, Err: err}
}

// An Action is an opaque token-stream primitive: it consumes from the
// stream and yields a Result.
type Action func(*Stream) Result
