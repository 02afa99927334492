package service

// NoStructuredOutputMessage is returned when the provider answered without
// schema-conforming data. Users are expected to resubmit.
const NoStructuredOutputMessage = "AI did not return structured feedback. Please try again."

// Fallback messages used when a provider failure carries no text.
const (
	FeedbackFailureFallback = "Internal server error"
	PracticeFailureFallback = "Failed to generate practice problem"
)

// OutcomeKind tags the terminal state of a generation request.
type OutcomeKind int

const (
	OutcomeSucceeded OutcomeKind = iota
	OutcomeNoStructure
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeNoStructure:
		return "no_structure"
	default:
		return "failed"
	}
}

// Outcome is the result of one generation request: either a complete
// result, a no-structure signal, or a failure message. There are no partial
// results.
type Outcome[T any] struct {
	Kind    OutcomeKind
	Result  T
	Message string
}

// Succeeded wraps a complete result.
func Succeeded[T any](result T) Outcome[T] {
	return Outcome[T]{Kind: OutcomeSucceeded, Result: result}
}

// NoStructure reports that the provider produced no usable structured data.
func NoStructure[T any]() Outcome[T] {
	return Outcome[T]{Kind: OutcomeNoStructure, Message: NoStructuredOutputMessage}
}

// Failed reports a provider call failure with a human-readable message.
func Failed[T any](message string) Outcome[T] {
	return Outcome[T]{Kind: OutcomeFailed, Message: message}
}

// OK reports whether the outcome carries a result.
func (o Outcome[T]) OK() bool {
	return o.Kind == OutcomeSucceeded
}
