package rules

import (
	"context"
	"time"
)

// Kind classifies the failure a rule produces.
type Kind string

const (
	KindRequired   Kind = "required"
	KindFormat     Kind = "format"
	KindLength     Kind = "length"
	KindPattern    Kind = "pattern"
	KindRange      Kind = "range"
	KindUniqueness Kind = "uniqueness"
	// KindUnknown marks errors produced by a rule that failed to evaluate
	// rather than a rule that evaluated to false.
	KindUnknown Kind = "unknown"
)

// Severity distinguishes blocking errors from advisory warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Source tags where a validation error originated.
type Source string

const (
	SourceClient Source = "client"
	SourceServer Source = "server"
)

// Context carries the form snapshot a rule may consult in addition to the
// value under evaluation. It is constructed fresh for every validation pass
// and never retained.
type Context struct {
	// Values maps field names to their last known values.
	Values map[string]any
	// Field is the name of the field under evaluation.
	Field string
	// Submitting reports whether the owning form is mid-submit.
	Submitting bool
}

// Value returns the snapshot value for the named field.
func (c Context) Value(field string) (any, bool) {
	v, ok := c.Values[field]
	return v, ok
}

// Rule checks a single value against contextual form data. Rules are
// stateless with respect to form state: everything an evaluation needs flows
// through the value and the Context.
type Rule interface {
	// Kind tags the category of failure the rule produces.
	Kind() Kind
	// Message is the human-readable failure text.
	Message() string
	// Severity is the weight of a produced failure. Most rules produce
	// blocking errors; see AsWarning.
	Severity() Severity
	// Async reports whether Evaluate performs I/O.
	Async() bool
	// Debounce is the minimum spacing between two asynchronous evaluations
	// of the same rule instance. Zero for synchronous rules.
	Debounce() time.Duration
	// Evaluate returns true when the value is valid. A non-nil error means
	// the rule could not be evaluated at all.
	Evaluate(ctx context.Context, value any, form Context) (bool, error)
}

type rule struct {
	kind     Kind
	message  string
	severity Severity
	async    bool
	debounce time.Duration
	check    func(ctx context.Context, value any, form Context) (bool, error)
}

func (r rule) Kind() Kind              { return r.kind }
func (r rule) Message() string         { return r.message }
func (r rule) Severity() Severity      { return r.severity }
func (r rule) Async() bool             { return r.async }
func (r rule) Debounce() time.Duration { return r.debounce }

func (r rule) Evaluate(ctx context.Context, value any, form Context) (bool, error) {
	return r.check(ctx, value, form)
}

// New builds a synchronous rule from a predicate. Custom rules created this
// way plug into the same pipeline as the built-in catalog.
func New(kind Kind, message string, check func(value any, form Context) bool) Rule {
	return rule{
		kind:     kind,
		message:  message,
		severity: SeverityError,
		check: func(_ context.Context, value any, form Context) (bool, error) {
			return check(value, form), nil
		},
	}
}

// NewAsync builds an asynchronous rule from an evaluator that may perform
// I/O. The debounce duration bounds how often the evaluator runs for this
// rule instance; zero disables debouncing.
func NewAsync(kind Kind, message string, debounce time.Duration, check func(ctx context.Context, value any, form Context) (bool, error)) Rule {
	return rule{
		kind:     kind,
		message:  message,
		severity: SeverityError,
		async:    true,
		debounce: debounce,
		check:    check,
	}
}

// AsWarning downgrades a rule so its failures carry SeverityWarning. Warnings
// are advisory: they flow through the same pipeline but never block
// submission.
func AsWarning(r Rule) Rule {
	return warningRule{Rule: r}
}

type warningRule struct {
	Rule
}

func (w warningRule) Severity() Severity { return SeverityWarning }
