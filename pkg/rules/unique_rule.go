package rules

import (
	"context"
	"sync"
	"time"
)

// DefaultUniqueDebounce bounds how often a Unique rule hits its checker for
// the same rule/field pair.
const DefaultUniqueDebounce = 300 * time.Millisecond

// UniquenessChecker answers whether a value is unique within some external
// collection, typically via a remote existence check.
type UniquenessChecker interface {
	IsUnique(ctx context.Context, field, value string) (bool, error)
}

// UniquenessCheckerFunc adapts a function to the UniquenessChecker interface.
type UniquenessCheckerFunc func(ctx context.Context, field, value string) (bool, error)

func (f UniquenessCheckerFunc) IsUnique(ctx context.Context, field, value string) (bool, error) {
	return f(ctx, field, value)
}

// UniqueOption customizes a Unique rule.
type UniqueOption func(*uniqueRule)

// WithDebounce overrides the default spacing between checker invocations.
// Zero disables debouncing entirely.
func WithDebounce(d time.Duration) UniqueOption {
	return func(r *uniqueRule) { r.debounce = d }
}

// Unique builds the asynchronous remote-uniqueness rule. Checker failures
// are treated as unique (fail-open) so network errors never block form
// completion. Within the debounce window a repeated evaluation of the same
// value reuses the previous result instead of hitting the checker again.
func Unique(checker UniquenessChecker, opts ...UniqueOption) Rule {
	r := &uniqueRule{
		checker:  checker,
		debounce: DefaultUniqueDebounce,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type uniqueRule struct {
	checker  UniquenessChecker
	debounce time.Duration

	mu         sync.Mutex
	lastValue  string
	lastResult bool
	lastAt     time.Time
}

func (r *uniqueRule) Kind() Kind              { return KindUniqueness }
func (r *uniqueRule) Message() string         { return "is already taken" }
func (r *uniqueRule) Severity() Severity      { return SeverityError }
func (r *uniqueRule) Async() bool             { return true }
func (r *uniqueRule) Debounce() time.Duration { return r.debounce }

func (r *uniqueRule) Evaluate(ctx context.Context, value any, form Context) (bool, error) {
	s := stringOf(value)
	if s == "" {
		return true, nil
	}

	r.mu.Lock()
	if r.debounce > 0 && s == r.lastValue && !r.lastAt.IsZero() && time.Since(r.lastAt) < r.debounce {
		result := r.lastResult
		r.mu.Unlock()
		return result, nil
	}
	r.mu.Unlock()

	unique, err := r.checker.IsUnique(ctx, form.Field, s)
	if err != nil {
		// Fail-open: an unreachable checker must never block the form.
		return true, nil
	}

	r.mu.Lock()
	r.lastValue = s
	r.lastResult = unique
	r.lastAt = time.Now()
	r.mu.Unlock()

	return unique, nil
}
