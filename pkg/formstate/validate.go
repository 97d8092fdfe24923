package formstate

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/formstate/pkg/rules"
)

// evaluatorErrMessage is attached to KindUnknown errors produced when a rule
// fails to evaluate instead of evaluating to false.
const evaluatorErrMessage = "校验过程中发生错误"

// ValidateField runs the supplied rules against the value, in the order
// given, and updates the field record with the outcome. Rules are evaluated
// strictly sequentially, awaiting asynchronous rules one at a time, so the
// error order always matches the rule order regardless of completion time.
//
// A missing form or field yields a definite failure (IsValid false, no
// errors), distinct from the optimistic pass returned while an active
// exception state suppresses validation. A rule that panics or returns an
// evaluation error contributes a KindUnknown error and evaluation continues
// with the remaining rules. ValidateField never returns a Go error.
//
// Overlapping calls for the same field race on the field record with
// last-write-wins semantics unless the store was built
// WithStaleResultDiscard, in which case a superseded call still returns its
// computed result but neither writes it nor emits an event.
func (s *Store) ValidateField(ctx context.Context, formID, fieldName string, value any, ruleList ...rules.Rule) Result {
	s.mu.Lock()
	form, ok := s.forms[formID]
	if !ok {
		s.mu.Unlock()
		return Result{IsValid: false}
	}
	if s.shouldSkipLocked() {
		s.mu.Unlock()
		return Result{IsValid: true}
	}
	field, ok := form.fields[fieldName]
	if !ok {
		s.mu.Unlock()
		return Result{IsValid: false}
	}

	field.status = StatusValidating
	field.lastValue = value
	field.validatedAt = s.now()
	field.generation++
	generation := field.generation

	values := form.values()
	values[fieldName] = value
	formCtx := rules.Context{
		Values:     values,
		Field:      fieldName,
		Submitting: form.isSubmitting,
	}
	s.mu.Unlock()

	var errs, warns []rules.ValidationError
	for _, rule := range ruleList {
		valid, evalErr := evaluateRule(ctx, rule, value, formCtx)
		if evalErr != nil {
			errs = append(errs, rules.NewError(rules.KindUnknown, fieldName, evaluatorErrMessage))
			continue
		}
		if valid {
			continue
		}

		failure := rules.NewError(rule.Kind(), fieldName, rule.Message(), rules.WithSeverity(rule.Severity()))
		if rule.Severity() == rules.SeverityWarning {
			warns = append(warns, failure)
		} else {
			errs = append(errs, failure)
		}
	}

	result := Result{
		IsValid:  len(errs) == 0,
		Errors:   cloneErrors(errs),
		Warnings: cloneErrors(warns),
	}

	s.mu.Lock()
	field, ok = s.field(formID, fieldName)
	if !ok || (s.discard && field.generation != generation) {
		s.mu.Unlock()
		return result
	}

	if result.IsValid {
		field.status = StatusValid
	} else {
		field.status = StatusInvalid
	}
	field.errors = errs
	field.warnings = warns
	event := s.newEvent(EventValidationComplete, formID, fieldName, value, &result)
	s.mu.Unlock()

	s.emit(event)
	return result
}

// ValidateForm aggregates already-computed per-field errors and warnings
// plus the form's global errors, and sets the form's aggregate status. It
// never executes rules: ValidateField is the only place rules run, and
// ValidateForm is a pure reducer over existing field state, typically called
// on submit after all relevant fields have been validated.
//
// While validation is suppressed by an exception state the call returns a
// vacuous pass without reading any field state.
func (s *Store) ValidateForm(formID string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shouldSkipLocked() {
		return Result{IsValid: true}
	}

	form, ok := s.forms[formID]
	if !ok {
		return Result{IsValid: false}
	}

	var errs, warns []rules.ValidationError
	for _, name := range form.fieldOrder {
		field := form.fields[name]
		errs = append(errs, field.errors...)
		warns = append(warns, field.warnings...)
	}
	errs = append(errs, form.globalErrors...)

	if len(errs) == 0 {
		form.status = StatusValid
	} else {
		form.status = StatusInvalid
	}

	return Result{
		IsValid:  len(errs) == 0,
		Errors:   cloneErrors(errs),
		Warnings: cloneErrors(warns),
	}
}

// evaluateRule shields the pipeline from panicking rule implementations.
func evaluateRule(ctx context.Context, r rules.Rule, value any, formCtx rules.Context) (valid bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			valid = false
			err = fmt.Errorf("rule evaluation panicked: %v", rec)
		}
	}()
	return r.Evaluate(ctx, value, formCtx)
}
