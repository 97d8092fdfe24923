package formstate

import (
	"time"

	"github.com/dmitrymomot/formstate/pkg/rules"
)

// Status describes the validation state of a field or a form. Forms never
// take StatusValidating; only individual fields do.
type Status string

const (
	StatusPending    Status = "pending"
	StatusValidating Status = "validating"
	StatusValid      Status = "valid"
	StatusInvalid    Status = "invalid"
)

// FieldState is a read snapshot of one field's validation record.
// Invariant: StatusValid implies empty Errors; StatusInvalid implies
// non-empty Errors.
type FieldState struct {
	Status      Status
	Errors      []rules.ValidationError
	Warnings    []rules.ValidationError
	Touched     bool
	Dirty       bool
	LastValue   any
	ValidatedAt time.Time
}

// FormState is a read snapshot of a whole form's validation record. The
// field-name set is fixed at creation time.
type FormState struct {
	Status         Status
	Fields         map[string]FieldState
	GlobalErrors   []rules.ValidationError
	IsSubmitting   bool
	SubmitAttempts int
	LastSubmitAt   time.Time
}

// Result is the outcome of ValidateField or ValidateForm. Validation never
// fails with a Go error; every outcome is communicated through this shape.
type Result struct {
	IsValid  bool
	Errors   []rules.ValidationError
	Warnings []rules.ValidationError
}

// fieldRecord is the mutable per-field record held by the store. Snapshots
// handed to callers are deep copies; the record itself never escapes.
type fieldRecord struct {
	status      Status
	errors      []rules.ValidationError
	warnings    []rules.ValidationError
	touched     bool
	dirty       bool
	lastValue   any
	validatedAt time.Time
	// generation increments on every validation start; used to discard
	// stale results when the guard is enabled.
	generation uint64
}

func newFieldRecord() *fieldRecord {
	return &fieldRecord{status: StatusPending}
}

func (f *fieldRecord) snapshot() FieldState {
	return FieldState{
		Status:      f.status,
		Errors:      cloneErrors(f.errors),
		Warnings:    cloneErrors(f.warnings),
		Touched:     f.touched,
		Dirty:       f.dirty,
		LastValue:   f.lastValue,
		ValidatedAt: f.validatedAt,
	}
}

// formRecord is the mutable per-form record held by the store.
type formRecord struct {
	status         Status
	fields         map[string]*fieldRecord
	fieldOrder     []string
	globalErrors   []rules.ValidationError
	isSubmitting   bool
	submitAttempts int
	lastSubmitAt   time.Time
}

func newFormRecord(fieldNames []string) *formRecord {
	rec := &formRecord{
		status:     StatusPending,
		fields:     make(map[string]*fieldRecord, len(fieldNames)),
		fieldOrder: make([]string, 0, len(fieldNames)),
	}
	for _, name := range fieldNames {
		if _, exists := rec.fields[name]; exists {
			continue
		}
		rec.fields[name] = newFieldRecord()
		rec.fieldOrder = append(rec.fieldOrder, name)
	}
	return rec
}

func (f *formRecord) snapshot() FormState {
	fields := make(map[string]FieldState, len(f.fields))
	for name, field := range f.fields {
		fields[name] = field.snapshot()
	}
	return FormState{
		Status:         f.status,
		Fields:         fields,
		GlobalErrors:   cloneErrors(f.globalErrors),
		IsSubmitting:   f.isSubmitting,
		SubmitAttempts: f.submitAttempts,
		LastSubmitAt:   f.lastSubmitAt,
	}
}

// values builds the form-data snapshot consumed by rule contexts.
func (f *formRecord) values() map[string]any {
	values := make(map[string]any, len(f.fields))
	for name, field := range f.fields {
		values[name] = field.lastValue
	}
	return values
}

func cloneErrors(errs []rules.ValidationError) []rules.ValidationError {
	if len(errs) == 0 {
		return nil
	}
	out := make([]rules.ValidationError, len(errs))
	copy(out, errs)
	return out
}
