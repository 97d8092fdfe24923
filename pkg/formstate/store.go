package formstate

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/formstate/pkg/exception"
	"github.com/dmitrymomot/formstate/pkg/rules"
)

// Store is the process-wide validation state container. It holds every
// form's validation record, the set of active exception states, the policy
// table, and the listener registry. Construct one per process and inject it
// where needed; there is no package-level singleton.
//
// Store is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	logger    *slog.Logger
	policies  exception.PolicyTable
	now       func() time.Time
	discard   bool
	forms     map[string]*formRecord
	active    map[exception.State]struct{}
	online    bool
	listeners []listenerEntry
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithLogger sets the logger used for listener fault reporting.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPolicies overrides the default exception policy table.
func WithPolicies(table exception.PolicyTable) Option {
	return func(s *Store) {
		if table != nil {
			s.policies = table
		}
	}
}

// WithStaleResultDiscard enables the validation generation guard: when a
// ValidateField call is superseded by a newer one for the same field, the
// older call's result is discarded instead of overwriting the field record.
// Off by default, which preserves last-write-wins behavior.
func WithStaleResultDiscard() Option {
	return func(s *Store) { s.discard = true }
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates an empty validation store. The process starts online with no
// active exception states.
func New(opts ...Option) *Store {
	s := &Store{
		logger:   slog.Default(),
		policies: exception.DefaultPolicies(),
		now:      time.Now,
		forms:    make(map[string]*formRecord),
		active:   make(map[exception.State]struct{}),
		online:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateForm registers a form with the given declared field names. Every
// field starts Pending, untouched, and clean. Calling CreateForm for an
// existing formID replaces the prior record entirely.
func (s *Store) CreateForm(formID string, fieldNames []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forms[formID] = newFormRecord(fieldNames)
}

// RemoveForm deletes a form record entirely. No-op if the form is absent.
func (s *Store) RemoveForm(formID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.forms, formID)
}

// ResetForm reinitializes all fields and form-level bookkeeping to the same
// state CreateForm produces, preserving the declared field-name set. No-op
// if the form does not exist.
func (s *Store) ResetForm(formID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	form, ok := s.forms[formID]
	if !ok {
		return
	}
	s.forms[formID] = newFormRecord(form.fieldOrder)
}

// SetFieldValue records the field's latest value and marks it dirty. It does
// not change the field's validation status. Emits a field_change event.
// No-op, with no event, if the form or field does not exist.
func (s *Store) SetFieldValue(formID, fieldName string, value any) {
	s.mu.Lock()
	field, ok := s.field(formID, fieldName)
	if !ok {
		s.mu.Unlock()
		return
	}
	field.lastValue = value
	field.dirty = true
	event := s.newEvent(EventFieldChange, formID, fieldName, value, nil)
	s.mu.Unlock()

	s.emit(event)
}

// SetFieldTouched sets the field's touched flag. A field_blur event is
// emitted only when the flag transitions to true.
func (s *Store) SetFieldTouched(formID, fieldName string, touched bool) {
	s.mu.Lock()
	field, ok := s.field(formID, fieldName)
	if !ok {
		s.mu.Unlock()
		return
	}
	wasTouched := field.touched
	field.touched = touched

	var event Event
	blur := touched && !wasTouched
	if blur {
		event = s.newEvent(EventFieldBlur, formID, fieldName, field.lastValue, nil)
	}
	s.mu.Unlock()

	if blur {
		s.emit(event)
	}
}

// SetFieldError force-sets the field to Invalid with the single supplied
// error, replacing any accumulated errors. Intended for externally sourced
// errors (e.g. server-rejection mapping) that bypass the local rule
// pipeline.
func (s *Store) SetFieldError(formID, fieldName string, err rules.ValidationError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	field, ok := s.field(formID, fieldName)
	if !ok {
		return
	}
	field.status = StatusInvalid
	field.errors = []rules.ValidationError{err}
}

// AddGlobalError appends a form-wide error not attributable to one field.
// No-op if the form does not exist.
func (s *Store) AddGlobalError(formID string, err rules.ValidationError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	form, ok := s.forms[formID]
	if !ok {
		return
	}
	form.globalErrors = append(form.globalErrors, err)
}

// ClearGlobalErrors removes all form-wide errors. No-op if the form does not
// exist.
func (s *Store) ClearGlobalErrors(formID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if form, ok := s.forms[formID]; ok {
		form.globalErrors = nil
	}
}

// SetFormSubmitting toggles the form's submitting flag. Setting it to true
// emits form_submit and leaves the attempt counter unchanged; the transition
// back to false increments SubmitAttempts exactly once and records
// LastSubmitAt, so the counter reflects completed submit cycles rather than
// button presses.
func (s *Store) SetFormSubmitting(formID string, submitting bool) {
	s.mu.Lock()
	form, ok := s.forms[formID]
	if !ok {
		s.mu.Unlock()
		return
	}

	var event Event
	emit := false
	if submitting {
		form.isSubmitting = true
		event = s.newEvent(EventFormSubmit, formID, "", nil, nil)
		emit = true
	} else if form.isSubmitting {
		form.isSubmitting = false
		form.submitAttempts++
		form.lastSubmitAt = s.now()
	}
	s.mu.Unlock()

	if emit {
		s.emit(event)
	}
}

// AddExceptionState activates an exception state. Adding an already-active
// state is a no-op; membership is a plain set.
func (s *Store) AddExceptionState(state exception.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[state] = struct{}{}
}

// RemoveExceptionState deactivates an exception state. No-op if inactive.
func (s *Store) RemoveExceptionState(state exception.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, state)
}

// ActiveExceptionStates returns the currently active exception states.
func (s *Store) ActiveExceptionStates() []exception.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	states := make([]exception.State, 0, len(s.active))
	for state := range s.active {
		states = append(states, state)
	}
	return states
}

// SetOnlineStatus updates the network-online flag and keeps the
// NETWORK_OFFLINE exception state in sync with it. This is the only
// exception state derived from an environment signal rather than toggled
// explicitly by a caller.
func (s *Store) SetOnlineStatus(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.online = online
	if online {
		delete(s.active, exception.NetworkOffline)
	} else {
		s.active[exception.NetworkOffline] = struct{}{}
	}
}

// ShouldSkipValidation reports whether any active exception state suppresses
// validation. A single skip-worthy state overrides all others. The offline
// flag is consulted independently in case NETWORK_OFFLINE was removed from
// the set while the process is still offline.
func (s *Store) ShouldSkipValidation() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shouldSkipLocked()
}

func (s *Store) shouldSkipLocked() bool {
	for state := range s.active {
		if s.policies.SkipValidation(state) {
			return true
		}
	}
	if !s.online && s.policies.SkipValidation(exception.NetworkOffline) {
		return true
	}
	return false
}

// FormSnapshot returns a deep copy of the form's current state.
func (s *Store) FormSnapshot(formID string) (FormState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	form, ok := s.forms[formID]
	if !ok {
		return FormState{}, false
	}
	return form.snapshot(), true
}

// FieldSnapshot returns a deep copy of one field's current state.
func (s *Store) FieldSnapshot(formID, fieldName string) (FieldState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	field, ok := s.field(formID, fieldName)
	if !ok {
		return FieldState{}, false
	}
	return field.snapshot(), true
}

// IsFieldValid reports whether the field's status is Valid.
func (s *Store) IsFieldValid(formID, fieldName string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	field, ok := s.field(formID, fieldName)
	return ok && field.status == StatusValid
}

// IsFormValid reports whether the form's aggregate status is Valid.
func (s *Store) IsFormValid(formID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	form, ok := s.forms[formID]
	return ok && form.status == StatusValid
}

// GetFieldErrors returns the field's blocking errors (SeverityError only).
func (s *Store) GetFieldErrors(formID, fieldName string) []rules.ValidationError {
	s.mu.RLock()
	defer s.mu.RUnlock()

	field, ok := s.field(formID, fieldName)
	if !ok {
		return nil
	}

	var out []rules.ValidationError
	for _, err := range field.errors {
		if err.Severity == rules.SeverityError {
			out = append(out, err)
		}
	}
	return out
}

// GetFieldWarnings returns the field's advisory entries: the warnings list
// plus any error entry tagged with SeverityWarning.
func (s *Store) GetFieldWarnings(formID, fieldName string) []rules.ValidationError {
	s.mu.RLock()
	defer s.mu.RUnlock()

	field, ok := s.field(formID, fieldName)
	if !ok {
		return nil
	}

	out := cloneErrors(field.warnings)
	for _, err := range field.errors {
		if err.Severity == rules.SeverityWarning {
			out = append(out, err)
		}
	}
	return out
}

// field returns the mutable field record; callers must hold the mutex.
func (s *Store) field(formID, fieldName string) (*fieldRecord, bool) {
	form, ok := s.forms[formID]
	if !ok {
		return nil, false
	}
	field, ok := form.fields[fieldName]
	return field, ok
}
