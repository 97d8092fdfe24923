// Package formstate implements a front-end-agnostic validation state
// manager: a process-wide store that tracks the validation status of forms
// and their fields, runs rule pipelines against user input, and coordinates
// that work with a set of frontend exception states (offline, server
// unavailable, session expired, ...) that suppress or alter validation.
//
// # Model
//
// A form is registered with a fixed set of field names. Each field carries a
// status (pending, validating, valid, invalid), ordered error and warning
// lists, touched/dirty flags, and its last known value. The form aggregates
// those into its own status plus global errors, a submitting flag, and a
// completed-submit counter.
//
// ValidateField is the only place rules execute; it evaluates the supplied
// rules sequentially so the error order is deterministic, and never returns
// a Go error; all failure is communicated through the Result shape.
// ValidateForm is a pure reducer over already-validated field state.
//
// Active exception states whose policy sets SkipValidation turn both calls
// into optimistic passes: exception states make validation pass, never fail.
//
// # Events
//
// Listeners registered with Subscribe receive field_change, field_blur,
// validation_complete, and form_submit events synchronously in registration
// order. A panicking listener is recovered and logged without affecting the
// rest.
//
// # Usage
//
//	store := formstate.New()
//	store.CreateForm("login", []string{"email", "password"})
//
//	store.SetFieldValue("login", "email", input)
//	result := store.ValidateField(ctx, "login", "email", input,
//	    rules.Required(), rules.Email())
//	if !result.IsValid {
//	    show(result.Errors[0].Message)
//	}
//
// Overlapping asynchronous validations of the same field are
// last-write-wins by default; construct the store WithStaleResultDiscard to
// drop superseded results instead.
package formstate
