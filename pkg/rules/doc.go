// Package rules provides the rule catalog for the formstate validation
// engine: small, stateless predicates over a field value plus a snapshot of
// the owning form's data.
//
// Every built-in constructor returns a Rule value carrying its failure
// metadata (kind, message, severity) alongside the predicate itself, so the
// store can turn a failed evaluation into a well-formed ValidationError
// without knowing anything about the rule's internals. Custom rules plug in
// through New and NewAsync.
//
// # Built-in catalog
//
//   - Required            – value must be present and non-empty
//   - Email, Phone        – format checks (KindFormat)
//   - MinLength, MaxLength – rune-length bounds (KindLength)
//   - Pattern             – regular-expression match (KindPattern)
//   - Range, Min, Max     – numeric bounds (KindRange)
//   - Unique              – asynchronous remote existence check (KindUniqueness)
//
// All rules except Required pass on empty values; compose with Required when
// absence should be rejected. The Unique rule debounces its checker and
// fails open on checker errors so a dead backend never blocks a form.
//
// # Usage
//
//	result := store.ValidateField(ctx, "signup", "email", input,
//	    rules.Required(),
//	    rules.Email(),
//	    rules.Unique(checker),
//	)
package rules
