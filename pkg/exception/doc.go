// Package exception defines the frontend exception states (offline, server
// unavailable, session expired, ...) and the static policy table mapping each
// state to a behavior record: whether validation should be skipped, whether
// a fallback UI should be shown, and declarative retry parameters for an
// external retry executor.
//
// Membership in the active-state set is managed by the formstate store; this
// package only describes the states and their policies. Policies can be
// overridden per deployment from a YAML document via LoadPolicies, which
// merges field-level overrides onto DefaultPolicies.
//
// # Usage
//
//	table := exception.DefaultPolicies()
//	if table.SkipValidation(exception.MaintenanceMode) {
//	    // validation is suspended while maintenance mode is active
//	}
//
// Override from configuration:
//
//	f, _ := os.Open("policies.yaml")
//	table, err := exception.LoadPolicies(f)
package exception
