// Package retry executes operations under the declarative retry metadata
// attached to exception-state policies.
//
// The formstate store treats retry parameters as data only: a policy says
// "retry up to 5 times, 5s apart, exponentially" and this package is the
// collaborator that actually does so, built on cenkalti/backoff.
//
// # Usage
//
//	table := exception.DefaultPolicies()
//	err := retry.ForState(ctx, table, exception.ServerUnavailable, func(ctx context.Context) error {
//	    return pingServer(ctx)
//	})
//
// Use Permanent to abort early on errors that will never succeed:
//
//	return retry.Permanent(err)
package retry
