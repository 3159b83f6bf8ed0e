// Package reconcile converges Atlas clusters and database users towards a
// desired state.
//
// A pass fetches the current resource, asks the kind's engine for a plan and
// dispatches at most one write. Engines are pure: they see the desired spec and
// the observed representation (nil when absent) and never touch the network.
// The package does not log and does not retry; transport errors surface as
// *OperationError wrapping the client's error.
package reconcile
