// Package orchestration applies a whole desired-state document.
//
// Each cluster and user in the document gets its own independent
// reconciliation pass. Passes run in parallel up to a configured limit, and
// a failing pass never stops the others: the Report lists every outcome and
// every failure.
package orchestration
