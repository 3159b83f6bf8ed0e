package reconcile

import (
	"errors"
	"fmt"
)

// Kind identifies the resource type a pass operates on.
type Kind string

const (
	KindCluster Kind = "cluster"
	KindUser    Kind = "user"
)

// Action is the single remote write chosen for a pass.
type Action string

const (
	ActionNone   Action = "none"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Outcome is the result of one pass.
type Outcome struct {
	Kind    Kind   `json:"kind"`
	Key     string `json:"key"`
	Action  Action `json:"action"`
	Changed bool   `json:"changed"`
	// Resource is the representation returned by the write, or the observed one
	// for a no-op pass. It is nil after a delete and when nothing exists.
	Resource any `json:"resource,omitempty"`
}

// ErrPolicyViolation reports a plan that contradicts the observed presence,
// such as deleting a resource that was not found.
var ErrPolicyViolation = errors.New("plan contradicts observed state")

// OperationError is returned when a remote call of a pass fails.
type OperationError struct {
	Op   string
	Kind Kind
	Key  string
	Err  error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s %s %q: %v", e.Op, e.Kind, e.Key, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func opError(op string, kind Kind, key string, err error) error {
	return &OperationError{Op: op, Kind: kind, Key: key, Err: err}
}
