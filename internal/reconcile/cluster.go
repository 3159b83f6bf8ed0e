package reconcile

import (
	"github.com/imamik/atlasctl/internal/config"
	"github.com/imamik/atlasctl/internal/platform/atlas"
)

// ClusterPlan is the decision of the cluster engine for one pass.
type ClusterPlan struct {
	Action  Action
	Changed bool
	// Payload is set for ActionCreate.
	Payload *atlas.Cluster
}

// ClusterEngine decides how to converge a cluster. Existing clusters are never
// modified: a present cluster is left alone whatever its settings.
type ClusterEngine struct {
	providerName string
}

// ClusterEngineOption configures a ClusterEngine.
type ClusterEngineOption func(*ClusterEngine)

// WithProviderName sets the cloud provider written into create payloads.
func WithProviderName(name string) ClusterEngineOption {
	return func(e *ClusterEngine) {
		e.providerName = name
	}
}

// NewClusterEngine creates an engine provisioning on AWS unless overridden.
func NewClusterEngine(opts ...ClusterEngineOption) *ClusterEngine {
	e := &ClusterEngine{providerName: atlas.DefaultProviderName}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Decide returns the plan for spec given the observed cluster (nil if absent).
func (e *ClusterEngine) Decide(spec config.ClusterSpec, observed *atlas.Cluster) ClusterPlan {
	present := observed != nil
	switch spec.State.OrDefault() {
	case config.StateAbsent:
		if present {
			return ClusterPlan{Action: ActionDelete, Changed: true}
		}
	default:
		if !present {
			return ClusterPlan{Action: ActionCreate, Changed: true, Payload: e.createPayload(spec)}
		}
	}
	return ClusterPlan{Action: ActionNone}
}

// createPayload copies only the optional fields that are set.
func (e *ClusterEngine) createPayload(spec config.ClusterSpec) *atlas.Cluster {
	return &atlas.Cluster{
		Name:              spec.Name,
		NumShards:         spec.NumShards,
		ReplicationFactor: spec.ReplicationFactor,
		BackupEnabled:     spec.BackupEnabled,
		DiskSizeGB:        spec.DiskSizeGB,
		ProviderSettings: &atlas.ProviderSettings{
			ProviderName:     e.providerName,
			RegionName:       spec.RegionName,
			InstanceSizeName: spec.InstanceSize,
			DiskIOPS:         spec.DiskIOPS,
			EncryptEBSVolume: spec.Encrypt,
		},
	}
}
