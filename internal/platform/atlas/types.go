package atlas

// AdminDatabase is the authentication database every Atlas database user lives in.
const AdminDatabase = "admin"

// DefaultProviderName is the cloud provider used for new clusters.
const DefaultProviderName = "AWS"

// Cluster is the Atlas cluster representation. Optional fields are pointers so an
// unset value is omitted from request bodies instead of being sent as null or zero.
type Cluster struct {
	ID                string            `json:"id,omitempty"`
	GroupID           string            `json:"groupId,omitempty"`
	Name              string            `json:"name"`
	NumShards         *int              `json:"numShards,omitempty"`
	ReplicationFactor *int              `json:"replicationFactor,omitempty"`
	BackupEnabled     *bool             `json:"backupEnabled,omitempty"`
	DiskSizeGB        *float64          `json:"diskSizeGB,omitempty"`
	MongoDBVersion    string            `json:"mongoDBVersion,omitempty"`
	MongoURI          string            `json:"mongoURI,omitempty"`
	StateName         string            `json:"stateName,omitempty"`
	ProviderSettings  *ProviderSettings `json:"providerSettings,omitempty"`
}

// ProviderSettings groups the provider-specific cluster settings.
type ProviderSettings struct {
	ProviderName     string  `json:"providerName"`
	RegionName       *string `json:"regionName,omitempty"`
	InstanceSizeName *string `json:"instanceSizeName,omitempty"`
	DiskIOPS         *int    `json:"diskIOPS,omitempty"`
	EncryptEBSVolume *bool   `json:"encryptEBSVolume,omitempty"`
}

// Role is a database role grant in the canonical form the API expects.
type Role struct {
	DatabaseName string `json:"databaseName"`
	RoleName     string `json:"roleName"`
}

// DatabaseUser is the Atlas database user representation. Atlas never returns
// the password, so Password is only ever set on outgoing requests.
type DatabaseUser struct {
	DatabaseName string `json:"databaseName"`
	GroupID      string `json:"groupId,omitempty"`
	Username     string `json:"username"`
	Password     string `json:"password,omitempty"`
	Roles        []Role `json:"roles"`
}
