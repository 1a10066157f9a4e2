// Package record defines the normalized catalog records produced by a scan.
package record

// Kind identifies which entity a record describes.
type Kind string

const (
	KindEndpoint Kind = "endpoint"
	KindModel    Kind = "model"
	KindGroup    Kind = "group"
)

// DeploymentStatus is the canonical deployment lifecycle state of an endpoint.
type DeploymentStatus string

const (
	StatusOutOfService DeploymentStatus = "OUT_OF_SERVICE"
	StatusCreating     DeploymentStatus = "CREATING"
	StatusUpdating     DeploymentStatus = "UPDATING"
	StatusRollingBack  DeploymentStatus = "ROLLING_BACK"
	StatusInService    DeploymentStatus = "IN_SERVICE"
	StatusDeleting     DeploymentStatus = "DELETING"
	StatusFailed       DeploymentStatus = "FAILED"
	StatusUnknown      DeploymentStatus = "UNKNOWN"
)

// OwnershipType classifies how an owner relates to an entity.
type OwnershipType string

// OwnerDataOwner is the only ownership type this scanner assigns.
const OwnerDataOwner OwnershipType = "DATAOWNER"

// Owner attributes an entity to a user.
type Owner struct {
	Owner string        `json:"owner"`
	Type  OwnershipType `json:"type"`
}

// Record is one normalized output unit of a scan.
// The catalog sink assigns its own identifiers; the URN is the stable key.
type Record interface {
	RecordURN() string
	RecordKind() Kind
}

// Endpoint is a deployed inference endpoint snapshot.
type Endpoint struct {
	URN        string            `json:"urn"`
	Name       string            `json:"name"`
	ARN        string            `json:"arn"`
	CreatedAt  int64             `json:"created_at"` // milliseconds since epoch
	Status     DeploymentStatus  `json:"status"`
	Properties map[string]string `json:"properties,omitempty"`
}

func (e *Endpoint) RecordURN() string { return e.URN }
func (e *Endpoint) RecordKind() Kind  { return KindEndpoint }

// Model is a registered model with its resolved cross-references.
type Model struct {
	URN            string            `json:"urn"`
	Name           string            `json:"name"`
	ARN            string            `json:"arn"`
	CreatedAt      int64             `json:"created_at"`
	Deployments    []string          `json:"deployments,omitempty"`     // endpoint URNs, sorted
	TrainingJobs   []string          `json:"training_jobs,omitempty"`   // job URNs, sorted
	DownstreamJobs []string          `json:"downstream_jobs,omitempty"` // job URNs, sorted
	Properties     map[string]string `json:"properties,omitempty"`
}

func (m *Model) RecordURN() string { return m.URN }
func (m *Model) RecordKind() Kind  { return KindModel }

// Group is a model package group with its resolved member models.
type Group struct {
	URN         string            `json:"urn"`
	Name        string            `json:"name"`
	ARN         string            `json:"arn"`
	CreatedAt   int64             `json:"created_at"`
	Description string            `json:"description,omitempty"`
	Models      []string          `json:"models,omitempty"` // model URNs, sorted
	Owners      []Owner           `json:"owners,omitempty"`
	Properties  map[string]string `json:"properties,omitempty"`
}

func (g *Group) RecordURN() string { return g.URN }
func (g *Group) RecordKind() Kind  { return KindGroup }
