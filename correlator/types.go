package correlator

import (
	"context"
	"time"
)

// EndpointSummary is one row of the endpoint listing.
type EndpointSummary struct {
	Name string
	ARN  string
}

// ModelSummary is one row of the model listing.
type ModelSummary struct {
	Name string
	ARN  string
}

// GroupSummary is one row of the model group listing.
type GroupSummary struct {
	Name string
}

// EndpointDetail is the describe payload for an endpoint.
// Properties carries every raw field not extracted structurally.
type EndpointDetail struct {
	Name         string
	ARN          string
	Status       string // platform status string, mapped via the status table
	CreationTime *time.Time
	Properties   map[string]string
}

// ModelDetail is the describe payload for a model.
type ModelDetail struct {
	Name         string
	ARN          string
	CreationTime *time.Time
	// Image and ModelDataURL come from the primary container.
	Image        string
	ModelDataURL string
	// ContainerDataURLs are the model-data URIs of secondary containers.
	ContainerDataURLs []string
	Properties        map[string]string
}

// GroupDetail is the describe payload for a model group.
type GroupDetail struct {
	Name         string
	ARN          string
	Description  string
	CreatedBy    string // creator user profile name, empty if unknown
	CreationTime *time.Time
	Properties   map[string]string
}

// Directory enumerates and describes ML entities on the host platform.
// List calls return the complete listing, all pages concatenated.
// Failures are fatal to the scan; retry policy belongs to the client.
type Directory interface {
	ListEndpoints(ctx context.Context) ([]EndpointSummary, error)
	DescribeEndpoint(ctx context.Context, name string) (*EndpointDetail, error)
	ListModels(ctx context.Context) ([]ModelSummary, error)
	DescribeModel(ctx context.Context, name string) (*ModelDetail, error)
	ListGroups(ctx context.Context) ([]GroupSummary, error)
	DescribeGroup(ctx context.Context, name string) (*GroupDetail, error)
}
