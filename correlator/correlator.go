// Package correlator reconstructs the relationships between models,
// deployed endpoints and model groups from independently paginated
// directory listings. The directory exposes no foreign keys, so links
// are resolved through the lineage index and side tables built during
// the scan: endpoint ARN to name, then model URI/image to model name.
package correlator

import (
	"context"
	"fmt"
	"iter"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/yairfalse/sagescan/lineage"
	"github.com/yairfalse/sagescan/pkg/record"
)

// Correlator runs one scan: endpoints, then models, then groups.
// The pass order is load-bearing — model records embed endpoint names
// resolved through arnToName, and group records embed model names
// resolved through the URI/image side tables. One instance serves one
// scan; the tables are never reused or shared.
type Correlator struct {
	dir     Directory
	lineage *lineage.Index
	jobs    *lineage.JobIndex
	report  *Report
	env     string
	now     func() time.Time
	logger  zerolog.Logger

	arnToName        map[string]string
	modelURIToName   map[string]string
	modelImageToName map[string]string
}

// Option configures a Correlator.
type Option func(*Correlator)

// WithClock overrides the clock used when a creation time is missing.
func WithClock(now func() time.Time) Option {
	return func(c *Correlator) { c.now = now }
}

// WithLogger sets the scan logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Correlator) { c.logger = logger }
}

// New creates a correlator for a single scan. env is the catalog
// fabric the emitted URNs belong to (e.g. "PROD").
func New(dir Directory, ix *lineage.Index, jobs *lineage.JobIndex, rep *Report, env string, opts ...Option) *Correlator {
	c := &Correlator{
		dir:              dir,
		lineage:          ix,
		jobs:             jobs,
		report:           rep,
		env:              env,
		now:              time.Now,
		logger:           zerolog.Nop(),
		arnToName:        make(map[string]string),
		modelURIToName:   make(map[string]string),
		modelImageToName: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Records returns the scan as a lazily produced record sequence, one
// record per entity, in deterministic order. A consumer can emit and
// checkpoint each record without buffering the whole scan. The first
// directory failure is yielded as an error and ends the sequence.
func (c *Correlator) Records(ctx context.Context) iter.Seq2[record.Record, error] {
	return func(yield func(record.Record, error) bool) {
		if !c.endpointPass(ctx, yield) {
			return
		}
		if !c.modelPass(ctx, yield) {
			return
		}
		c.groupPass(ctx, yield)
	}
}

// endpointPass emits endpoint records and builds the ARN to name index
// the model pass depends on.
func (c *Correlator) endpointPass(ctx context.Context, yield func(record.Record, error) bool) bool {
	endpoints, err := c.dir.ListEndpoints(ctx)
	if err != nil {
		return yieldErr(yield, fmt.Errorf("list endpoints: %w", err))
	}

	// Re-sort by ARN so output order is independent of the API's.
	sort.Slice(endpoints, func(i, j int) bool { return endpoints[i].ARN < endpoints[j].ARN })
	c.logger.Debug().Int("endpoints", len(endpoints)).Msg("endpoint pass")

	for _, ep := range endpoints {
		detail, err := c.dir.DescribeEndpoint(ctx, ep.Name)
		if err != nil {
			return yieldErr(yield, fmt.Errorf("describe endpoint %s: %w", ep.Name, err))
		}

		c.arnToName[ep.ARN] = detail.Name

		c.report.reportEndpointScanned()
		rec := c.endpointRecord(detail)
		c.report.reportRecord()
		if !yield(rec, nil) {
			return false
		}
	}

	return true
}

func (c *Correlator) endpointRecord(detail *EndpointDetail) *record.Endpoint {
	return &record.Endpoint{
		URN:        record.MakeDeploymentURN(detail.Name, c.env),
		Name:       detail.Name,
		ARN:        detail.ARN,
		CreatedAt:  c.millis(detail.CreationTime),
		Status:     c.endpointStatus(detail.Name, detail.ARN, detail.Status),
		Properties: detail.Properties,
	}
}

// modelPass emits model records and populates the URI/image side
// tables consumed by the group pass.
func (c *Correlator) modelPass(ctx context.Context, yield func(record.Record, error) bool) bool {
	models, err := c.dir.ListModels(ctx)
	if err != nil {
		return yieldErr(yield, fmt.Errorf("list models: %w", err))
	}

	sort.Slice(models, func(i, j int) bool { return models[i].ARN < models[j].ARN })
	c.logger.Debug().Int("models", len(models)).Msg("model pass")

	for _, m := range models {
		detail, err := c.dir.DescribeModel(ctx, m.Name)
		if err != nil {
			return yieldErr(yield, fmt.Errorf("describe model %s: %w", m.Name, err))
		}

		c.report.reportModelScanned()
		rec := c.modelRecord(detail)
		c.report.reportRecord()
		if !yield(rec, nil) {
			return false
		}
	}

	return true
}

func (c *Correlator) modelRecord(detail *ModelDetail) *record.Model {
	endpointARNs := make(map[string]struct{})

	// Models sharing an image or URI overwrite each other here; models
	// are processed in ARN order, so the last one wins deterministically.
	if detail.Image != "" {
		for arn := range c.lineage.ModelImageEndpoints[detail.Image] {
			endpointARNs[arn] = struct{}{}
		}
		c.modelImageToName[detail.Image] = detail.Name
	}
	if detail.ModelDataURL != "" {
		for arn := range c.lineage.ModelURIEndpoints[detail.ModelDataURL] {
			endpointARNs[arn] = struct{}{}
		}
		c.modelURIToName[detail.ModelDataURL] = detail.Name
	}

	// An ARN missing from the first pass means the endpoint was deleted
	// or unlisted; drop it silently.
	var endpointNames []string
	for arn := range endpointARNs {
		if name, ok := c.arnToName[arn]; ok {
			endpointNames = append(endpointNames, name)
		}
	}
	sort.Strings(endpointNames)

	deployments := make([]string, 0, len(endpointNames))
	for _, name := range endpointNames {
		deployments = append(deployments, record.MakeDeploymentURN(name, c.env))
	}

	training, downstream := c.modelJobs(detail)

	return &record.Model{
		URN:            record.MakeModelURN(detail.Name, c.env),
		Name:           detail.Name,
		ARN:            detail.ARN,
		CreatedAt:      c.millis(detail.CreationTime),
		Deployments:    deployments,
		TrainingJobs:   training,
		DownstreamJobs: downstream,
		Properties:     detail.Properties,
	}
}

// modelJobs resolves the training and downstream job URNs for a model
// by unioning the job sets keyed by each of its model-data URIs and by
// its own name, partitioned by direction.
func (c *Correlator) modelJobs(detail *ModelDetail) (training, downstream []string) {
	trainingSet := make(map[string]struct{})
	downstreamSet := make(map[string]struct{})

	partition := func(jobs []lineage.JobReference) {
		for _, job := range jobs {
			switch job.Direction {
			case lineage.Training:
				trainingSet[job.URN] = struct{}{}
			case lineage.Downstream:
				downstreamSet[job.URN] = struct{}{}
			}
		}
	}

	dataURLs := make([]string, 0, len(detail.ContainerDataURLs)+1)
	dataURLs = append(dataURLs, detail.ContainerDataURLs...)
	if detail.ModelDataURL != "" {
		dataURLs = append(dataURLs, detail.ModelDataURL)
	}

	for _, url := range dataURLs {
		partition(c.jobs.ImageJobs[url])
	}
	partition(c.jobs.NameJobs[detail.Name])

	return sortedKeys(trainingSet), sortedKeys(downstreamSet)
}

// groupPass emits group records, resolving membership through the side
// tables filled by the model pass.
func (c *Correlator) groupPass(ctx context.Context, yield func(record.Record, error) bool) {
	groups, err := c.dir.ListGroups(ctx)
	if err != nil {
		yieldErr(yield, fmt.Errorf("list model groups: %w", err))
		return
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	c.logger.Debug().Int("groups", len(groups)).Msg("group pass")

	for _, g := range groups {
		detail, err := c.dir.DescribeGroup(ctx, g.Name)
		if err != nil {
			yieldErr(yield, fmt.Errorf("describe model group %s: %w", g.Name, err))
			return
		}

		c.report.reportGroupScanned()
		rec := c.groupRecord(detail)
		c.report.reportRecord()
		if !yield(rec, nil) {
			return
		}
	}
}

func (c *Correlator) groupRecord(detail *GroupDetail) *record.Group {
	memberNames := make(map[string]struct{})

	// URIs and images not seen during the model pass belong to models
	// outside this scan; drop them silently.
	for uri := range c.lineage.GroupModelURIs[detail.ARN] {
		if name, ok := c.modelURIToName[uri]; ok {
			memberNames[name] = struct{}{}
		}
	}
	for image := range c.lineage.GroupModelImages[detail.ARN] {
		if name, ok := c.modelImageToName[image]; ok {
			memberNames[name] = struct{}{}
		}
	}

	names := sortedKeys(memberNames)
	models := make([]string, 0, len(names))
	for _, name := range names {
		models = append(models, record.MakeModelURN(name, c.env))
	}

	var owners []record.Owner
	if detail.CreatedBy != "" {
		owners = append(owners, record.Owner{Owner: detail.CreatedBy, Type: record.OwnerDataOwner})
	}

	return &record.Group{
		URN:         record.MakeGroupURN(detail.Name, c.env),
		Name:        detail.Name,
		ARN:         detail.ARN,
		CreatedAt:   c.millis(detail.CreationTime),
		Description: detail.Description,
		Models:      models,
		Owners:      owners,
		Properties:  detail.Properties,
	}
}

// millis converts a creation time to milliseconds since epoch, falling
// back to the injected clock when the field is absent.
func (c *Correlator) millis(t *time.Time) int64 {
	if t == nil {
		return c.now().UnixMilli()
	}
	return t.UnixMilli()
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// yieldErr reports a fatal scan error to the consumer. Always false.
func yieldErr(yield func(record.Record, error) bool, err error) bool {
	yield(nil, err)
	return false
}
