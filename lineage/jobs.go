package lineage

// JobDirection says whether a job produced a model or consumed it.
type JobDirection string

const (
	Training   JobDirection = "TRAINING"
	Downstream JobDirection = "DOWNSTREAM"
)

// JobReference points at a training or downstream job already known to
// the catalog. References are produced by an external job-correlation
// pass and filed under the key they were matched on.
type JobReference struct {
	URN       string
	Direction JobDirection
}

// JobIndex maps model identifiers to the jobs referencing them.
type JobIndex struct {
	// ImageJobs is keyed by container image path or model-data URI.
	ImageJobs map[string][]JobReference
	// NameJobs is keyed by model name.
	NameJobs map[string][]JobReference
}

// NewJobIndex returns an empty job index.
func NewJobIndex() *JobIndex {
	return &JobIndex{
		ImageJobs: make(map[string][]JobReference),
		NameJobs:  make(map[string][]JobReference),
	}
}

// AddImageJob files a job reference under an image path or model-data URI.
func (jx *JobIndex) AddImageJob(key string, job JobReference) {
	jx.ImageJobs[key] = append(jx.ImageJobs[key], job)
}

// AddNameJob files a job reference under a model name.
func (jx *JobIndex) AddNameJob(name string, job JobReference) {
	jx.NameJobs[name] = append(jx.NameJobs[name], job)
}
