// Package lineage holds the precomputed reverse-lookup tables that
// correlate container image paths and model-data URIs to endpoints and
// model groups. The tables are built by an upstream pass (or loaded
// from a file) and read-only during a scan.
package lineage

// Set is a set of string identifiers (ARNs, URIs or image paths).
type Set map[string]struct{}

// Add inserts v into the set.
func (s Set) Add(v string) {
	s[v] = struct{}{}
}

// Has reports whether v is in the set.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Index maps indirect identifiers to the entities they link.
// The directory API exposes no foreign keys between models, endpoints
// and groups; these four tables are the only join paths available.
type Index struct {
	// ModelImageEndpoints maps a container image path to endpoint ARNs.
	ModelImageEndpoints map[string]Set
	// ModelURIEndpoints maps a model-data URI to endpoint ARNs.
	ModelURIEndpoints map[string]Set
	// GroupModelURIs maps a group ARN to member model-data URIs.
	GroupModelURIs map[string]Set
	// GroupModelImages maps a group ARN to member container image paths.
	GroupModelImages map[string]Set
}

// NewIndex returns an empty lineage index.
func NewIndex() *Index {
	return &Index{
		ModelImageEndpoints: make(map[string]Set),
		ModelURIEndpoints:   make(map[string]Set),
		GroupModelURIs:      make(map[string]Set),
		GroupModelImages:    make(map[string]Set),
	}
}

func add(m map[string]Set, key, value string) {
	s, ok := m[key]
	if !ok {
		s = make(Set)
		m[key] = s
	}
	s.Add(value)
}

// AddImageEndpoint links a container image path to an endpoint ARN.
func (ix *Index) AddImageEndpoint(image, endpointARN string) {
	add(ix.ModelImageEndpoints, image, endpointARN)
}

// AddURIEndpoint links a model-data URI to an endpoint ARN.
func (ix *Index) AddURIEndpoint(uri, endpointARN string) {
	add(ix.ModelURIEndpoints, uri, endpointARN)
}

// AddGroupModelURI links a group ARN to a member model-data URI.
func (ix *Index) AddGroupModelURI(groupARN, uri string) {
	add(ix.GroupModelURIs, groupARN, uri)
}

// AddGroupModelImage links a group ARN to a member container image path.
func (ix *Index) AddGroupModelImage(groupARN, image string) {
	add(ix.GroupModelImages, groupARN, image)
}
