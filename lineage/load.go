package lineage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileFormat is the on-disk YAML shape of a precomputed lineage dump.
type fileFormat struct {
	ModelImageEndpoints map[string][]string   `yaml:"model_image_endpoints"`
	ModelURIEndpoints   map[string][]string   `yaml:"model_uri_endpoints"`
	GroupModelURIs      map[string][]string   `yaml:"group_model_uris"`
	GroupModelImages    map[string][]string   `yaml:"group_model_images"`
	ImageJobs           map[string][]jobEntry `yaml:"image_jobs"`
	NameJobs            map[string][]jobEntry `yaml:"name_jobs"`
}

type jobEntry struct {
	URN       string `yaml:"urn"`
	Direction string `yaml:"direction"`
}

// LoadFile reads a lineage dump produced by an upstream correlation pass.
func LoadFile(path string) (*Index, *JobIndex, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, nil, fmt.Errorf("read lineage file: %w", err)
	}

	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, nil, fmt.Errorf("parse lineage file: %w", err)
	}

	ix := NewIndex()
	fillSets(ix.ModelImageEndpoints, ff.ModelImageEndpoints)
	fillSets(ix.ModelURIEndpoints, ff.ModelURIEndpoints)
	fillSets(ix.GroupModelURIs, ff.GroupModelURIs)
	fillSets(ix.GroupModelImages, ff.GroupModelImages)

	jx := NewJobIndex()
	if err := fillJobs(jx.ImageJobs, ff.ImageJobs); err != nil {
		return nil, nil, err
	}
	if err := fillJobs(jx.NameJobs, ff.NameJobs); err != nil {
		return nil, nil, err
	}

	return ix, jx, nil
}

func fillSets(dst map[string]Set, src map[string][]string) {
	for key, values := range src {
		for _, v := range values {
			add(dst, key, v)
		}
	}
}

func fillJobs(dst map[string][]JobReference, src map[string][]jobEntry) error {
	for key, entries := range src {
		for _, e := range entries {
			direction := JobDirection(e.Direction)
			if direction != Training && direction != Downstream {
				return fmt.Errorf("invalid job direction %q for %q", e.Direction, key)
			}
			dst[key] = append(dst[key], JobReference{URN: e.URN, Direction: direction})
		}
	}
	return nil
}
