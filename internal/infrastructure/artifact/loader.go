// Package artifact loads frozen model artifacts from YAML and wires them into
// scoring pipelines.
package artifact

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bibbank/loanscore/internal/domain/model"
)

// File is the on-disk artifact bundle.
type File struct {
	ReferenceSamples map[string][]float64 `yaml:"reference_samples"`
	Variants         []VariantArtifact    `yaml:"variants"`
	Version          int                  `yaml:"version"`
}

// VariantArtifact holds the trained parameters for one variant.
type VariantArtifact struct {
	Scaler     *ScalerArtifact    `yaml:"scaler"`
	Name       string             `yaml:"name"`
	Features   []string           `yaml:"features"`
	Classifier ClassifierArtifact `yaml:"classifier"`
}

// ScalerArtifact is a fitted standard scaler. Embedded scalers are folded into
// the classifier instead of running as a separate stage.
type ScalerArtifact struct {
	Mean     []float64 `yaml:"mean"`
	Scale    []float64 `yaml:"scale"`
	Embedded bool      `yaml:"embedded"`
}

// ClassifierArtifact is a fitted logistic regression.
type ClassifierArtifact struct {
	Coefficients []float64 `yaml:"coefficients"`
	Intercept    float64   `yaml:"intercept"`
}

const supportedVersion = 1

// LoadFile reads and parses the artifact bundle at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact file: %w", err)
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes an artifact bundle. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if f.Version != supportedVersion {
		return nil, fmt.Errorf("unsupported artifact version %d", f.Version)
	}
	seen := make(map[string]struct{}, len(f.Variants))
	for _, v := range f.Variants {
		if v.Name == "" {
			return nil, fmt.Errorf("artifact entry without a variant name")
		}
		if _, dup := seen[v.Name]; dup {
			return nil, fmt.Errorf("variant %s listed twice", v.Name)
		}
		seen[v.Name] = struct{}{}
	}
	return &f, nil
}

// VariantNames returns the variant names in file order.
func (f *File) VariantNames() []string {
	names := make([]string, len(f.Variants))
	for i, v := range f.Variants {
		names[i] = v.Name
	}
	return names
}

// LoadReferenceSample implements port.ReferenceSampleSource from the bundle.
func (f *File) LoadReferenceSample(_ context.Context, name string) (model.ReferenceSample, error) {
	logits, ok := f.ReferenceSamples[name]
	if !ok {
		return model.ReferenceSample{}, fmt.Errorf("%w: %s not in artifact file", model.ErrEmptyReferenceSample, name)
	}
	return model.NewReferenceSample(name, slices.Clone(logits))
}
