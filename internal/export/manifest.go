package export

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const ManifestFile = "manifest.yaml"

// Manifest describes one run. It carries no wall-clock time so two runs with
// the same seed and base date produce identical bytes.
type Manifest struct {
	RunID         string       `yaml:"run_id"`
	Seed          int64        `yaml:"seed"`
	Scale         int          `yaml:"scale"`
	Variant       string       `yaml:"variant"`
	Format        string       `yaml:"format"`
	BaseDate      string       `yaml:"base_date"`
	CatalogSource string       `yaml:"catalog_source"`
	Tables        []TableCount `yaml:"tables"`
	Files         []string     `yaml:"files"`
}

type TableCount struct {
	Name string `yaml:"name"`
	Rows int    `yaml:"rows"`
}

// WriteManifest stores m as manifest.yaml in dir, atomically.
func WriteManifest(dir string, m *Manifest) (string, error) {
	st := &staging{dir: dir}
	f, err := st.create(ManifestFile)
	if err != nil {
		return "", err
	}

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		f.Close()
		st.abort()
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		st.abort()
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := f.Close(); err != nil {
		st.abort()
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	paths, err := st.commit()
	if err != nil {
		return "", err
	}
	return paths[0], nil
}

func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &m, nil
}
