// SPDX-License-Identifier: MPL-2.0

package distmeta

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// manifestExt is the filename extension of installed distribution manifests.
const manifestExt = ".toml"

// Dir is an [Index] over one or more directories of installed distribution
// manifests. Each manifest is a "<distribution>.toml" file; when the same
// distribution appears in several directories, the earliest directory wins.
//
// Dir holds no state between calls: every query re-reads the filesystem, so
// each scan observes a fresh snapshot.
type Dir struct {
	paths []string
}

// NewDir creates a Dir over the given manifest directories. Directories that
// do not exist are silently skipped, so a fresh installation with no
// extensions behaves as an empty index.
func NewDir(paths ...string) *Dir {
	return &Dir{paths: paths}
}

// Distributions returns the sorted names of all readable manifests.
// Malformed manifest files are skipped; they surface later as parse errors
// from [Dir.Requires] if something depends on them.
func (d *Dir) Distributions() ([]string, error) {
	seen := make(map[string]bool)
	var dists []string
	for _, m := range d.readAll() {
		if seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		dists = append(dists, m.Name)
	}
	sort.Strings(dists)
	return dists, nil
}

// Requires returns the requirement specifiers declared by dist. A missing
// manifest yields [ErrNoMetadata]; a manifest that exists but cannot be
// parsed yields the parse error.
func (d *Dir) Requires(dist string) ([]string, error) {
	for _, dir := range d.paths {
		path := filepath.Join(dir, dist+manifestExt)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		m, err := parseManifest(data, path)
		if err != nil {
			return nil, err
		}
		return m.Requires, nil
	}
	return nil, fmt.Errorf("%s: %w", dist, ErrNoMetadata)
}

// Provides builds the module-to-distributions map from all readable
// manifests.
func (d *Dir) Provides() (map[string][]string, error) {
	provides := make(map[string][]string)
	for _, m := range d.readAll() {
		for _, module := range m.EffectiveModules() {
			provides[module] = append(provides[module], m.Name)
		}
	}
	return provides, nil
}

// Malformed returns the paths of manifest files that exist but fail to
// parse, so callers can report them instead of silently dropping them from
// enumeration.
func (d *Dir) Malformed() []string {
	var paths []string
	for _, dir := range d.paths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), manifestExt) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if _, err := parseManifest(data, path); err != nil {
				paths = append(paths, path)
			}
		}
	}
	sort.Strings(paths)
	return paths
}

// readAll parses every manifest under the configured directories, earliest
// directory first. Unreadable or malformed files are dropped; a distribution
// name shadowed by an earlier directory is dropped too.
func (d *Dir) readAll() []*Manifest {
	seen := make(map[string]bool)
	var manifests []*Manifest
	for _, dir := range d.paths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), manifestExt) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			m, err := parseManifest(data, path)
			if err != nil {
				continue
			}
			if seen[m.Name] {
				continue
			}
			seen[m.Name] = true
			manifests = append(manifests, m)
		}
	}
	return manifests
}

// parseManifest decodes a manifest and fills in the name from the filename
// when the file omits it.
func parseManifest(data []byte, path string) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), manifestExt)
	}
	return &m, nil
}
