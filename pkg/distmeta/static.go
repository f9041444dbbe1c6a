// SPDX-License-Identifier: MPL-2.0

package distmeta

import (
	"fmt"
	"slices"
	"sort"
)

// Static is an in-memory [Index] for tests. The call counters let tests
// assert how many times a scan consulted the metadata, e.g. to verify that
// a lazy loader performs its full scan exactly once.
type Static struct {
	// Reqs maps a distribution name to its declared requirement
	// specifiers. A distribution may be present with an empty list; a
	// name absent from the map has no metadata at all.
	Reqs map[string][]string

	// Prov maps an importable module name to the distributions that
	// provide it.
	Prov map[string][]string

	// DistributionsCalls, RequiresCalls and ProvidesCalls count the
	// invocations of the corresponding methods.
	DistributionsCalls int
	RequiresCalls      int
	ProvidesCalls      int
}

// Distributions returns the sorted keys of Reqs.
func (s *Static) Distributions() ([]string, error) {
	s.DistributionsCalls++
	dists := make([]string, 0, len(s.Reqs))
	for dist := range s.Reqs {
		dists = append(dists, dist)
	}
	sort.Strings(dists)
	return dists, nil
}

// Requires returns the specifiers for dist, or [ErrNoMetadata] when dist is
// not in Reqs.
func (s *Static) Requires(dist string) ([]string, error) {
	s.RequiresCalls++
	reqs, ok := s.Reqs[dist]
	if !ok {
		return nil, fmt.Errorf("%s: %w", dist, ErrNoMetadata)
	}
	return slices.Clone(reqs), nil
}

// Provides returns a copy of Prov.
func (s *Static) Provides() (map[string][]string, error) {
	s.ProvidesCalls++
	provides := make(map[string][]string, len(s.Prov))
	for module, dists := range s.Prov {
		provides[module] = slices.Clone(dists)
	}
	return provides, nil
}
