// SPDX-License-Identifier: MPL-2.0

package distmeta

import (
	"errors"
	"strings"
)

// ErrNoMetadata signals that a distribution has no retrievable metadata.
// This is a legitimate state, not a failure: a name can refer to a module
// assembled from several declared distributions, or to a distribution whose
// metadata registration is incomplete. Callers are expected to fall back to
// the provides map when they see it.
var ErrNoMetadata = errors.New("no distribution metadata")

// Index is a read-only snapshot view of the installed distribution set.
type Index interface {
	// Distributions returns the names of all installed distributions,
	// sorted lexicographically.
	Distributions() ([]string, error)

	// Requires returns the raw requirement specifiers declared by the
	// named distribution. It returns an error wrapping [ErrNoMetadata]
	// when no metadata exists for the name.
	Requires(dist string) ([]string, error)

	// Provides maps each importable module name to the distributions that
	// provide it. The result is a fresh snapshot on every call.
	Provides() (map[string][]string, error)
}

// Manifest is the metadata one installed distribution declares.
type Manifest struct {
	// Name is the distribution name.
	Name string `toml:"name"`

	// Version is the installed version (informational only; the
	// autoloader never interprets it).
	Version string `toml:"version"`

	// Modules lists the importable module names this distribution
	// provides. When empty, the distribution is assumed to provide the
	// underscored form of its own name.
	Modules []string `toml:"modules"`

	// Requires lists the raw requirement specifiers, e.g. "extencli>=1.0".
	Requires []string `toml:"requires"`
}

// EffectiveModules returns the module names the manifest provides,
// substituting the underscored distribution name when none are declared.
func (m *Manifest) EffectiveModules() []string {
	if len(m.Modules) > 0 {
		return m.Modules
	}
	return []string{strings.ReplaceAll(m.Name, "-", "_")}
}
