// SPDX-License-Identifier: MPL-2.0

package autoload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"extencli/pkg/distmeta"
	"extencli/pkg/extension"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type (
	// Group is an auto-extensible command group. It presents the two
	// standard group operations, ListCommands and GetCommand, and
	// transparently ensures every dependent extension module has been
	// activated before either is answered.
	//
	// A Group is built for single-threaded use: one instance per CLI root
	// invocation, driven from the command dispatch path.
	Group struct {
		root      *cobra.Command
		registrar extension.Registrar
		index     distmeta.Index
		table     *extension.Table
		dependsOn []string
		logger    *log.Logger

		// extended flips to true exactly once, after the first
		// complete scan, and never resets.
		extended bool
	}

	// Option configures a Group at construction.
	Option func(*Group)

	// Status describes one installed distribution for reporting.
	Status struct {
		// Distribution is the installed distribution name.
		Distribution string
		// Modules are the importable module names it provides.
		Modules []string
		// Matched reports whether its requirement closure mentions
		// one of the group's host dependency names.
		Matched bool
		// Activated reports whether all of its modules have run
		// their registration entry points.
		Activated bool
	}
)

// WithTable overrides the module table used for activation. The default is
// [extension.Default].
func WithTable(t *extension.Table) Option {
	return func(g *Group) { g.table = t }
}

// WithLogger overrides the group's logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Group) { g.logger = l }
}

// New creates a Group over root that scans index for distributions depending
// on any of the dependsOn names. The names are aliases for the same logical
// host package, stored verbatim; pass every spelling extensions might use,
// or use [Variants] to cover the dash/underscore forms of one name. The
// alias list is immutable for the group's lifetime.
func New(root *cobra.Command, index distmeta.Index, dependsOn []string, opts ...Option) *Group {
	g := &Group{
		root:      root,
		registrar: extension.NewRegistrar(root),
		index:     index,
		table:     extension.Default,
		dependsOn: slices.Clone(dependsOn),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Variants returns the unique dash and underscore spellings of name, for
// callers that want a separator-insensitive dependency match. "my_pkg"
// yields ["my-pkg", "my_pkg"]; a name without separators yields itself.
func Variants(name string) []string {
	dashed := strings.ReplaceAll(name, "_", "-")
	underscored := strings.ReplaceAll(name, "-", "_")
	if dashed == underscored {
		return []string{dashed}
	}
	return []string{dashed, underscored}
}

// DependsOn returns a copy of the group's dependency name aliases.
func (g *Group) DependsOn() []string {
	return slices.Clone(g.dependsOn)
}

// Root returns the underlying root command.
func (g *Group) Root() *cobra.Command {
	return g.root
}

// Index returns the distribution index the group scans.
func (g *Group) Index() distmeta.Index {
	return g.index
}

// ListCommands activates pending extensions, then returns the sorted,
// de-duplicated names of every command registered on the root.
func (g *Group) ListCommands(ctx context.Context) ([]string, error) {
	if err := g.Extend(ctx); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var names []string
	for _, cmd := range g.root.Commands() {
		if seen[cmd.Name()] {
			continue
		}
		seen[cmd.Name()] = true
		names = append(names, cmd.Name())
	}
	sort.Strings(names)
	return names, nil
}

// GetCommand activates pending extensions, then resolves name against the
// root's registry, honoring cobra aliases. An unknown name returns
// (nil, nil): absence is an answer, not an error.
func (g *Group) GetCommand(ctx context.Context, name string) (*cobra.Command, error) {
	if err := g.Extend(ctx); err != nil {
		return nil, err
	}
	for _, cmd := range g.root.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return cmd, nil
		}
	}
	return nil, nil
}

// Extend performs the one-time extension scan. It is idempotent: once a scan
// has completed, further calls return immediately.
//
// The scan takes a fresh provides-map snapshot, walks the installed module
// names in lexicographic order, and activates every module whose transitive
// requirement closure mentions one of the configured dependency names. An
// activation failure propagates to the caller and leaves the group
// unextended, so the next operation retries the scan; already-activated
// modules are naturally skipped on retry by the module table.
func (g *Group) Extend(ctx context.Context) error {
	if g.extended {
		return nil
	}

	provides, err := g.index.Provides()
	if err != nil {
		return fmt.Errorf("scan installed distributions: %w", err)
	}

	modules := make([]string, 0, len(provides))
	for module := range provides {
		modules = append(modules, module)
	}
	sort.Strings(modules)

	for _, module := range modules {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !g.matches(provides, module) {
			continue
		}
		g.logger.Debug("activating extension module", "module", module)
		if err := g.table.Activate(module, g.registrar); err != nil {
			return err
		}
	}

	g.extended = true
	return nil
}

// Statuses reports every installed distribution with its match and
// activation state. It does not trigger activation; callers wanting the
// post-scan view run Extend first.
func (g *Group) Statuses(ctx context.Context) ([]Status, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	dists, err := g.index.Distributions()
	if err != nil {
		return nil, fmt.Errorf("enumerate installed distributions: %w", err)
	}
	provides, err := g.index.Provides()
	if err != nil {
		return nil, fmt.Errorf("scan installed distributions: %w", err)
	}

	modulesOf := make(map[string][]string)
	for module, providers := range provides {
		for _, dist := range providers {
			modulesOf[dist] = append(modulesOf[dist], module)
		}
	}

	statuses := make([]Status, 0, len(dists))
	for _, dist := range dists {
		modules := modulesOf[dist]
		sort.Strings(modules)
		activated := len(modules) > 0
		for _, module := range modules {
			if !g.table.Activated(module) {
				activated = false
				break
			}
		}
		statuses = append(statuses, Status{
			Distribution: dist,
			Modules:      modules,
			Matched:      g.matches(provides, dist),
			Activated:    activated,
		})
	}
	return statuses, nil
}

// matches reports whether any raw specifier in name's transitive requirement
// closure contains one of the dependency name aliases. The containment check
// is deliberately lenient so that version-qualified specifiers like
// "extencli>=1.0" still match.
func (g *Group) matches(provides map[string][]string, name string) bool {
	for _, spec := range g.requires(provides, name, make(map[string]bool)) {
		for _, dep := range g.dependsOn {
			if strings.Contains(spec, dep) {
				return true
			}
		}
	}
	return false
}

// requires resolves name's transitive requirement closure. When direct
// metadata is unavailable it recurses into every distribution that provides
// the same name, unioning their closures. The visited set spans one
// top-level call and terminates recursion on revisit, so cyclic or
// self-referential provides maps stay bounded; a revisited name contributes
// nothing.
func (g *Group) requires(provides map[string][]string, name string, visited map[string]bool) []string {
	if visited[name] {
		return nil
	}
	visited[name] = true

	reqs, err := g.index.Requires(name)
	if err == nil {
		return reqs
	}
	if errors.Is(err, distmeta.ErrNoMetadata) {
		var merged []string
		for _, dist := range provides[name] {
			merged = append(merged, g.requires(provides, dist, visited)...)
		}
		return merged
	}

	// Unreadable metadata contributes nothing rather than failing the scan.
	g.logger.Warn("skipping unreadable distribution metadata", "name", name, "err", err)
	return nil
}
