// SPDX-License-Identifier: MPL-2.0

package extension

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotRegistered is returned by Activate when no entry point was ever
// registered for the requested module. It usually means the extension
// distribution is installed but its module was not compiled into the binary.
var ErrNotRegistered = errors.New("extension module not registered")

// EntryFunc is the body of an extension module. It runs when the module is
// activated and should register the module's commands against root. Any
// error aborts the activation and leaves the module eligible for a retry.
type EntryFunc func(root Registrar) error

// Table tracks the extension modules compiled into this process and which of
// them have been activated. It is the explicit stand-in for a language
// runtime's once-per-process import cache: however many autoloading groups
// scan for extensions, each module's entry runs at most once.
//
// The mutex guards the maps; it is not held while an entry runs, so entries
// may themselves activate further modules (nested autoloading groups).
type Table struct {
	mu        sync.Mutex
	entries   map[string]EntryFunc
	activated map[string]bool
}

// NewTable creates an empty module table. Most programs use the package
// [Default] table instead and let modules self-register from init.
func NewTable() *Table {
	return &Table{
		entries:   make(map[string]EntryFunc),
		activated: make(map[string]bool),
	}
}

// Register records entry as the activation entry point for module.
// Registering the same module name again replaces the previous entry.
func (t *Table) Register(module string, entry EntryFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[module] = entry
}

// Activate runs the entry registered for module against root, once per
// process. An already-activated module is a no-op, whatever root is passed.
// An unregistered module is an error. A failing entry is not marked
// activated, so a later Activate runs it again.
func (t *Table) Activate(module string, root Registrar) error {
	t.mu.Lock()
	if t.activated[module] {
		t.mu.Unlock()
		return nil
	}
	entry, ok := t.entries[module]
	t.mu.Unlock()

	if !ok {
		return fmt.Errorf("%q: %w", module, ErrNotRegistered)
	}
	if err := entry(root); err != nil {
		return fmt.Errorf("extension module %q: %w", module, err)
	}

	t.mu.Lock()
	t.activated[module] = true
	t.mu.Unlock()
	return nil
}

// Activated reports whether module's entry has completed successfully.
func (t *Table) Activated(module string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.activated[module]
}

// Modules returns the names of all registered modules, sorted.
func (t *Table) Modules() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default is the process-wide module table used by extension packages that
// register from init.
var Default = NewTable()

// Register records entry in the [Default] table.
func Register(module string, entry EntryFunc) {
	Default.Register(module, entry)
}

// Activate activates module from the [Default] table.
func Activate(module string, root Registrar) error {
	return Default.Activate(module, root)
}

// Activated reports whether module has been activated in the [Default] table.
func Activated(module string) bool {
	return Default.Activated(module)
}
