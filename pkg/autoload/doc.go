// SPDX-License-Identifier: MPL-2.0

// Package autoload implements lazy, dependency-driven extension loading for
// a cobra command tree.
//
// A [Group] wraps a root command and defers the extension scan until the
// first time its command list or a specific command is requested. The scan
// walks every installed distribution's transitive requirement closure (via a
// [distmeta.Index]) and activates the module of each distribution that
// depends on one of the group's configured host dependency names. Activation
// runs the module's registration entry point against the shared root, so the
// commands it registers are visible through cobra's native registry from
// then on. The scan runs at most once per Group; after it completes, both
// operations delegate straight to the underlying command tree.
package autoload
