// SPDX-License-Identifier: MPL-2.0

// Package distmeta provides read-only access to installed extension
// distribution metadata.
//
// A distribution is an installable unit: it has a name, declares raw
// requirement specifiers (name plus optional version constraint, e.g.
// "extencli>=1.0"), and provides one or more importable module names. The
// autoloader consumes this metadata through the [Index] interface, which
// keeps the environment an explicit dependency and makes deterministic test
// doubles trivial.
//
// Two implementations ship with the package: [Dir], backed by a directory of
// TOML manifests (one file per installed distribution), and [Static], an
// in-memory index for tests.
package distmeta
