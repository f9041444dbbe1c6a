// SPDX-License-Identifier: MPL-2.0

// Package config handles loading, validating, and persisting the extencli
// configuration: where installed extension manifests live and how the CLI
// presents itself.
package config
