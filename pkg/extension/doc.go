// SPDX-License-Identifier: MPL-2.0

// Package extension provides the registration surface for extencli extension
// modules.
//
// An extension module is a Go package that adds commands or command groups to
// a host CLI's root command tree. Modules announce themselves at init time by
// calling [Register] with a module name and an [EntryFunc]; the entry runs
// later, at most once per process, when the autoloader decides the module's
// distribution depends on the host and calls [Table.Activate].
//
// The split between registration (compile-time, via init) and activation
// (runtime, driven by installed distribution metadata) mirrors the
// installed-but-not-imported state of dynamic plugin systems: a compiled-in
// module contributes nothing to the command tree until it is activated.
package extension
