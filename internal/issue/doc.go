// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// It defines error types that carry remediation steps alongside the failure
// itself, plus a small catalog of Markdown-rendered guidance for the known
// failure modes of extension discovery and activation.
package issue
