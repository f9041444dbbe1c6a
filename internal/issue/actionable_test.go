// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "scan installed extensions"},
			want: "failed to scan installed extensions",
		},
		{
			name: "with resource",
			err: &ActionableError{
				Operation: "activate extension module",
				Resource:  "ext2",
			},
			want: "failed to activate extension module: ext2",
		},
		{
			name: "with cause",
			err: &ActionableError{
				Operation: "load configuration",
				Resource:  "/tmp/config.toml",
				Cause:     errors.New("permission denied"),
			},
			want: "failed to load configuration: /tmp/config.toml: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := NewErrorContext().
		WithOperation("activate extension module").
		Wrap(cause).
		BuildError()

	if !errors.Is(err, cause) {
		t.Error("errors.Is() did not find the wrapped cause")
	}
}

func TestActionableError_FormatSuggestions(t *testing.T) {
	ae := NewErrorContext().
		WithOperation("parse extension manifest").
		WithResource("ext2.toml").
		WithSuggestion("Check the TOML syntax").
		WithSuggestion("Reinstall the extension").
		Build()

	got := ae.Format(false)
	if !strings.Contains(got, "• Check the TOML syntax") {
		t.Errorf("Format() missing first suggestion:\n%s", got)
	}
	if !strings.Contains(got, "• Reinstall the extension") {
		t.Errorf("Format() missing second suggestion:\n%s", got)
	}
	if strings.Contains(got, "Error chain:") {
		t.Errorf("non-verbose Format() must not include the error chain:\n%s", got)
	}
}

func TestActionableError_FormatVerboseChain(t *testing.T) {
	inner := errors.New("inner cause")
	ae := NewErrorContext().
		WithOperation("activate extension module").
		Wrap(inner).
		Build()

	got := ae.Format(true)
	if !strings.Contains(got, "Error chain:") {
		t.Errorf("verbose Format() missing error chain:\n%s", got)
	}
	if !strings.Contains(got, "inner cause") {
		t.Errorf("verbose Format() missing cause message:\n%s", got)
	}
}

func TestErrorContext_BuildRequiresOperation(t *testing.T) {
	if ae := NewErrorContext().WithResource("ext2").Build(); ae != nil {
		t.Errorf("Build() without operation = %v, want nil", ae)
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil", err)
	}
}
