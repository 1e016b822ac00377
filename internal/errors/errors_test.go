package errors

import (
	"bytes"
	stdErrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestApkOptError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ApkOptError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "settings invalid"),
			expected: "config (fatal): settings invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("zip: not a valid zip file"), CategoryArchive, SeverityFatal, "open archive"),
			expected: "archive (fatal): open archive: zip: not a valid zip file",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.err.Error()
			if result != test.expected {
				t.Errorf("Error() = %q, want %q", result, test.expected)
			}
		})
	}
}

func TestApkOptError_WithContext(t *testing.T) {
	err := New(CategoryArchive, SeverityFatal, "entry escapes destination").
		WithContext("archive", "app.apk").
		WithContext("entry", "../../evil")

	if err.Context == nil {
		t.Fatal("Context should not be nil")
	}
	if err.Context["archive"] != "app.apk" {
		t.Errorf("Context[archive] = %v, want app.apk", err.Context["archive"])
	}
	if err.Context["entry"] != "../../evil" {
		t.Errorf("Context[entry] = %v, want ../../evil", err.Context["entry"])
	}
}

func TestIsCategory(t *testing.T) {
	ioErr := IOError("create workspace", "/tmp/x", fs.ErrPermission)
	archiveErr := ArchiveError("in.apk", "open archive", nil)
	wrapped := fmt.Errorf("launcher: %w", archiveErr)
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		expected bool
	}{
		{"io error matches filesystem category", ioErr, CategoryFileSystem, true},
		{"io error doesn't match archive category", ioErr, CategoryArchive, false},
		{"archive error matches archive category", archiveErr, CategoryArchive, true},
		{"wrapped archive error still matches", wrapped, CategoryArchive, true},
		{"standard error doesn't match any category", standardErr, CategoryConfig, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsCategory(test.err, test.category)
			if result != test.expected {
				t.Errorf("IsCategory() = %v, want %v", result, test.expected)
			}
		})
	}
}

func TestGetCategory(t *testing.T) {
	if got := GetCategory(fmt.Errorf("plain")); got != CategoryInternal {
		t.Errorf("GetCategory(plain) = %v, want %v", got, CategoryInternal)
	}
	if got := GetCategory(OptimizerFailed("redex-all", nil)); got != CategoryOptimizer {
		t.Errorf("GetCategory(optimizer) = %v, want %v", got, CategoryOptimizer)
	}
}

func TestConvenienceFunctions(t *testing.T) {
	t.Run("IOError", func(t *testing.T) {
		cause := fs.ErrPermission
		err := IOError("remove workspace", "/tmp/ws", cause)
		if err.Category != CategoryFileSystem {
			t.Errorf("Category = %v, want %v", err.Category, CategoryFileSystem)
		}
		if err.Context["path"] != "/tmp/ws" {
			t.Errorf("Context[path] = %v, want /tmp/ws", err.Context["path"])
		}
		if !stdErrors.Is(err, cause) {
			t.Errorf("Cause should match wrapped cause: %v", cause)
		}
	})

	t.Run("ArchiveError", func(t *testing.T) {
		err := ArchiveError("in.apk", "entry escapes destination", nil)
		if err.Category != CategoryArchive {
			t.Errorf("Category = %v, want %v", err.Category, CategoryArchive)
		}
		if err.Severity != SeverityFatal {
			t.Errorf("Severity = %v, want %v", err.Severity, SeverityFatal)
		}
	})

	t.Run("ValidationFailed", func(t *testing.T) {
		err := ValidationFailed("keystore", "required when signing")
		if err.Category != CategoryValidation {
			t.Errorf("Category = %v, want %v", err.Category, CategoryValidation)
		}
		if err.Context["field"] != "keystore" {
			t.Errorf("Context[field] = %v, want keystore", err.Context["field"])
		}
	})
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"nil", nil, 0},
		{"plain", fmt.Errorf("boom"), 1},
		{"validation", ValidationFailed("input", "required"), 2},
		{"archive", ArchiveError("x.apk", "open archive", nil), 3},
		{"config", ConfigNotFound("settings.yaml"), 7},
		{"optimizer", OptimizerFailed("redex-all", nil), 8},
		{"internal", InternalError("unexpected", nil), 10},
		{"filesystem", IOError("create workspace", "/tmp", nil), 11},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tc.err); got != tc.code {
				t.Errorf("ExitCodeFor() = %d, want %d", got, tc.code)
			}
		})
	}
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var out bytes.Buffer
	adapter := NewCLIErrorAdapter(false, nil).WithOutput(&out)

	code := adapter.Report(ArchiveError("bad.apk", "open archive", fmt.Errorf("zip: not a valid zip file")))
	if code != 3 {
		t.Errorf("Report() = %d, want 3", code)
	}
	line := out.String()
	if !strings.HasPrefix(line, "archive: open archive") {
		t.Errorf("unexpected message %q", line)
	}
	if !strings.Contains(line, "archive=bad.apk") {
		t.Errorf("message should name the archive: %q", line)
	}
}
