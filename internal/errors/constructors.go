package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *ApkOptError {
	return New(CategoryConfig, SeverityFatal, "settings file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *ApkOptError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "settings file invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *ApkOptError {
	return New(CategoryValidation, SeverityFatal, "validation failed: "+field+": "+reason).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Workspace and archive errors

// IOError reports a filesystem failure while creating, removing or writing
// into a workspace.
func IOError(operation, path string, cause error) *ApkOptError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, operation+" failed").
		WithContext("operation", operation).
		WithContext("path", path)
}

// ArchiveError reports an unreadable or malformed archive, or an entry that
// would escape the extraction directory.
func ArchiveError(path, reason string, cause error) *ApkOptError {
	return Wrap(cause, CategoryArchive, SeverityFatal, reason).
		WithContext("archive", path)
}

// External process errors

func OptimizerFailed(binary string, cause error) *ApkOptError {
	return Wrap(cause, CategoryOptimizer, SeverityFatal, "optimizer run failed").
		WithContext("binary", binary)
}

func SignFailed(apk string, cause error) *ApkOptError {
	return Wrap(cause, CategoryOptimizer, SeverityFatal, "signing failed").
		WithContext("apk", apk)
}

// Internal errors

func InternalError(message string, cause error) *ApkOptError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
