package cli

import (
	"errors"

	"github.com/yaklabco/depexport/pkg/fsutil"
	"github.com/yaklabco/depexport/pkg/runner"
)

// Exit codes for depexport.
const (
	// ExitSuccess indicates every target is up to date or was written.
	ExitSuccess = 0

	// ExitFailure indicates a target failed, or blocks are stale under --check.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrTargetsFailed is returned when at least one target could not be patched.
	ErrTargetsFailed = errors.New("one or more targets failed")

	// ErrOutOfDate is returned under --check when a block needs regenerating.
	ErrOutOfDate = errors.New("re-export blocks are out of date")

	// ErrUsage marks invalid command-line usage.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration loading failures.
	ErrConfig = errors.New("failed to load configuration")
)

// ExitCodeFromResult determines the exit code for a run. With check set,
// a target whose block changed but was not written counts as a failure.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasErrors() {
		return ExitFailure
	}

	if check && result.Stats.TargetsChanged > result.Stats.FilesWritten {
		return ExitFailure
	}

	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrTargetsFailed), errors.Is(err, ErrOutOfDate):
		return ExitFailure
	case errors.Is(err, ErrUsage), errors.Is(err, runner.ErrNoTargets):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrConcurrentModification):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsReported reports whether err only signals an exit status whose
// details were already printed.
func IsReported(err error) bool {
	return errors.Is(err, ErrTargetsFailed) || errors.Is(err, ErrOutOfDate)
}
