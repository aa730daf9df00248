package cli

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/coyenn/p/internal/config"
	"github.com/coyenn/p/internal/editor"
	"github.com/coyenn/p/internal/projects"
	"github.com/coyenn/p/internal/repositories"
	"github.com/coyenn/p/internal/versions"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Configuration errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// Catalog errors
	ErrDefinitionInvalid = "DEFINITION_INVALID"
	ErrSyncFailed        = "SYNC_FAILED"
	ErrGitUnavailable    = "GIT_UNAVAILABLE"
	ErrSourceInvalid     = "SOURCE_INVALID"
	ErrMirrorConflict    = "MIRROR_CONFLICT"

	// Project errors
	ErrProjectNotFound = "PROJECT_NOT_FOUND"
	ErrEditorNotSet    = "EDITOR_NOT_SET"
	ErrToolFailed      = "TOOL_FAILED"

	// File errors
	ErrFileExists     = "FILE_EXISTS"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Input errors
	ErrInvalidInput = "INVALID_INPUT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// classifyError maps an error from the core packages to an error code and
// a hint for the user.
func classifyError(err error) (code, suggestion string) {
	var (
		defErr *versions.DefinitionError
		cfgErr *config.Error
		gitErr *repositories.GitError
		pathEr *fs.PathError
	)

	switch {
	case errors.As(err, &defErr):
		return ErrDefinitionInvalid, "Fix or remove " + defErr.Path
	case errors.As(err, &cfgErr):
		return ErrConfigInvalid, "Fix or delete " + cfgErr.Path
	case errors.Is(err, repositories.ErrGitUnavailable):
		return ErrGitUnavailable, "Install git and make sure it is on your PATH"
	case errors.As(err, &gitErr):
		return ErrSyncFailed, strings.Join(gitErr.Suggestions(), "; ")
	case errors.Is(err, repositories.ErrMirrorConflict):
		return ErrMirrorConflict, "Remove one of the repositories with 'p repo remove'"
	case errors.Is(err, repositories.ErrInvalidSource):
		return ErrSourceInvalid, ""
	case errors.Is(err, repositories.ErrAlreadyExists):
		return ErrFileExists, "Choose another name"
	case errors.Is(err, projects.ErrProjectNotFound):
		return ErrProjectNotFound, "Run 'p list' to see your projects"
	case errors.Is(err, editor.ErrNoEditor):
		return ErrEditorNotSet, "Set editor in config.toml or pass --editor"
	case errors.As(err, &pathEr):
		return ErrFileReadError, ""
	default:
		return ErrInternal, ""
	}
}
