package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// systemIDRegex matches the canonical system identifier format.
var systemIDRegex = regexp.MustCompile(`^SYS-[0-9A-F]{8}$`)

// railIDRegex matches the canonical rail identifier format.
var railIDRegex = regexp.MustCompile(`^RAIL-[0-9A-F]{8}$`)

// validateID applies the shared identifier rules: non-empty, bounded
// length, no control characters.
func validateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s id cannot be empty", kind)
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "%s id too long (max 64 characters)", kind)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s id contains control characters", kind)
		}
	}
	return nil
}

// ValidateSystemID validates a system identifier from user input.
func ValidateSystemID(id string) error {
	if err := validateID("system", id); err != nil {
		return err
	}
	if !systemIDRegex.MatchString(id) {
		return New(ErrCodeInvalidSystem, "invalid system id: %q (want SYS-XXXXXXXX)", id)
	}
	return nil
}

// ValidateRailID validates a rail identifier from user input.
func ValidateRailID(id string) error {
	if err := validateID("rail", id); err != nil {
		return err
	}
	if !railIDRegex.MatchString(id) {
		return New(ErrCodeInvalidRail, "invalid rail id: %q (want RAIL-XXXXXXXX)", id)
	}
	return nil
}

// ValidateSnapshotPath validates a snapshot file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateSnapshotPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "snapshot path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "snapshot path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "snapshot path contains invalid characters")
		}
	}
	return nil
}

// ValidateGalaxyName validates a human-chosen galaxy name.
func ValidateGalaxyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "galaxy name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "galaxy name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "galaxy name contains control characters")
		}
	}
	return nil
}
