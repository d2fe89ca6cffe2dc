package errors

import (
	"regexp"
	"unicode"
)

// maxPackageNameLength bounds names accepted from the command line.
const maxPackageNameLength = 256

// packageArgRegex matches a pacman package name or virtual capability,
// optionally followed by a version constraint ("foo", "libfoo.so",
// "java-runtime>=17"). Names may not start with '-' or '.'.
var packageArgRegex = regexp.MustCompile(`^[A-Za-z0-9@_+][A-Za-z0-9@._+-]*([<>]=?|=)?[A-Za-z0-9._:+~-]*$`)

// ValidatePackageName validates a package argument before it is looked up
// in the package databases.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
//   - Only characters pacman allows in names and version constraints
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > maxPackageNameLength {
		return New(ErrCodeInvalidPackage, "package name too long (max %d characters)", maxPackageNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	if !packageArgRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid package name: %q", name)
	}

	return nil
}

// ValidateLevel checks that a counted option (such as --show-optional or
// --reverse) stays within 0..max.
func ValidateLevel(option string, level, max int) error {
	if level < 0 || level > max {
		return New(ErrCodeInvalidInput, "option %s can only be used up to %d times (got %d)", option, max, level)
	}
	return nil
}
