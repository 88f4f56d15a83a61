package errors

import (
	"regexp"
	"strings"
	"unicode"
)

const maxPackageNameLength = 214

// ValidatePackageName rejects names that are unsafe to splice into a
// registry URL: empty, overlong, control characters, or path traversal.
// Scoped names such as "@types/node" are allowed.
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

	for _, pattern := range []string{"..", "//", "\\", "?", "#"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	if strings.Count(name, "/") > 1 || (strings.Contains(name, "/") && !strings.HasPrefix(name, "@")) {
		return New(ErrCodeInvalidPackage, "package name has too many path segments: %q", name)
	}

	return nil
}

// npmPackageNameRegex matches names the npm registry accepts today.
// Legacy packages with uppercase letters still exist, so matching is
// case-insensitive.
var npmPackageNameRegex = regexp.MustCompile(`(?i)^(@[a-z0-9-~][a-z0-9-._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)

// ValidateNpmPackageName validates an npm package name. It is stricter than
// [ValidatePackageName] and is used for names typed by the user.
func ValidateNpmPackageName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}
	if !npmPackageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid npm package name: %q", name)
	}
	return nil
}

// ValidateURL ensures rawURL is non-empty and uses the http or https scheme.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme: %q", rawURL)
	}
	return nil
}
