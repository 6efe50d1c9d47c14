package errors

import (
	"strings"
	"unicode"
)

// ValidateSourceRef validates a clip source reference (file path, URL, or
// generator expression). The rules are intentionally conservative; whether
// the referenced media actually exists is a renderer concern.
//
//   - No empty references
//   - No control characters or null bytes
//   - Maximum length of 1024 characters
func ValidateSourceRef(ref string) error {
	if ref == "" {
		return New(ErrCodeInvalidInput, "source reference cannot be empty")
	}

	if len(ref) > 1024 {
		return New(ErrCodeInvalidInput, "source reference too long (max 1024 characters)")
	}

	for _, r := range ref {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "source reference contains control characters")
		}
	}

	return nil
}

// ValidateRegistryName validates a registry entry name.
// Names key effect, transition, and animation implementations, and appear
// verbatim in serialized specs, so they must be simple identifiers.
func ValidateRegistryName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "registry name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "registry name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "registry name %q contains whitespace or control characters", name)
		}
	}

	return nil
}

// ValidateFrameRate validates a canvas frame rate.
// The bounds cover everything from stop-motion to high-speed capture.
func ValidateFrameRate(fps float64) error {
	if fps <= 0 {
		return New(ErrCodeInvalidCanvas, "frame rate must be positive, got %g", fps)
	}
	if fps > 240 {
		return New(ErrCodeInvalidCanvas, "frame rate %g exceeds maximum of 240", fps)
	}
	return nil
}

// ValidateCanvasSize validates canvas pixel dimensions.
func ValidateCanvasSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidCanvas, "canvas size must be positive, got %dx%d", width, height)
	}
	const maxDim = 16384
	if width > maxDim || height > maxDim {
		return New(ErrCodeInvalidCanvas, "canvas size %dx%d exceeds maximum dimension %d", width, height, maxDim)
	}
	return nil
}

// ValidateDescriptorFilename validates a plugin descriptor filename.
// It ensures the filename is a simple basename without path components.
func ValidateDescriptorFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidDescriptor, "descriptor filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidDescriptor, "descriptor filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidDescriptor, "descriptor filename cannot be a hidden file")
	}

	return nil
}
