package filesystem

import (
	"errors"
	"fmt"
	"strings"
)

var ErrWrongExtension = errors.New("wrong file extension")

// ExtensionPolicy is the suffix rule a command enforces before it touches the file system
type ExtensionPolicy struct {
	// RequiredSuffix is a literal extension including the dot, e.g. ".svg". Matching is case-insensitive
	RequiredSuffix string
}

var (
	SVGPolicy = ExtensionPolicy{RequiredSuffix: ".svg"}
	TSXPolicy = ExtensionPolicy{RequiredSuffix: ".tsx"}
)

// Check returns an error wrapping ErrWrongExtension if path does not end with the policy's suffix
func (ep ExtensionPolicy) Check(path string) error {
	return ValidateExtension(path, ep.RequiredSuffix)
}

// ValidateExtension is a pure string predicate; it never consults the file system
func ValidateExtension(path string, requiredSuffix string) error {
	if !strings.HasSuffix(strings.ToLower(path), strings.ToLower(requiredSuffix)) {
		return fmt.Errorf("%w: '%s' does not end with '%s'", ErrWrongExtension, path, requiredSuffix)
	}
	return nil
}
