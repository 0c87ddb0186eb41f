package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrValidation marks caller input errors.
var ErrValidation = errors.New("validation failed")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

var hexColour = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func requireName(entity, name string) error {
	if strings.TrimSpace(name) == "" {
		return invalidf("%s name is required", entity)
	}
	return nil
}

func validateColourRef(id *int) error {
	if id != nil && *id <= 0 {
		return invalidf("colour id must be positive")
	}
	return nil
}
