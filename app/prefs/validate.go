package prefs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateMapping = errors.New("duplicate genre mapping")
	ErrMappingNotFound  = errors.New("genre mapping not found")
	ErrInvalid          = errors.New("invalid preferences")
)

func (p Prefs) Validate() error {
	if p.MaxDownloads < 1 {
		return fmt.Errorf("%w: max downloads must be at least 1", ErrInvalid)
	}

	seen := make(map[string]string, len(p.GenreMappings))
	for name := range p.GenreMappings {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: genre mapping name is empty", ErrInvalid)
		}
		key := mappingKey(name)
		if other, ok := seen[key]; ok {
			return fmt.Errorf("%w: '%s' and '%s'", ErrDuplicateMapping, other, name)
		}
		seen[key] = name
	}

	return nil
}

func mappingKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// findMapping returns the stored spelling of name, matched case-insensitively.
func (p Prefs) findMapping(name string) (string, bool) {
	key := mappingKey(name)
	for stored := range p.GenreMappings {
		if mappingKey(stored) == key {
			return stored, true
		}
	}
	return "", false
}
