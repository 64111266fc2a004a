package prefs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/lysyi3m/aladin-meta/app/metadata"
)

// Repository persists preference documents keyed by store name.
// GetDocument returns nil data when no document has been stored yet.
type Repository interface {
	GetDocument(storeName string) ([]byte, error)
	SaveDocument(storeName string, data []byte) error
}

type Service struct {
	repo     Repository
	defaults Prefs
	mu       sync.RWMutex
	current  Prefs
}

func NewService(repo Repository, defaults Prefs) *Service {
	return &Service{
		repo:     repo,
		defaults: defaults.Clone(),
		current:  defaults.Clone(),
	}
}

// Load reads the stored document, filling keys it lacks from the defaults.
func (s *Service) Load() (Prefs, error) {
	data, err := s.repo.GetDocument(StoreName)
	if err != nil {
		return Prefs{}, fmt.Errorf("failed to read preferences: %w", err)
	}

	loaded := s.defaults.Clone()
	if len(data) > 0 {
		loaded, err = loaded.ApplyJSON(data)
		if err != nil {
			return Prefs{}, fmt.Errorf("failed to decode preferences: %w", err)
		}
	}

	if err := loaded.Validate(); err != nil {
		slog.Warn("Stored preferences are invalid, using defaults", "error", err)
		loaded = s.defaults.Clone()
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()

	slog.Debug("Preferences loaded", "store", StoreName, "mappings", len(loaded.GenreMappings))
	return loaded.Clone(), nil
}

// Get returns a copy of the current preferences.
func (s *Service) Get() Prefs {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Save validates and persists a complete preference object.
func (s *Service) Save(p Prefs) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(p)
}

func (s *Service) saveLocked(p Prefs) error {
	if p.GenreMappings == nil {
		p.GenreMappings = map[string][]string{}
	}
	if err := p.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	if err := s.repo.SaveDocument(StoreName, data); err != nil {
		return fmt.Errorf("failed to store preferences: %w", err)
	}

	s.current = p.Clone()
	return nil
}

// update applies fn to a copy of the current preferences and saves the result.
func (s *Service) update(fn func(p *Prefs) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	return s.saveLocked(next)
}

func (s *Service) AddMapping(name string, tags []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: genre mapping name is empty", ErrInvalid)
	}

	return s.update(func(p *Prefs) error {
		if existing, ok := p.findMapping(name); ok {
			return fmt.Errorf("%w: '%s' already exists as '%s'", ErrDuplicateMapping, name, existing)
		}
		p.GenreMappings[name] = metadata.SplitList(strings.Join(tags, ","))
		return nil
	})
}

func (s *Service) RenameMapping(oldName, newName string) error {
	_, err := s.UpdateMapping(oldName, &newName, nil)
	return err
}

func (s *Service) DeleteMapping(name string) error {
	return s.update(func(p *Prefs) error {
		stored, ok := p.findMapping(name)
		if !ok {
			return fmt.Errorf("%w: '%s'", ErrMappingNotFound, name)
		}
		delete(p.GenreMappings, stored)
		return nil
	})
}

func (s *Service) SetMappingTags(name string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	_, err := s.UpdateMapping(name, nil, tags)
	return err
}

// UpdateMapping replaces the tags (when tags is non-nil) and renames the
// mapping (when newName is non-nil) in a single save. It returns the name
// the mapping is stored under afterwards. Nothing is stored on error.
func (s *Service) UpdateMapping(name string, newName *string, tags []string) (string, error) {
	var target string
	if newName != nil {
		target = strings.TrimSpace(*newName)
		if target == "" {
			return "", fmt.Errorf("%w: genre mapping name is empty", ErrInvalid)
		}
	}

	var result string
	err := s.update(func(p *Prefs) error {
		stored, ok := p.findMapping(name)
		if !ok {
			return fmt.Errorf("%w: '%s'", ErrMappingNotFound, name)
		}

		current := p.GenreMappings[stored]
		if tags != nil {
			current = metadata.SplitList(strings.Join(tags, ","))
		}

		result = stored
		if newName != nil {
			if existing, ok := p.findMapping(target); ok && existing != stored {
				return fmt.Errorf("%w: '%s' already exists as '%s'", ErrDuplicateMapping, target, existing)
			}
			delete(p.GenreMappings, stored)
			result = target
		}
		p.GenreMappings[result] = current
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}
