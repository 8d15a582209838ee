package prompt

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"atlas/internal/logging"
)

// embeddedAtoms contains all YAML files from atoms/ baked into the binary.
//
//go:embed atoms
var embeddedAtoms embed.FS

// embeddedYAMLAtom matches the YAML structure in atoms/*.yaml.
type embeddedYAMLAtom struct {
	ID          string `yaml:"id"`
	Category    string `yaml:"category"`
	Priority    int    `yaml:"priority"`
	Description string `yaml:"description,omitempty"`
	Content     string `yaml:"content"`
}

// LoadEmbeddedAtoms loads the baked-in prompt atoms. Files that fail to
// parse and atoms that fail validation are logged and skipped.
func LoadEmbeddedAtoms() ([]*PromptAtom, error) {
	return loadAtoms(embeddedAtoms, "atoms")
}

func loadAtoms(fsys fs.FS, root string) ([]*PromptAtom, error) {
	timer := logging.StartTimer(logging.CategoryPrompt, "LoadEmbeddedAtoms")
	defer timer.Stop()

	log := logging.Get(logging.CategoryPrompt)
	var all []*PromptAtom
	seen := make(map[string]string)

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		atoms, parseErr := parseAtomFile(fsys, path)
		if parseErr != nil {
			log.Warn("Failed to parse embedded YAML %s: %v", path, parseErr)
			return nil
		}
		for _, a := range atoms {
			if prev, dup := seen[a.ID]; dup {
				log.Warn("Duplicate atom %s in %s (first seen in %s), skipping", a.ID, path, prev)
				continue
			}
			seen[a.ID] = path
			all = append(all, a)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk embedded atoms: %w", err)
	}

	log.Info("Loaded %d prompt atoms", len(all))
	return all, nil
}

func parseAtomFile(fsys fs.FS, path string) ([]*PromptAtom, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded file: %w", err)
	}

	var raw []embeddedYAMLAtom
	if err := yaml.Unmarshal(data, &raw); err != nil {
		var single embeddedYAMLAtom
		if singleErr := yaml.Unmarshal(data, &single); singleErr != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		raw = []embeddedYAMLAtom{single}
	}

	atoms := make([]*PromptAtom, 0, len(raw))
	for _, r := range raw {
		atom := NewPromptAtom(r.ID, AtomCategory(r.Category), r.Priority, strings.TrimSpace(r.Content))
		atom.Description = r.Description
		if err := atom.Validate(); err != nil {
			logging.Get(logging.CategoryPrompt).Error("Skipping invalid atom in %s: %v", path, err)
			continue
		}
		atoms = append(atoms, atom)
	}
	return atoms, nil
}
