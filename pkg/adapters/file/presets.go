package file

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/luthierlabs/fretbridge/pkg/domain"
)

//go:embed presets/*.json
var embeddedPresets embed.FS

// Presets implements ports.PresetLibrary. With no root configured the
// presets shipped in the binary are served; a root directory overrides
// them entirely. The library never mutates.
type Presets struct {
	root string
}

// NewPresets creates a preset library. An empty root selects the embedded
// presets.
func NewPresets(root string) *Presets {
	return &Presets{root: root}
}

func (p *Presets) Load(ctx context.Context, id string) (*domain.Template, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	if p.root == "" {
		data, err = embeddedPresets.ReadFile("presets/" + id + ".json")
	} else {
		data, err = os.ReadFile(filepath.Join(p.root, id+".json"))
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("preset %q: %w", id, domain.ErrTemplateNotFound)
		}
		return nil, err
	}

	var tpl domain.Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preset: %w", err)
	}
	tpl.ID = id
	tpl.Readonly = true
	return &tpl, nil
}

func (p *Presets) List(ctx context.Context) ([]domain.Template, error) {
	var names []string
	if p.root == "" {
		entries, err := fs.ReadDir(embeddedPresets, "presets")
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			names = append(names, e.Name())
		}
	} else {
		entries, err := os.ReadDir(p.root)
		if err != nil {
			if os.IsNotExist(err) {
				return []domain.Template{}, nil
			}
			return nil, fmt.Errorf("failed to list presets: %w", err)
		}
		for _, e := range entries {
			if !e.IsDir() {
				names = append(names, e.Name())
			}
		}
	}

	presets := make([]domain.Template, 0, len(names))
	for _, name := range names {
		if filepath.Ext(name) != ".json" {
			continue
		}
		tpl, err := p.Load(ctx, strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		presets = append(presets, *tpl)
	}

	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	return presets, nil
}
