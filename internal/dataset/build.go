package dataset

import (
	"fmt"
	"path/filepath"

	"typeahead/internal/config"
	"typeahead/internal/menu"
)

// Built is the result of turning configured datasets into menu datasets.
// Watched lists the file sources that asked for hot reload.
type Built struct {
	Datasets []menu.Dataset
	Watched  []*File
}

// Build creates a menu dataset for each configured one. Relative file paths
// resolve against baseDir.
func Build(defs []config.Dataset, baseDir string) (*Built, error) {
	built := &Built{}
	for _, def := range defs {
		ds := menu.Dataset{Name: def.Name, Limit: def.Limit}

		switch {
		case len(def.Words) > 0:
			ds.Source = NewLocal(Words(def.Words...))
		case def.File != "":
			path := def.File
			if !filepath.IsAbs(path) {
				path = filepath.Join(baseDir, path)
			}
			f, err := LoadFile(path)
			if err != nil {
				return nil, fmt.Errorf("dataset %q: %w", def.Name, err)
			}
			f.name = def.Name
			ds.Source = f
			if def.Watch {
				built.Watched = append(built.Watched, f)
			}
		case def.Command != "":
			ds.Async = NewExec(def.Command)
		default:
			return nil, fmt.Errorf("dataset %q: %w", def.Name, config.ErrDatasetSource)
		}

		built.Datasets = append(built.Datasets, ds)
	}
	return built, nil
}
