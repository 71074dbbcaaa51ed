package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/icaplabs/pagewise/internal/classify"
)

// Dictionary file names looked up inside the dictionary directory. The
// custom and memory-points files are optional; master and directions are
// required once a directory is given.
const (
	MasterFile       = "categories.json"
	CustomFile       = "custom_categories.json"
	MemoryPointsFile = "memory_points.json"
	DirectionsFile   = "priority_directions.json"
)

var (
	ErrNoCategories  = errors.New("category dictionary is empty")
	ErrNoDirections  = errors.New("priority directions missing page_direction groups")
	ErrBadWeight     = errors.New("memory point weight must be positive")
	ErrEmptyTrigger  = errors.New("category contains an empty trigger phrase")
	ErrEmptyCategory = errors.New("category has no trigger phrases")
)

// Dictionaries bundles every external classifier input.
type Dictionaries struct {
	Master       classify.CategorySet
	Custom       classify.CategorySet
	MemoryPoints classify.Matrix
	Directions   classify.Directions
}

// priorityDirectionsDoc mirrors the configuration wire shape:
// {"category": [...], "page_direction": {"Page": [...], "German": [...], "ISF": [...]}}.
type priorityDirectionsDoc struct {
	Category      []string            `json:"category"`
	PageDirection map[string][]string `json:"page_direction"`
}

// LoadDictionaries reads and validates the dictionary files in dir.
// Malformed configuration fails here, at load time: dictionary errors are
// logic errors, not per-page data noise.
func LoadDictionaries(dir string) (*Dictionaries, error) {
	master, err := loadCategoryFile(filepath.Join(dir, MasterFile), true)
	if err != nil {
		return nil, err
	}
	custom, err := loadCategoryFile(filepath.Join(dir, CustomFile), false)
	if err != nil {
		return nil, err
	}

	matrix, err := loadMemoryPoints(filepath.Join(dir, MemoryPointsFile))
	if err != nil {
		return nil, err
	}

	directions, err := loadDirections(filepath.Join(dir, DirectionsFile))
	if err != nil {
		return nil, err
	}

	d := &Dictionaries{
		Master:       classify.ParseCategories(master),
		Custom:       classify.ParseCategories(custom),
		MemoryPoints: matrix,
		Directions:   directions,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func loadCategoryFile(path string, required bool) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && os.IsNotExist(err) {
			return map[string][]string{}, nil
		}
		return nil, fmt.Errorf("failed to read category dictionary %s: %w", path, err)
	}
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse category dictionary %s: %w", path, err)
	}
	for label, phrases := range raw {
		if len(phrases) == 0 {
			return nil, fmt.Errorf("%w: %q in %s", ErrEmptyCategory, label, path)
		}
		for _, p := range phrases {
			if classify.ParseTrigger(p).Text == "" {
				return nil, fmt.Errorf("%w: %q in %s", ErrEmptyTrigger, label, path)
			}
		}
	}
	return raw, nil
}

func loadMemoryPoints(path string) (classify.Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return classify.Matrix{}, nil
		}
		return nil, fmt.Errorf("failed to read memory points %s: %w", path, err)
	}
	var matrix classify.Matrix
	if err := json.Unmarshal(data, &matrix); err != nil {
		return nil, fmt.Errorf("failed to parse memory points %s: %w", path, err)
	}
	for label, keywords := range matrix {
		for kw, weight := range keywords {
			if weight <= 0 {
				return nil, fmt.Errorf("%w: %s/%s in %s", ErrBadWeight, label, kw, path)
			}
		}
	}
	return matrix, nil
}

func loadDirections(path string) (classify.Directions, error) {
	var directions classify.Directions
	data, err := os.ReadFile(path)
	if err != nil {
		return directions, fmt.Errorf("failed to read priority directions %s: %w", path, err)
	}
	var doc priorityDirectionsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return directions, fmt.Errorf("failed to parse priority directions %s: %w", path, err)
	}
	directions.Page = doc.PageDirection["Page"]
	directions.German = doc.PageDirection["German"]
	directions.ISF = doc.PageDirection["ISF"]
	if len(directions.Page) == 0 && len(directions.German) == 0 && len(directions.ISF) == 0 {
		return directions, fmt.Errorf("%w: %s", ErrNoDirections, path)
	}
	return directions, nil
}

// Validate checks the assembled dictionaries.
func (d *Dictionaries) Validate() error {
	if len(d.Master) == 0 {
		return ErrNoCategories
	}
	return nil
}
