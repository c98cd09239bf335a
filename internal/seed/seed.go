package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"component-inventory-backend/internal/logger"
	"component-inventory-backend/internal/service"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// CategoryData is one predefined category
type CategoryData struct {
	Name string `yaml:"name" toml:"name"`
}

// ComponentData is one predefined component, attached to a category by name
type ComponentData struct {
	Name         string                 `yaml:"name" toml:"name"`
	Category     string                 `yaml:"category" toml:"category"`
	Quantity     int64                  `yaml:"quantity" toml:"quantity"`
	StorageCell  string                 `yaml:"storage_cell,omitempty" toml:"storage_cell"`
	DatasheetURL string                 `yaml:"datasheet_url,omitempty" toml:"datasheet_url"`
	Description  string                 `yaml:"description,omitempty" toml:"description"`
	Parameters   map[string]interface{} `yaml:"parameters,omitempty" toml:"parameters"`
}

// File is the content of a seed file
type File struct {
	Categories []CategoryData  `yaml:"categories" toml:"categories"`
	Components []ComponentData `yaml:"components" toml:"components"`
}

// Result counts what Apply did
type Result struct {
	CategoriesCreated int
	CategoriesSkipped int
	ComponentsCreated int
	ComponentsSkipped int
}

// Load reads a seed file; the format follows the extension (.yaml, .yml or .toml)
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return Decode(data, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// Decode parses seed data in the given format
func Decode(data []byte, format string) (*File, error) {
	var f File
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse YAML seed data: %w", err)
		}
	case "toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("failed to parse TOML seed data: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported seed format %q", format)
	}
	return &f, nil
}

// Apply creates the categories and components of f that do not exist yet.
// Existing rows are matched by name (components by name within their category) and left untouched.
func Apply(ctx context.Context, f *File, categories service.CategoryServiceInterface, components service.ComponentServiceInterface) (*Result, error) {
	log := logger.WithContext(ctx)
	res := &Result{}

	existing, err := categories.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	categoryIDs := make(map[string]int64, len(existing))
	for _, c := range existing {
		categoryIDs[c.Name] = c.ID
	}

	for _, c := range f.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		if _, ok := categoryIDs[name]; ok {
			res.CategoriesSkipped++
			continue
		}
		id, err := categories.CreateCategory(ctx, name)
		if err != nil {
			return res, fmt.Errorf("failed to create category %s: %w", name, err)
		}
		categoryIDs[name] = id
		res.CategoriesCreated++
	}

	if len(f.Components) == 0 {
		log.WithFields(map[string]interface{}{
			"categories_created": res.CategoriesCreated,
			"categories_skipped": res.CategoriesSkipped,
		}).Info("seed applied")
		return res, nil
	}

	present, err := components.ListComponents(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("failed to list components: %w", err)
	}
	seen := make(map[string]bool, len(present))
	for _, c := range present {
		if c.CategoryID != nil {
			seen[componentKey(*c.CategoryID, c.Name)] = true
		}
	}

	for _, c := range f.Components {
		categoryID, ok := categoryIDs[strings.TrimSpace(c.Category)]
		if !ok {
			return res, fmt.Errorf("component %s references unknown category %q", c.Name, c.Category)
		}
		name := strings.TrimSpace(c.Name)
		if seen[componentKey(categoryID, name)] {
			res.ComponentsSkipped++
			continue
		}

		req, err := componentRequest(categoryID, c)
		if err != nil {
			return res, err
		}
		if _, err := components.CreateComponent(ctx, req); err != nil {
			return res, fmt.Errorf("failed to create component %s: %w", name, err)
		}
		seen[componentKey(categoryID, name)] = true
		res.ComponentsCreated++
	}

	log.WithFields(map[string]interface{}{
		"categories_created": res.CategoriesCreated,
		"categories_skipped": res.CategoriesSkipped,
		"components_created": res.ComponentsCreated,
		"components_skipped": res.ComponentsSkipped,
	}).Info("seed applied")
	return res, nil
}

func componentKey(categoryID int64, name string) string {
	return fmt.Sprintf("%d/%s", categoryID, name)
}

func componentRequest(categoryID int64, c ComponentData) (*service.ComponentRequest, error) {
	req := &service.ComponentRequest{
		CategoryID:   service.NewLooseInt(categoryID),
		Name:         c.Name,
		Quantity:     service.NewLooseInt(c.Quantity),
		StorageCell:  optional(c.StorageCell),
		DatasheetURL: optional(c.DatasheetURL),
		Description:  optional(c.Description),
	}
	if len(c.Parameters) > 0 {
		params, err := json.Marshal(c.Parameters)
		if err != nil {
			return nil, fmt.Errorf("component %s has unencodable parameters: %w", c.Name, err)
		}
		req.Parameters = params
	}
	return req, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
