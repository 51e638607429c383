package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/vogiaan1904/branchqueue/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the initial branch setup loaded at startup.
type Seed struct {
	Departments []SeedDepartment `yaml:"departments"`
	Media       []SeedMedia      `yaml:"media"`
}

type SeedDepartment struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Prefix        string   `yaml:"prefix"`
	Description   string   `yaml:"description"`
	SubCategories []string `yaml:"sub_categories"`
}

type SeedMedia struct {
	ID       string `yaml:"id"`
	Type     string `yaml:"type"`
	Title    string `yaml:"title"`
	URL      string `yaml:"url"`
	Duration int    `yaml:"duration"`
}

// LoadSeed reads path, or the embedded default when path is empty.
func LoadSeed(path string) (*Seed, error) {
	data := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		data = b
	}

	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &s, nil
}

func (s *Seed) DepartmentModels() []models.Department {
	out := make([]models.Department, 0, len(s.Departments))
	for _, d := range s.Departments {
		out = append(out, models.Department{
			ID:            d.ID,
			Name:          d.Name,
			Prefix:        d.Prefix,
			Description:   d.Description,
			SubCategories: d.SubCategories,
		})
	}
	return out
}

func (s *Seed) MediaModels() []models.MarketingMedia {
	out := make([]models.MarketingMedia, 0, len(s.Media))
	for _, m := range s.Media {
		out = append(out, models.MarketingMedia{
			ID:       m.ID,
			Type:     models.MediaType(m.Type),
			Title:    m.Title,
			URL:      m.URL,
			Duration: m.Duration,
		})
	}
	return out
}
