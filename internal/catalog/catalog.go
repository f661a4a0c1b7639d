// Package catalog holds the static scenario and lesson content.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/DaanHessen/budgethero/internal/apperr"
)

// String backed enums, stable for storage and YAML.
type Category string
type Difficulty string

const (
	CategoryHousing    Category = "housing"
	CategoryTransport  Category = "transport"
	CategoryCareer     Category = "career"
	CategoryEmergency  Category = "emergency"
	CategoryInvestment Category = "investment"
)

var AllCategories = []Category{CategoryHousing, CategoryTransport, CategoryCareer, CategoryEmergency, CategoryInvestment}

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var AllDifficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func contains[T ~string](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func (c Category) Validate() error {
	if !contains(AllCategories, c) {
		return fmt.Errorf("invalid category: %s", c)
	}
	return nil
}

func (d Difficulty) Validate() error {
	if !contains(AllDifficulties, d) {
		return fmt.Errorf("invalid difficulty: %s", d)
	}
	return nil
}

// Choice is one selectable option. Only Text drives outcome evaluation; the
// hint fields are authored notes and stay inert.
type Choice struct {
	ID          string `yaml:"id"`
	Text        string `yaml:"text"`
	AIPrompt    string `yaml:"ai_prompt,omitempty"`
	Consequence string `yaml:"consequence,omitempty"`
	MoneyChange *int   `yaml:"money_change,omitempty"`
}

type Scenario struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Situation   string     `yaml:"situation"`
	Category    Category   `yaml:"category"`
	Difficulty  Difficulty `yaml:"difficulty"`
	Choices     []Choice   `yaml:"choices"`
}

// Choice looks up a choice by id.
func (s Scenario) Choice(id string) (Choice, bool) {
	for _, c := range s.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}

// Label returns the display label for the choice at index i (A, B, C, ...).
func Label(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}

// ErrDataUnavailable is returned by selection on an empty catalog.
var ErrDataUnavailable = apperr.New(apperr.CodeDataUnavailable, "scenario catalog is empty")

// Picker is the integer source used for uniform selection.
type Picker interface {
	Intn(n int) int
}

// Catalog is an ordered, read-only scenario registry.
type Catalog struct {
	version   int
	scenarios []Scenario
	byID      map[string]int
}

//go:embed scenarios.yaml
var scenariosYAML []byte

type scenarioFile struct {
	Version   int        `yaml:"version"`
	Scenarios []Scenario `yaml:"scenarios"`
}

// Load parses and validates the embedded scenario set.
func Load() (*Catalog, error) {
	return Parse(scenariosYAML)
}

// Parse builds a catalog from YAML bytes in the scenarios.yaml format.
func Parse(data []byte) (*Catalog, error) {
	var f scenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}
	if err := validate(f.Scenarios); err != nil {
		return nil, err
	}
	c := New(f.Scenarios)
	c.version = f.Version
	return c, nil
}

// New builds a catalog from already validated records. An empty slice is allowed;
// selection then fails with ErrDataUnavailable.
func New(scenarios []Scenario) *Catalog {
	c := &Catalog{scenarios: append([]Scenario(nil), scenarios...), byID: make(map[string]int, len(scenarios))}
	for i, s := range c.scenarios {
		c.byID[s.ID] = i
	}
	return c
}

func validate(scenarios []Scenario) error {
	seen := map[string]bool{}
	for i, s := range scenarios {
		if s.ID == "" {
			return fmt.Errorf("scenario #%d: missing id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("scenario %s: duplicate id", s.ID)
		}
		seen[s.ID] = true
		if s.Title == "" {
			return fmt.Errorf("scenario %s: missing title", s.ID)
		}
		if err := s.Category.Validate(); err != nil {
			return fmt.Errorf("scenario %s: %w", s.ID, err)
		}
		if err := s.Difficulty.Validate(); err != nil {
			return fmt.Errorf("scenario %s: %w", s.ID, err)
		}
		if len(s.Choices) == 0 {
			return fmt.Errorf("scenario %s: no choices", s.ID)
		}
		choiceIDs := map[string]bool{}
		for _, ch := range s.Choices {
			if ch.ID == "" || ch.Text == "" {
				return fmt.Errorf("scenario %s: choice needs id and text", s.ID)
			}
			if choiceIDs[ch.ID] {
				return fmt.Errorf("scenario %s: duplicate choice %s", s.ID, ch.ID)
			}
			choiceIDs[ch.ID] = true
		}
	}
	return nil
}

func (c *Catalog) Version() int { return c.version }
func (c *Catalog) Len() int     { return len(c.scenarios) }

// All returns a copy of the scenarios in catalog order.
func (c *Catalog) All() []Scenario { return append([]Scenario(nil), c.scenarios...) }

// ByID is an exact key lookup.
func (c *Catalog) ByID(id string) (Scenario, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Scenario{}, false
	}
	return c.scenarios[i], true
}

// First returns the first catalog entry.
func (c *Catalog) First() (Scenario, bool) {
	if len(c.scenarios) == 0 {
		return Scenario{}, false
	}
	return c.scenarios[0], true
}

// Random picks uniformly among all scenarios.
func (c *Catalog) Random(p Picker) (Scenario, error) {
	if len(c.scenarios) == 0 {
		return Scenario{}, ErrDataUnavailable
	}
	i := p.Intn(len(c.scenarios))
	if i < 0 || i >= len(c.scenarios) {
		i = 0
	}
	return c.scenarios[i], nil
}

// SelectInitialOrCurrent resolves the scenario to show: the current id if it
// exists, else the first entry, else a random one.
func (c *Catalog) SelectInitialOrCurrent(currentID string, p Picker) (Scenario, error) {
	if s, ok := c.ByID(currentID); ok {
		return s, nil
	}
	if s, ok := c.First(); ok {
		return s, nil
	}
	return c.Random(p)
}
