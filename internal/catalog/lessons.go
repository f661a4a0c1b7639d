package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

type Quiz struct {
	Question string   `yaml:"question"`
	Options  []string `yaml:"options"`
	Correct  int      `yaml:"correct"`
}

// Lesson is a short microlearning module with a one-question quiz.
type Lesson struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Minutes int      `yaml:"minutes"`
	Premium bool     `yaml:"premium"`
	Content []string `yaml:"content"`
	Quiz    Quiz     `yaml:"quiz"`
}

// Answer reports whether option index i is the correct quiz answer.
func (l Lesson) Answer(i int) bool { return i == l.Quiz.Correct }

//go:embed lessons.yaml
var lessonsYAML []byte

// Lessons parses the embedded lesson set.
func Lessons() ([]Lesson, error) {
	var f struct {
		Lessons []Lesson `yaml:"lessons"`
	}
	if err := yaml.Unmarshal(lessonsYAML, &f); err != nil {
		return nil, fmt.Errorf("parse lessons: %w", err)
	}
	for _, l := range f.Lessons {
		if l.ID == "" || len(l.Content) == 0 {
			return nil, fmt.Errorf("lesson %q: missing id or content", l.ID)
		}
		if l.Quiz.Correct < 0 || l.Quiz.Correct >= len(l.Quiz.Options) {
			return nil, fmt.Errorf("lesson %s: quiz answer out of range", l.ID)
		}
	}
	return f.Lessons, nil
}

// AvailableLessons filters out premium lessons for free players.
func AvailableLessons(all []Lesson, premium bool) []Lesson {
	out := make([]Lesson, 0, len(all))
	for _, l := range all {
		if l.Premium && !premium {
			continue
		}
		out = append(out, l)
	}
	return out
}

func LessonByID(all []Lesson, id string) (Lesson, bool) {
	for _, l := range all {
		if l.ID == id {
			return l, true
		}
	}
	return Lesson{}, false
}
