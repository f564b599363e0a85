// Package project provides shape document handling and persistence.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"coatpath/internal/settings"
	"coatpath/internal/shape"
)

// File represents a coating project document (.coatproj): the shape set of
// one computation batch plus optional embedded process settings.
type File struct {
	Version     int       `json:"version"`
	Name        string    `json:"name"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
	Description string    `json:"description,omitempty"`

	Shapes   []shape.Shape     `json:"shapes"`
	Settings *settings.Coating `json:"settings,omitempty"`
}

// New creates an empty project document.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
	}
}

// Load loads a project from a .coatproj file and validates every shape's
// tags, so contract violations surface at load time rather than mid-plan.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("parsing project %s: %w", path, err)
	}

	for i := range proj.Shapes {
		if err := proj.Shapes[i].Validate(); err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return &proj, nil
}

// Save saves the project to a file.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
