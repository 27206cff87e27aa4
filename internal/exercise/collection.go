package exercise

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Exercise is a named collection of items. It owns its items exclusively.
type Exercise struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	Items       []*Item
}

// AddItem validates the item and appends it.
func (e *Exercise) AddItem(it *Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	e.Items = append(e.Items, it)
	return nil
}

// DeleteItem removes the item with the given ID.
func (e *Exercise) DeleteItem(id string) error {
	i := e.itemIndex(id)
	if i < 0 {
		return fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	e.Items = slices.Delete(e.Items, i, i+1)
	return nil
}

// FindItem returns the item with the given ID. A unique ID prefix of at
// least 4 characters also matches.
func (e *Exercise) FindItem(id string) (*Item, error) {
	if i := e.itemIndex(id); i >= 0 {
		return e.Items[i], nil
	}
	return nil, fmt.Errorf("item %s: %w", id, ErrNotFound)
}

func (e *Exercise) itemIndex(id string) int {
	if i := slices.IndexFunc(e.Items, func(it *Item) bool { return it.ID == id }); i >= 0 {
		return i
	}
	if len(id) < 4 {
		return -1
	}
	found := -1
	for i, it := range e.Items {
		if strings.HasPrefix(it.ID, id) {
			if found >= 0 {
				return -1
			}
			found = i
		}
	}
	return found
}

// Collection is the ordered set of exercises. It is the unit of persistence.
type Collection struct {
	Exercises []*Exercise
}

// AddExercise creates a new, empty exercise.
func (c *Collection) AddExercise(name, description string, now time.Time) (*Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if c.byName(name) != nil {
		return nil, fmt.Errorf("exercise %q: %w", name, ErrDuplicateName)
	}
	ex := &Exercise{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
	}
	c.Exercises = append(c.Exercises, ex)
	return ex, nil
}

// RenameExercise changes an exercise's display name.
func (c *Collection) RenameExercise(idOrName, newName string) error {
	ex, err := c.FindExercise(idOrName)
	if err != nil {
		return err
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}
	if other := c.byName(newName); other != nil && other != ex {
		return fmt.Errorf("exercise %q: %w", newName, ErrDuplicateName)
	}
	ex.Name = newName
	return nil
}

// DeleteExercise removes an exercise and every item it owns.
func (c *Collection) DeleteExercise(idOrName string) error {
	ex, err := c.FindExercise(idOrName)
	if err != nil {
		return err
	}
	c.Exercises = slices.DeleteFunc(c.Exercises, func(e *Exercise) bool { return e == ex })
	return nil
}

// FindExercise looks an exercise up by ID or by case-insensitive name.
func (c *Collection) FindExercise(idOrName string) (*Exercise, error) {
	for _, ex := range c.Exercises {
		if ex.ID == idOrName {
			return ex, nil
		}
	}
	if ex := c.byName(idOrName); ex != nil {
		return ex, nil
	}
	return nil, fmt.Errorf("exercise %q: %w", idOrName, ErrNotFound)
}

// ItemCount returns the number of items across all exercises.
func (c *Collection) ItemCount() int {
	n := 0
	for _, ex := range c.Exercises {
		n += len(ex.Items)
	}
	return n
}

func (c *Collection) byName(name string) *Exercise {
	name = strings.TrimSpace(name)
	for _, ex := range c.Exercises {
		if strings.EqualFold(ex.Name, name) {
			return ex
		}
	}
	return nil
}
