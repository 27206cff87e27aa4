package exercise

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/drill/internal/store"
)

// snapshotsKept is how many collection snapshots survive a save.
const snapshotsKept = 20

// ToSnapshotData converts the collection into its persisted form.
func (c *Collection) ToSnapshotData() store.SnapshotData {
	data := store.SnapshotData{
		Version:   store.SnapshotVersion,
		Exercises: make([]store.ExerciseData, 0, len(c.Exercises)),
	}
	for _, ex := range c.Exercises {
		ed := store.ExerciseData{
			ID:          ex.ID,
			Name:        ex.Name,
			Description: ex.Description,
			CreatedAt:   ex.CreatedAt,
			Items:       make([]store.ItemData, 0, len(ex.Items)),
		}
		for _, it := range ex.Items {
			ed.Items = append(ed.Items, store.ItemData{
				ID:            it.ID,
				Kind:          string(it.Kind),
				Prompt:        it.Prompt,
				Instructions:  it.Instructions,
				Passage:       it.Passage,
				Answer:        it.Answer,
				Answers:       it.Answers,
				Options:       it.Options,
				Sample:        it.Sample,
				TimesAnswered: it.TimesAnswered,
				TimesCorrect:  it.TimesCorrect,
				LastReviewed:  it.LastReviewed,
				CreatedAt:     it.CreatedAt,
			})
		}
		data.Exercises = append(data.Exercises, ed)
	}
	return data
}

// FromSnapshotData rebuilds a collection from its persisted form. Items with
// an unknown kind or inconsistent counters are repaired rather than dropped.
func FromSnapshotData(data *store.SnapshotData) *Collection {
	c := &Collection{}
	if data == nil {
		return c
	}
	for _, ed := range data.Exercises {
		ex := &Exercise{
			ID:          ed.ID,
			Name:        ed.Name,
			Description: ed.Description,
			CreatedAt:   ed.CreatedAt,
		}
		for _, id := range ed.Items {
			kind, err := ParseKind(id.Kind)
			if err != nil {
				kind = KindBasic
			}
			it := &Item{
				ID:            id.ID,
				Kind:          kind,
				Prompt:        id.Prompt,
				Instructions:  id.Instructions,
				Passage:       id.Passage,
				Answer:        id.Answer,
				Answers:       id.Answers,
				Options:       id.Options,
				Sample:        id.Sample,
				TimesAnswered: max(id.TimesAnswered, 0),
				TimesCorrect:  max(id.TimesCorrect, 0),
				LastReviewed:  id.LastReviewed,
				CreatedAt:     id.CreatedAt,
			}
			if it.TimesCorrect > it.TimesAnswered {
				it.TimesCorrect = it.TimesAnswered
			}
			ex.Items = append(ex.Items, it)
		}
		c.Exercises = append(c.Exercises, ex)
	}
	return c
}

// LoadCollection reads the latest collection snapshot. Missing or corrupt
// data yields an empty collection; only database failures are returned.
func LoadCollection(ctx context.Context, repo store.SnapshotRepo) (*Collection, error) {
	snap, err := repo.Latest(ctx)
	if err != nil {
		if errors.Is(err, store.ErrCorruptSnapshot) {
			slog.Warn("stored collection is unreadable, starting empty", "err", err)
			return &Collection{}, nil
		}
		return nil, fmt.Errorf("load collection: %w", err)
	}
	if snap == nil {
		return &Collection{}, nil
	}
	return FromSnapshotData(&snap.Data), nil
}

// SaveCollection writes the collection as a new snapshot and prunes old ones.
func SaveCollection(ctx context.Context, repo store.SnapshotRepo, c *Collection) error {
	return SaveData(ctx, repo, c.ToSnapshotData())
}

// SaveData writes already captured collection data. Hosts that persist from
// a background goroutine capture with ToSnapshotData first.
func SaveData(ctx context.Context, repo store.SnapshotRepo, data store.SnapshotData) error {
	snap := &store.Snapshot{
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
	if err := repo.Save(ctx, snap); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	if err := repo.Prune(ctx, snapshotsKept); err != nil {
		slog.Warn("prune snapshots failed", "err", err)
	}
	return nil
}
