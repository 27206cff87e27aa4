package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/practice"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/store"
)

// workspace is an open store together with the loaded collection.
type workspace struct {
	store *store.Store
	coll  *exercise.Collection
}

func openWorkspace(cmd *cobra.Command) (*workspace, error) {
	if cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, errors.Wrap(err, "open store")
	}
	coll, err := exercise.LoadCollection(cmd.Context(), st.SnapshotRepo())
	if err != nil {
		st.Close()
		return nil, err
	}
	return &workspace{store: st, coll: coll}, nil
}

func (w *workspace) Close() error {
	return w.store.Close()
}

func (w *workspace) save(ctx context.Context) error {
	return exercise.SaveCollection(ctx, w.store.SnapshotRepo(), w.coll)
}

func (w *workspace) recorder() *practice.Recorder {
	return practice.NewRecorder(w.coll, w.store.SnapshotRepo(), w.store.EventRepo())
}

// env builds the screen environment. A nil rng draws from the global
// source and size <= 0 falls back to the configured session size.
func (w *workspace) env(rng session.Rand, size int) screen.Env {
	if size <= 0 {
		size = cfg.SessionSize
	}
	if rng == nil {
		rng = session.DefaultRand
	}
	return screen.Env{
		Collection:  w.coll,
		Recorder:    w.recorder(),
		Events:      w.store.EventRepo(),
		SessionSize: size,
		Rand:        rng,
		Now:         time.Now,
	}
}

// seededRand returns a deterministic source for seed, or nil for seed 0.
func seededRand(seed uint64) session.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// exerciseFlag resolves the --exercise flag. With a single exercise in the
// collection the flag may be omitted.
func (w *workspace) exerciseFlag(cmd *cobra.Command) (*exercise.Exercise, error) {
	name, _ := cmd.Flags().GetString("exercise")
	return pickExercise(w.coll, name)
}

func pickExercise(c *exercise.Collection, name string) (*exercise.Exercise, error) {
	if name == "" {
		if len(c.Exercises) == 1 {
			return c.Exercises[0], nil
		}
		return nil, errors.Errorf("--exercise is required (%d exercises)", len(c.Exercises))
	}
	ex, err := c.FindExercise(name)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return ex, nil
}

// confirm asks a y/N question on out and reads the reply from in.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
