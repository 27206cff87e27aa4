package authoring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/llm"
)

// ErrNoCount is returned when a draft asks for no items.
var ErrNoCount = errors.New("draft count must be positive")

// DraftInput describes what to draft.
type DraftInput struct {
	Exercise string
	Topic    string
	Count    int

	// Kind restricts every draft to one kind. Empty lets the model choose.
	Kind exercise.Kind

	// Existing holds prompts already in the exercise.
	Existing []string
}

// DraftResult holds accepted items and the drafts that were skipped.
type DraftResult struct {
	Items  []*exercise.Item
	Issues []Issue
	Usage  llm.Usage
}

// Drafter asks an LLM provider for practice items.
type Drafter struct {
	provider llm.Provider
	config   Config
	now      func() time.Time
}

func NewDrafter(provider llm.Provider, cfg Config) *Drafter {
	return &Drafter{provider: provider, config: cfg, now: time.Now}
}

// itemOutput is one raw draft before validation.
type itemOutput struct {
	Kind         string   `json:"kind"`
	Prompt       string   `json:"prompt"`
	Instructions string   `json:"instructions"`
	Answer       string   `json:"answer"`
	Answers      []string `json:"answers"`
	Options      []string `json:"options"`
	Sample       string   `json:"sample"`
}

type batchOutput struct {
	Items []itemOutput `json:"items"`
}

// Draft requests in.Count items, split into batches that run concurrently.
// Any failed request fails the whole draft. Drafts that fail validation are
// reported as issues numbered in the order they were received.
func (d *Drafter) Draft(ctx context.Context, in DraftInput) (*DraftResult, error) {
	if in.Count <= 0 {
		return nil, ErrNoCount
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeItemDraft)

	sizes := batchSizes(in.Count, d.config.BatchSize)
	batches := make([]*batchOutput, len(sizes))
	usage := make([]llm.Usage, len(sizes))

	g, gctx := errgroup.WithContext(ctx)
	if d.config.MaxParallel > 0 {
		g.SetLimit(d.config.MaxParallel)
	}
	for i, n := range sizes {
		g.Go(func() error {
			out, u, err := d.requestBatch(gctx, in, n)
			if err != nil {
				return fmt.Errorf("draft batch %d: %w", i+1, err)
			}
			batches[i], usage[i] = out, u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &DraftResult{}
	for _, u := range usage {
		res.Usage.InputTokens += u.InputTokens
		res.Usage.OutputTokens += u.OutputTokens
		res.Usage.TotalTokens += u.TotalTokens
	}

	// Validation runs in order so later drafts are checked against earlier
	// accepted ones.
	check := in
	check.Existing = append([]string(nil), in.Existing...)
	now := d.now()
	n := 0
	for i, b := range batches {
		for _, raw := range truncate(b.Items, sizes[i]) {
			n++
			it, err := raw.toItem(now)
			if err == nil {
				err = d.validate(it, check)
			}
			if err != nil {
				res.Issues = append(res.Issues, Issue{Line: n, Reason: err.Error()})
				continue
			}
			res.Items = append(res.Items, it)
			check.Existing = append(check.Existing, it.Prompt)
		}
	}
	return res, nil
}

func (d *Drafter) requestBatch(ctx context.Context, in DraftInput, n int) (*batchOutput, llm.Usage, error) {
	req := llm.Prompt(systemPrompt, buildUserMessage(in, n, d.config), ItemsSchema, d.config.MaxTokens)
	req.Temperature = d.config.Temperature

	resp, err := d.provider.Generate(ctx, req)
	if err != nil {
		return nil, llm.Usage{}, err
	}
	var out batchOutput
	if err := resp.Decode(&out); err != nil {
		return nil, resp.Usage, err
	}
	return &out, resp.Usage, nil
}

func (d *Drafter) validate(it *exercise.Item, in DraftInput) error {
	for _, v := range d.config.Validators {
		if verr := v.Validate(it, in); verr != nil {
			return verr
		}
	}
	return nil
}

func (o itemOutput) toItem(now time.Time) (*exercise.Item, error) {
	kind, err := exercise.ParseKind(o.Kind)
	if err != nil {
		return nil, err
	}
	it := exercise.NewItem(kind, strings.TrimSpace(o.Prompt), now)
	it.Instructions = strings.TrimSpace(o.Instructions)
	it.Answer = strings.TrimSpace(o.Answer)
	it.Answers = trimAll(o.Answers)
	it.Options = trimAll(o.Options)
	it.Sample = strings.TrimSpace(o.Sample)
	if kind == exercise.KindOrdering && len(it.Options) == 0 {
		it.Options = append([]string(nil), it.Answers...)
	}
	return it, nil
}

func trimAll(ss []string) []string {
	var out []string
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// batchSizes splits count into chunks of at most size.
func batchSizes(count, size int) []int {
	if size <= 0 {
		size = count
	}
	var out []int
	for count > 0 {
		n := min(count, size)
		out = append(out, n)
		count -= n
	}
	return out
}

func truncate(items []itemOutput, n int) []itemOutput {
	if len(items) > n {
		return items[:n]
	}
	return items
}
