package practice

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/progress"
	"github.com/abhisek/drill/internal/session"
)

// QuitCommand ends a plain session early.
const QuitCommand = ":q"

// PlainOptions configures RunPlain.
type PlainOptions struct {
	Size int
	Rand session.Rand
	Now  func() time.Time
}

// RunPlain runs one practice session reading answers line by line from in.
// End of input or QuitCommand ends the session early; answers given so far
// are kept.
func RunPlain(ctx context.Context, ex *exercise.Exercise, rec *Recorder, in io.Reader, out io.Writer, opts PlainOptions) (session.SessionSummary, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = session.DefaultRand
	}

	state, err := session.Start(ex, opts.Size, opts.Now(), opts.Rand)
	if err != nil {
		return session.SessionSummary{}, fmt.Errorf("start %q: %w", ex.Name, err)
	}
	rec.Begin(ctx, state)

	sc := bufio.NewScanner(in)
	readLine := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return strings.TrimSpace(sc.Text()), true
	}

	fmt.Fprintf(out, "%s: %d items. Type %s to stop.\n", ex.Name, len(state.Pool), QuitCommand)

loop:
	for !state.Done() {
		if err := ctx.Err(); err != nil {
			return session.SessionSummary{}, err
		}
		slot := session.CurrentSlot(state)
		q := Present(slot.Item, opts.Rand)

		fmt.Fprintf(out, "\n[%d/%d] %s · %s\n", state.Index+1, len(state.Pool), q.Kind, slot.Tier.DisplayName())
		for _, l := range q.Lines() {
			fmt.Fprintln(out, l)
		}
		if q.Hint != "" {
			fmt.Fprintf(out, "(%s)\n", q.Hint)
		}

		fmt.Fprint(out, "> ")
		raw, ok := readLine()
		if !ok || raw == QuitCommand {
			fmt.Fprintln(out)
			break loop
		}

		selfGrade := false
		if q.SelfGraded() {
			if sample := slot.Item.Sample; sample != "" {
				fmt.Fprintf(out, "Sample: %s\n", sample)
			}
			fmt.Fprint(out, "Did you get it? [y/N] ")
			verdict, ok := readLine()
			if !ok {
				fmt.Fprintln(out)
				break loop
			}
			selfGrade = strings.EqualFold(verdict, "y") || strings.EqualFold(verdict, "yes")
		}

		var res progress.Result
		state, res = session.Submit(state, q.Response(raw, selfGrade), opts.Now())
		switch {
		case !res.Graded:
			fmt.Fprintln(out, "Noted.")
		case res.Correct:
			fmt.Fprintln(out, "Correct!")
		default:
			fmt.Fprintf(out, "Not quite. Answer: %s\n", res.CanonicalAnswer)
		}
		if res.Transition.Changed() {
			fmt.Fprintf(out, "%s → %s\n", res.Transition.From.DisplayName(), res.Transition.To.DisplayName())
		}

		if err := rec.Answer(ctx, state); err != nil {
			return session.SessionSummary{}, err
		}
		state, _ = session.Advance(state, opts.Now())
	}

	sum := rec.Finish(ctx, state, opts.Now())
	fmt.Fprintf(out, "\nDone: %d/%d correct (%d%%) in %s\n", sum.Correct, sum.Total, sum.AccuracyPct, sum.Duration.Round(time.Second))
	return sum, nil
}
