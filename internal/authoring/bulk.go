package authoring

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abhisek/drill/internal/exercise"
)

const endMarker = "[end]"

// ParseBulk reads line-oriented item records from r. Malformed records are
// skipped and reported as issues; the returned error is only set when r
// itself fails.
//
// Two record shapes are accepted:
//
//	prompt | answer
//	prompt | answer 1 | answer 2
//
// and blocks for richer kinds:
//
//	[multiple-choice]
//	prompt: Which one is a fruit?
//	options: apple | carrot | leek
//	answer: apple
//	[end]
func ParseBulk(r io.Reader, now time.Time) ([]*exercise.Item, []Issue, error) {
	p := &bulkParser{now: now}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		p.line(lineNo, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read import: %w", err)
	}
	if p.block != nil {
		p.skipBlock("unterminated block, missing " + endMarker)
	}
	return p.items, p.issues, nil
}

type bulkParser struct {
	now    time.Time
	items  []*exercise.Item
	issues []Issue
	block  *blockRecord
}

type blockRecord struct {
	start   int
	kind    exercise.Kind
	fields  map[string]string
	passage []string
	err     string
}

func (p *bulkParser) issue(line int, format string, args ...any) {
	p.issues = append(p.issues, Issue{Line: line, Reason: fmt.Sprintf(format, args...)})
}

func (p *bulkParser) line(n int, raw string) {
	text := strings.TrimSpace(raw)
	if text == "" || strings.HasPrefix(text, "#") {
		return
	}

	if header, ok := blockHeader(text); ok {
		if header == "end" {
			if p.block == nil {
				p.issue(n, "%s without an open block", endMarker)
				return
			}
			p.closeBlock()
			return
		}
		if p.block != nil {
			p.skipBlock("unterminated block, missing " + endMarker)
		}
		p.openBlock(n, header)
		return
	}

	if p.block != nil {
		p.blockField(n, text)
		return
	}
	p.pipeRecord(n, text)
}

func blockHeader(text string) (string, bool) {
	if len(text) < 3 || text[0] != '[' || text[len(text)-1] != ']' {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(text[1 : len(text)-1])), true
}

func (p *bulkParser) pipeRecord(n int, text string) {
	if !strings.Contains(text, "|") {
		p.issue(n, "expected \"prompt | answer\"")
		return
	}
	parts := exercise.SplitParts(text)
	prompt, answers := parts[0], parts[1:]
	if prompt == "" {
		p.issue(n, "empty prompt")
		return
	}
	for _, a := range answers {
		if a == "" {
			p.issue(n, "empty answer")
			return
		}
	}

	it := exercise.NewItem(pipeKind(prompt, len(answers)), prompt, p.now)
	if len(answers) == 1 && it.Kind != exercise.KindCloze {
		it.Answer = answers[0]
	} else {
		it.Answers = answers
	}
	p.add(n, it)
}

// pipeKind infers the kind of a one-line record. {{...}} markers make a
// cloze item, underscores or several answers a fill-blank item.
func pipeKind(prompt string, answers int) exercise.Kind {
	switch {
	case strings.Contains(prompt, "{{"):
		return exercise.KindCloze
	case answers > 1 || strings.Contains(prompt, "__"):
		return exercise.KindFillBlank
	default:
		return exercise.KindBasic
	}
}

func (p *bulkParser) openBlock(n int, header string) {
	b := &blockRecord{start: n, fields: map[string]string{}}
	kind, err := exercise.ParseKind(header)
	if err != nil {
		b.err = err.Error()
	}
	b.kind = kind
	p.block = b
}

var blockKeys = map[string]bool{
	"prompt": true, "answer": true, "answers": true, "options": true,
	"instructions": true, "passage": true, "sample": true,
}

func (p *bulkParser) blockField(n int, text string) {
	b := p.block
	if b.err != "" {
		return
	}
	key, value, ok := strings.Cut(text, ":")
	if !ok {
		b.err = fmt.Sprintf("line %d: expected \"key: value\"", n)
		return
	}
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)
	switch {
	case !blockKeys[key]:
		b.err = fmt.Sprintf("line %d: unknown key %q", n, key)
	case key == "passage":
		b.passage = append(b.passage, value)
	case b.fields[key] != "":
		b.err = fmt.Sprintf("line %d: duplicate key %q", n, key)
	default:
		b.fields[key] = value
	}
}

func (p *bulkParser) skipBlock(reason string) {
	p.issue(p.block.start, "%s", reason)
	p.block = nil
}

func (p *bulkParser) closeBlock() {
	b := p.block
	if b.err != "" {
		p.skipBlock(b.err)
		return
	}
	p.block = nil

	f := b.fields
	it := exercise.NewItem(b.kind, f["prompt"], p.now)
	it.Instructions = f["instructions"]
	it.Passage = strings.Join(b.passage, "\n")
	it.Sample = f["sample"]
	it.Answer = f["answer"]
	if f["answers"] != "" {
		it.Answers = exercise.SplitParts(f["answers"])
	}
	if f["options"] != "" {
		it.Options = exercise.SplitParts(f["options"])
	}
	// Ordering items present their answers shuffled when no options are
	// given.
	if it.Kind == exercise.KindOrdering && len(it.Options) == 0 {
		it.Options = append([]string(nil), it.Answers...)
	}
	p.add(b.start, it)
}

func (p *bulkParser) add(n int, it *exercise.Item) {
	if err := it.Validate(); err != nil {
		p.issue(n, "%v", err)
		return
	}
	p.items = append(p.items, it)
}

// FormatBulk writes items in the import format, so that ParseBulk reads
// them back. Simple items use the one-line form.
func FormatBulk(w io.Writer, items []*exercise.Item) error {
	bw := bufio.NewWriter(w)
	for i, it := range items {
		if i > 0 && !oneLine(items[i-1]) {
			bw.WriteString("\n")
		}
		if oneLine(it) {
			fmt.Fprintf(bw, "%s | %s\n", it.Prompt, it.CanonicalAnswer())
			continue
		}
		fmt.Fprintf(bw, "[%s]\n", it.Kind)
		writeField(bw, "prompt", it.Prompt)
		writeField(bw, "instructions", it.Instructions)
		if it.Passage != "" {
			for _, l := range strings.Split(it.Passage, "\n") {
				writeField(bw, "passage", l)
			}
		}
		writeField(bw, "options", strings.Join(it.Options, " | "))
		if it.IsArray() {
			writeField(bw, "answers", strings.Join(it.Answers, " | "))
		} else {
			writeField(bw, "answer", it.Answer)
		}
		writeField(bw, "sample", it.Sample)
		bw.WriteString(endMarker + "\n")
	}
	return bw.Flush()
}

func writeField(w *bufio.Writer, key, value string) {
	if value != "" {
		fmt.Fprintf(w, "%s: %s\n", key, value)
	}
}

// oneLine reports whether it round-trips through the "prompt | answer" form.
func oneLine(it *exercise.Item) bool {
	if it.Instructions != "" || it.Passage != "" || it.Sample != "" || len(it.Options) > 0 {
		return false
	}
	if strings.ContainsAny(it.Prompt, "|\n") || strings.HasPrefix(it.Prompt, "#") || strings.HasPrefix(it.Prompt, "[") {
		return false
	}
	answers := len(it.Answers)
	if !it.IsArray() {
		answers = 1
	}
	return it.Kind == pipeKind(it.Prompt, answers)
}
