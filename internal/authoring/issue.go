package authoring

import "fmt"

// Issue reports one skipped record. Line is the 1-based source line for
// bulk imports and the 1-based draft number for LLM drafts.
type Issue struct {
	Line   int
	Reason string
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s", i.Line, i.Reason)
}
