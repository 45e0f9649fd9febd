package domain

// Position is a zero-based line/character location in a document.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// LineStart returns the position of the first character of line.
func LineStart(line int) Position {
	return Position{Line: line}
}

// Range is a half-open span [Start, End).
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type EditKind string

const (
	EditInsert  EditKind = "insert"
	EditDelete  EditKind = "delete"
	EditReplace EditKind = "replace"
)

// Edit is one text mutation. Positions in a batch refer to the document as it was
// before the batch is applied.
type Edit struct {
	Kind  EditKind `json:"kind"`
	Range Range    `json:"range"`
	Text  string   `json:"text,omitempty"`
}

func Insert(at Position, text string) Edit {
	return Edit{Kind: EditInsert, Range: Range{Start: at, End: at}, Text: text}
}

func Delete(r Range) Edit {
	return Edit{Kind: EditDelete, Range: r}
}

func Replace(r Range, text string) Edit {
	return Edit{Kind: EditReplace, Range: r, Text: text}
}
