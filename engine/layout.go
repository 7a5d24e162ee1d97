package engine

import "strings"

// BoardRows is the fixed number of rows on the display grid.
const BoardRows = 4

// NoIndex marks cells that carry no letter identity.
const NoIndex = -1

// RowSizes is the width of each board row, top to bottom.
var RowSizes = [BoardRows]int{12, 14, 14, 12}

// CellKind says what occupies a board cell.
type CellKind uint8

const (
	CellAbsent CellKind = iota // padding outside the phrase
	CellSpace                  // blank between words or apostrophe tokens
	CellLetter                 // a phrase character, possibly with a trailing apostrophe
)

// BoardCell is one slot of the grid. Index is a stable per-letter identity
// assigned left-to-right, top-to-bottom; absent and group-separator cells
// carry NoIndex.
type BoardCell struct {
	Kind       CellKind
	Letter     rune // raw phrase character; 0 for a lone apostrophe
	Apostrophe bool // an apostrophe is merged into this cell
	Index      int
}

// IsLetter reports whether the cell holds a guessable character.
func (c BoardCell) IsLetter() bool { return c.Kind == CellLetter && c.Letter != 0 }

// Display returns the cell's text: "" for absent, " " for space, "L" or "L'".
func (c BoardCell) Display() string {
	switch c.Kind {
	case CellSpace:
		return " "
	case CellLetter:
		var b strings.Builder
		if c.Letter != 0 {
			b.WriteRune(c.Letter)
		}
		if c.Apostrophe {
			b.WriteByte('\'')
		}
		return b.String()
	default:
		return ""
	}
}

// Board is the laid-out phrase: BoardRows rows of RowSizes[r] cells each.
type Board [BoardRows][]BoardCell

// LetterCells returns the guessable cells in row-major reading order.
func (b Board) LetterCells() []BoardCell {
	var out []BoardCell
	for _, row := range b {
		for _, c := range row {
			if c.IsLetter() {
				out = append(out, c)
			}
		}
	}
	return out
}

// Layout places phrase text on the board. It is pure and total: groups that
// do not fit once the last row is exceeded are dropped, and rows wider than
// their slot are cut to the row width.
func Layout(text string) Board {
	groups := splitGroups(text)

	// Greedy packing, one group at a time, never splitting a group.
	var rowGroups [BoardRows][][]string
	row, used := 0, 0
	for _, group := range groups {
		gw := groupWidth(group)
		needed := gw
		if used > 0 {
			needed++
		}
		if used+needed > RowSizes[row] {
			row++
			used = 0
			if row >= BoardRows {
				break
			}
		}
		if used > 0 {
			used++
		}
		used += gw
		rowGroups[row] = append(rowGroups[row], group)
	}

	var board Board
	count := 0
	for r := 0; r < BoardRows; r++ {
		var content []BoardCell
		for g, group := range rowGroups[r] {
			if g > 0 {
				content = append(content, BoardCell{Kind: CellSpace, Index: NoIndex})
			}
			for t, token := range group {
				if t > 0 {
					// The space after an apostrophe token still consumes an index.
					content = append(content, BoardCell{Kind: CellSpace, Index: count})
					count++
				}
				cells := tokenCells(token, count)
				count += len(cells)
				content = append(content, cells...)
			}
		}

		size := RowSizes[r]
		start := floorDiv(size-len(content), 2)
		cells := make([]BoardCell, size)
		for c := 0; c < size; c++ {
			ci := c - start
			if ci >= 0 && ci < len(content) {
				cells[c] = content[ci]
			} else {
				cells[c] = BoardCell{Kind: CellAbsent, Index: NoIndex}
			}
		}
		board[r] = cells
	}
	return board
}

// splitGroups splits on spaces, then splits each word after every apostrophe:
// "DELL'AMORE" → ["DELL'", "AMORE"]. Tokens of one word form one group.
func splitGroups(text string) [][]string {
	words := strings.Split(text, " ")
	groups := make([][]string, 0, len(words))
	for _, word := range words {
		parts := strings.Split(word, "'")
		if len(parts) == 1 {
			groups = append(groups, []string{word})
			continue
		}
		tokens := make([]string, 0, len(parts))
		for i, part := range parts {
			if i < len(parts)-1 {
				tokens = append(tokens, part+"'")
			} else if part != "" {
				tokens = append(tokens, part)
			}
		}
		groups = append(groups, tokens)
	}
	return groups
}

// tokenWidth counts the cells of a token; apostrophes take no cell.
func tokenWidth(token string) int {
	w := 0
	for _, r := range token {
		if r != '\'' {
			w++
		}
	}
	return w
}

func groupWidth(group []string) int {
	w := 0
	for i, token := range group {
		if i > 0 {
			w++
		}
		w += tokenWidth(token)
	}
	return w
}

// tokenCells builds the cells of a token, numbering letters from next.
func tokenCells(token string, next int) []BoardCell {
	var cells []BoardCell
	for _, r := range token {
		if r == '\'' && len(cells) > 0 {
			cells[len(cells)-1].Apostrophe = true
			continue
		}
		cell := BoardCell{Kind: CellLetter, Letter: r, Index: next}
		if r == '\'' {
			cell.Letter = 0
			cell.Apostrophe = true
		}
		cells = append(cells, cell)
		next++
	}
	return cells
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
