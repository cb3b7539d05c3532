package console

import (
	"strconv"
	"strings"

	"github.com/benbeisheim/chess-engine/internal/model"
)

const newline = "\n"

// Render draws the board with row 8 at the top, framed by column labels.
func Render(b *model.Board) string {
	var sb strings.Builder
	sb.WriteString(newline)

	writeColumnLabels(&sb)
	for row := model.MaxRow; row >= model.MinRow; row-- {
		writeSeparator(&sb)
		writeSquares(&sb, b, row)
	}
	writeSeparator(&sb)
	writeColumnLabels(&sb)

	return sb.String()
}

func writeSquares(sb *strings.Builder, b *model.Board, row int) {
	label := strconv.Itoa(row)
	sb.WriteString(label)
	for c := byte(model.MinColumn); c <= model.MaxColumn; c++ {
		glyph := byte(' ')
		if p := b.PieceAt(model.NewPosition(c, row)); p != nil {
			glyph = p.Glyph()
		}
		sb.WriteString(" | ")
		sb.WriteByte(glyph)
	}
	sb.WriteString(" | ")
	sb.WriteString(label)
	sb.WriteString(newline)
}

func writeSeparator(sb *strings.Builder) {
	sb.WriteString("  +---+---+---+---+---+---+---+---+")
	sb.WriteString(newline)
}

func writeColumnLabels(sb *strings.Builder) {
	sb.WriteString("   ")
	for c := byte(model.MinColumn); c <= model.MaxColumn; c++ {
		sb.WriteString(" ")
		sb.WriteByte(c)
		sb.WriteString("  ")
	}
	sb.WriteString(newline)
}
