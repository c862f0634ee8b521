package tui

import (
	"fmt"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/muesli/termenv"
)

// Tag categories, used to colour output.
const (
	KindStep     = "step"
	KindSuccess  = "success"
	KindNegative = "negative"
)

var tagKinds = map[domain.Tag]string{
	"DONE":           KindSuccess,
	"MATCH":          KindSuccess,
	"SUMMARY":        KindSuccess,
	"MARK_WORD":      KindSuccess,
	"UNION_APPLY":    KindSuccess,
	"CYCLE":          KindNegative,
	"INVALID":        KindNegative,
	"NO_MATCH":       KindNegative,
	"PRUNE":          KindNegative,
	"UNION_SKIP":     KindNegative,
	"DUPLICATE":      KindNegative,
	"EDGE_DUPLICATE": KindNegative,
	"NO_DIFF":        KindNegative,
}

var kindColors = map[string]string{
	KindStep:     "#60a5fa",
	KindSuccess:  "#4ade80",
	KindNegative: "#fbbf24",
}

// TagKind classifies a tag. Unknown tags are ordinary steps.
func TagKind(tag domain.Tag) string {
	if k, ok := tagKinds[tag]; ok {
		return k
	}
	return KindStep
}

// TagLabel returns the tag padded to width, in bold and coloured by its kind
// when the terminal supports it.
func TagLabel(tag domain.Tag, width int) termenv.Style {
	p := termenv.ColorProfile()
	text := fmt.Sprintf("%-*s", width, tag)
	return termenv.String(text).Bold().Foreground(p.Color(kindColors[TagKind(tag)]))
}
