// Package reflow turns one physical line into the display rows it occupies
// for a given viewport width.
//
// The first row starts at column zero; continuation rows are left-padded to
// the configured indent column. Widths are measured in terminal cells via
// go-runewidth so double-width runes are never split across a row boundary.
//
// Overlong lines are folded: a collapsed line shows a bounded number of
// rows, chosen so the first highlighted span is never clipped away, while
// an expanded line reflows in full. Highlight spans are clipped to each
// row; when spans overlap at a cell, the shortest match takes precedence.
package reflow
