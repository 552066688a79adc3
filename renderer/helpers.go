// Package renderer formats the extracto reports as markdown.
package renderer

import (
	"bytes"
	"io"
)

// ConditionalBlock writes a whole block to a buffer, and copies it to w only
// if block returns true. It drops section titles when nothing follows them.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}
