// Package response turns a streamed model reply into text that can be
// inserted into a document.
package response

import "strings"

// Fence marks the start and end of a fenced code block.
const Fence = "```"

// Extract returns the body of the first complete fenced code block in raw.
//
// A line is a fence when its trimmed content starts with Fence; the fence
// lines themselves (including any language tag) are dropped. If raw has no
// opening fence, or the opening fence is never closed, raw is returned as is.
func Extract(raw string) string {
	lines := strings.Split(raw, "\n")

	first := nextFence(lines, 0)
	if first == -1 {
		return raw
	}
	end := nextFence(lines, first+1)
	if end == -1 {
		return raw
	}
	return strings.Join(lines[first+1:end], "\n")
}

func nextFence(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), Fence) {
			return i
		}
	}
	return -1
}
