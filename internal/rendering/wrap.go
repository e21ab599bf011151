// Package rendering re-serializes improved resume text into downloadable PDFs.
package rendering

import "strings"

// Wrap greedily word-wraps a single line to the given column width. Runs of
// whitespace collapse to single spaces; words longer than the width are broken
// at the width boundary. A blank or whitespace-only line yields no segments,
// which the PDF renderer turns into a vertical gap.
func Wrap(line string, width int) []string {
	if width <= 0 {
		return nil
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}

	var segments []string
	current := ""

	for _, word := range words {
		runes := []rune(word)
		for {
			if current == "" {
				if len(runes) <= width {
					current = string(runes)
					break
				}
				segments = append(segments, string(runes[:width]))
				runes = runes[width:]
				continue
			}
			if len([]rune(current))+1+len(runes) <= width {
				current += " " + string(runes)
				break
			}
			segments = append(segments, current)
			current = ""
		}
	}

	if current != "" {
		segments = append(segments, current)
	}

	return segments
}
