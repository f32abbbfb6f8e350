package chunk

import (
	"log/slog"
	"regexp"
	"strings"
)

// boundaryWindow is how far back from the hard cutoff a sentence or
// paragraph boundary may sit and still be preferred over the cutoff.
const boundaryWindow = 200

// Chunker splits document text into overlapping, boundary-aware windows.
type Chunker struct {
	size    int
	overlap int
	logger  *slog.Logger
}

// New builds a Chunker. An overlap >= size would stop the window start
// from advancing, so it is clamped to size-1.
func New(size, overlap int, logger *slog.Logger) *Chunker {
	if logger == nil {
		logger = slog.Default()
	}
	if size <= 0 {
		size = 2000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		logger.Warn("chunk.overlap_clamped", "overlap", overlap, "size", size)
		overlap = size - 1
	}
	return &Chunker{size: size, overlap: overlap, logger: logger}
}

// Split cuts text into chunks of at most the configured size. Windows
// prefer to end at the last period or newline inside the window, unless
// that boundary falls more than boundaryWindow characters before the
// cutoff. Each window starts overlap characters before the end of the
// previous one; empty chunks are dropped.
func (c *Chunker) Split(text string) []string {
	if len(text) <= c.size {
		return []string{text}
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + c.size

		if end < len(text) {
			window := text[start:end]
			lastPeriod := strings.LastIndex(window, ".")
			lastNewline := strings.LastIndex(window, "\n")

			breakPoint := lastPeriod
			if lastNewline > breakPoint {
				breakPoint = lastNewline
			}
			// a window without any boundary keeps the hard cutoff;
			// breakPoint -1 would otherwise collapse end onto start
			if breakPoint >= 0 && breakPoint > c.size-boundaryWindow {
				end = start + breakPoint + 1
			}
		} else {
			end = len(text)
		}

		if piece := strings.TrimSpace(text[start:end]); piece != "" {
			chunks = append(chunks, piece)
		}

		if end >= len(text) {
			break
		}
		next := end - c.overlap
		if next <= start {
			// overlap swallowed the whole advance; step past the window
			// instead of looping forever
			next = end
		}
		start = next
	}

	return chunks
}

var (
	reWhitespace = regexp.MustCompile(`\s+`)
	cleanerPairs = strings.NewReplacer(
		"\f", " ",
		"\r", " ",
		"“", `"`,
		"”", `"`,
		"‘", "'",
		"’", "'",
		"–", "-",
		"—", "-",
	)
)

// Clean normalizes raw extracted text: collapses whitespace, strips
// form feeds and carriage returns, straightens curly quotes and dashes.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	text = cleanerPairs.Replace(text)
	text = reWhitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
