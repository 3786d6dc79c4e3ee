package csv

import (
	"bufio"
	"io"
	"strings"

	"hermannm.dev/wrap"
)

var DefaultDelimitersToCheck = []rune{',', ';', '\t', ' ', '|'}

// DeduceFieldDelimiter reads up to maxRowsToCheck lines from the given file,
// and picks the candidate delimiter that occurs a consistent, nonzero number
// of times on every line. Station names may contain spaces and commas inside
// quotes, so consistency across lines is weighted over raw occurrence count.
func DeduceFieldDelimiter(
	csvFile io.ReadSeeker,
	maxRowsToCheck int,
	delimitersToCheck []rune,
) (delimiter rune, err error) {
	// Resets reader position in file before returning, so its data can be read subsequently
	defer func() {
		if _, seekErr := csvFile.Seek(0, io.SeekStart); seekErr != nil {
			err = wrap.Error(seekErr, "failed to reset CSV reader after deducing field delimiter")
		}
	}()

	if len(delimitersToCheck) == 0 {
		delimitersToCheck = DefaultDelimitersToCheck
	}

	type candidate struct {
		delimiter rune
		min, max  int
	}

	candidates := make([]candidate, 0, len(delimitersToCheck))
	for _, delimiter := range delimitersToCheck {
		candidates = append(candidates, candidate{delimiter: delimiter, min: -1, max: -1})
	}

	scanner := bufio.NewScanner(csvFile)
	for i := 0; scanner.Scan() && i < maxRowsToCheck; i++ {
		line := scanner.Text()

		for j, candidate := range candidates {
			count := strings.Count(line, string(candidate.delimiter))
			if candidate.max == -1 || count > candidate.max {
				candidate.max = count
			}
			if candidate.min == -1 || count < candidate.min {
				candidate.min = count
			}
			candidates[j] = candidate
		}
	}

	best := candidates[0]
	for _, candidate := range candidates[1:] {
		consistent := candidate.min == candidate.max && candidate.max > 0
		bestConsistent := best.min == best.max && best.max > 0

		switch {
		case consistent && !bestConsistent:
			best = candidate
		case consistent == bestConsistent && candidate.max > best.max:
			best = candidate
		}
	}

	return best.delimiter, nil
}
