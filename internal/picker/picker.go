// Package picker implements the interactive file-selection prompt used
// when the converter is launched without arguments.
package picker

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrQuit is returned when the user declines to pick anything.
var ErrQuit = fmt.Errorf("selection aborted")

// ParseSelection resolves a selection line against a 1-based list of n
// entries. Accepted forms: space- or comma-separated numbers ("1 2 3",
// "1,2,3"), ranges ("2-5"), mixtures of both, and the words "all" and
// "a". "q" and "quit" abort. Returned indices are 0-based, in input
// order, deduplicated.
func ParseSelection(line string, n int) ([]int, error) {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "q", "quit":
		return nil, ErrQuit
	case "a", "all":
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out, nil
	case "":
		return nil, fmt.Errorf("empty selection")
	}

	var out []int
	seen := make(map[int]bool)
	add := func(i int) error {
		if i < 1 || i > n {
			return fmt.Errorf("selection %d out of range 1-%d", i, n)
		}
		if !seen[i] {
			seen[i] = true
			out = append(out, i-1)
		}
		return nil
	}

	for _, tok := range strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == ',' }) {
		if lo, hi, ok := strings.Cut(tok, "-"); ok {
			a, err1 := strconv.Atoi(lo)
			b, err2 := strconv.Atoi(hi)
			if err1 != nil || err2 != nil || a > b {
				return nil, fmt.Errorf("bad range %q", tok)
			}
			for i := a; i <= b; i++ {
				if err := add(i); err != nil {
					return nil, err
				}
			}
			continue
		}
		i, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("bad selection %q", tok)
		}
		if err := add(i); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Prompt lists the files on w, reads selection lines from r until one
// parses, and returns the chosen paths. Bad lines re-prompt; ErrQuit
// propagates.
func Prompt(r io.Reader, w io.Writer, paths []string) ([]string, error) {
	fmt.Fprintf(w, "Found %d mesh files:\n", len(paths))
	for i, p := range paths {
		fmt.Fprintf(w, "  %3d) %s\n", i+1, filepath.Base(p))
	}
	fmt.Fprintln(w, `Select files to convert ("1 2 3", "2-5", "all") or "q" to quit:`)

	sc := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "> ")
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, err
			}
			return nil, ErrQuit
		}
		idxs, err := ParseSelection(sc.Text(), len(paths))
		if err == ErrQuit {
			return nil, err
		}
		if err != nil {
			fmt.Fprintf(w, "%v\n", err)
			continue
		}
		chosen := make([]string, len(idxs))
		for i, idx := range idxs {
			chosen[i] = paths[idx]
		}
		return chosen, nil
	}
}
