package peptide

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

//go:embed data/nepre_f6.txt
var defaultAdjacencyText []byte

// defaultAdjacency is the contact table shipped with the package.
var defaultAdjacency = mustParseAdjacency(defaultAdjacencyText)

func mustParseAdjacency(b []byte) ScoreTable {
	t, err := ParseAdjacencyTable(bytes.NewReader(b))
	if err != nil {
		panic(fmt.Sprintf("embedded adjacency table: %v", err))
	}
	return t
}

// ParseAdjacencyTable reads a 20 by 20 contact table from its text form:
// one row per line, whitespace-separated floats, with blank lines and
// #-prefixed comments skipped.
func ParseAdjacencyTable(r io.Reader) (ScoreTable, error) {
	var table ScoreTable
	row := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if row >= AlphabetSize {
			return table, fmt.Errorf("adjacency table has more than %d rows", AlphabetSize)
		}
		fields := strings.Fields(line)
		if len(fields) != AlphabetSize {
			return table, fmt.Errorf("adjacency row %d has %d columns, want %d", row, len(fields), AlphabetSize)
		}
		for col, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return table, fmt.Errorf("adjacency row %d column %d: %w", row, col, err)
			}
			table[row][col] = v
		}
		row++
	}
	if err := sc.Err(); err != nil {
		return table, fmt.Errorf("read adjacency table: %w", err)
	}
	if row != AlphabetSize {
		return table, fmt.Errorf("adjacency table has %d rows, want %d", row, AlphabetSize)
	}
	return table, nil
}

// LoadAdjacencyTable reads a contact table from a file in the same text form.
func LoadAdjacencyTable(path string) (ScoreTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return ScoreTable{}, fmt.Errorf("open adjacency table: %w", err)
	}
	defer f.Close()

	t, err := ParseAdjacencyTable(f)
	if err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
