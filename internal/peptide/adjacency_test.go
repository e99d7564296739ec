package peptide

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAdjacencyTableSkipsCommentsAndBlankLines(t *testing.T) {
	var b strings.Builder
	b.WriteString("# contact table\n\n")
	for row := 0; row < AlphabetSize; row++ {
		for col := 0; col < AlphabetSize; col++ {
			fmt.Fprintf(&b, " %.4f", float64(row*AlphabetSize+col)/100)
		}
		b.WriteString("\n")
		if row == 9 {
			b.WriteString("\n# halfway\n")
		}
	}

	table, err := ParseAdjacencyTable(strings.NewReader(b.String()))
	require.NoError(t, err)
	require.InDelta(t, 0.0, table[0][0], 1e-9)
	require.InDelta(t, 0.21, table[1][1], 1e-9)
	require.InDelta(t, 3.99, table[19][19], 1e-9)
}

func TestParseAdjacencyTableRejectsMalformedInput(t *testing.T) {
	row := strings.Repeat(" 0.5", AlphabetSize)

	_, err := ParseAdjacencyTable(strings.NewReader("1 2 3\n"))
	require.EqualError(t, err, "adjacency row 0 has 3 columns, want 20")

	short := strings.Repeat(row+"\n", AlphabetSize-1)
	_, err = ParseAdjacencyTable(strings.NewReader(short))
	require.EqualError(t, err, "adjacency table has 19 rows, want 20")

	long := strings.Repeat(row+"\n", AlphabetSize+1)
	_, err = ParseAdjacencyTable(strings.NewReader(long))
	require.EqualError(t, err, "adjacency table has more than 20 rows")

	bad := strings.Replace(row, "0.5", "half", 1) + "\n" + strings.Repeat(row+"\n", AlphabetSize-1)
	_, err = ParseAdjacencyTable(strings.NewReader(bad))
	require.Error(t, err)
	require.Contains(t, err.Error(), "adjacency row 0 column 0")
}

func TestLoadAdjacencyTableReadsFilesAndWrapsErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contacts.txt")

	row := strings.Repeat(" 0.25", AlphabetSize) + "\n"
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat(row, AlphabetSize)), 0o644))

	table, err := LoadAdjacencyTable(path)
	require.NoError(t, err)
	require.Equal(t, 0.25, table[7][11])

	_, err = LoadAdjacencyTable(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "open adjacency table")

	require.NoError(t, os.WriteFile(path, []byte("1 2 3\n"), 0o644))
	_, err = LoadAdjacencyTable(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), path)
	require.Contains(t, err.Error(), "adjacency row 0")
}

func TestDefaultAdjacencyFollowsHydropathyProduct(t *testing.T) {
	pairs := [][2]byte{{0, 0}, {5, 14}, {14, 5}, {7, 8}, {19, 2}}
	for _, p := range pairs {
		want := -0.05 * Hydropathy[p[0]] * Hydropathy[p[1]]
		require.InDelta(t, want, defaultAdjacency[p[0]][p[1]], 1e-9, "pair %v", p)
	}

	for i := 0; i < AlphabetSize; i++ {
		for j := i + 1; j < AlphabetSize; j++ {
			require.Equal(t, defaultAdjacency[i][j], defaultAdjacency[j][i])
		}
	}
}
