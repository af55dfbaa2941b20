// services_test.go
package wlang

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_DirStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := DirStore(dir)

	require.NoError(t, s.WriteFile("note.txt", "payload"))
	got, err := s.ReadFile("note.txt")
	require.NoError(t, err)
	require.Equal(t, "payload", got)

	_, err = s.ReadFile("missing.txt")
	require.Error(t, err)
}

func Test_DirStore_StripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	s := DirStore(dir)

	require.NoError(t, s.WriteFile("../../escape.txt", "stay"))
	_, err := os.Stat(filepath.Join(dir, "escape.txt"))
	require.NoError(t, err, "scripts must not write outside the scratch dir")

	got, err := s.ReadFile("sub/dir/escape.txt")
	require.NoError(t, err)
	require.Equal(t, "stay", got)
}

func Test_StdinReader(t *testing.T) {
	var out bytes.Buffer
	r := StdinReader(strings.NewReader("alpha\r\nbeta\n"), &out)

	line, err := r.ReadLine("> ")
	require.NoError(t, err)
	require.Equal(t, "alpha", line, "CR and LF are trimmed")
	require.Equal(t, "> ", out.String())

	line, err = r.ReadLine("? ")
	require.NoError(t, err)
	require.Equal(t, "beta", line)

	_, err = r.ReadLine("")
	require.Error(t, err, "exhausted input surfaces the read error")
}

func Test_SystemRand_Bounds(t *testing.T) {
	r := SystemRand()
	for k := 0; k < 50; k++ {
		n := r.IntBetween(3, 7)
		require.GreaterOrEqual(t, n, int64(3))
		require.LessOrEqual(t, n, int64(7))
	}
	require.Equal(t, int64(4), r.IntBetween(4, 4))
}
