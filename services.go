// services.go: narrow interfaces for everything outside the core.
//
// The evaluator reaches the system clock, the random source, the scratch-file
// store, and the interactive input line only through these interfaces, so
// tests can substitute deterministic fakes and hosts can sandbox I/O.
package wlang

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// Clock supplies wall-clock snapshots and blocking sleeps.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Rand draws uniform integers inclusive of both bounds. Callers guarantee
// lo <= hi.
type Rand interface {
	IntBetween(lo, hi int64) int64
}

// Store persists and retrieves text under bare filenames inside one
// process-wide scratch directory.
type Store interface {
	WriteFile(name, text string) error
	ReadFile(name string) (string, error)
}

// LineReader blocks for one line of external input after printing the prompt.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// --- production implementations ---

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns the real wall clock.
func SystemClock() Clock { return systemClock{} }

type sysRand struct {
	rng *rand.Rand
}

func (r *sysRand) IntBetween(lo, hi int64) int64 {
	return lo + r.rng.Int63n(hi-lo+1)
}

// SystemRand returns a time-seeded pseudo-random source.
func SystemRand() Rand {
	return &sysRand{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// scratchStore keeps files inside a single directory. Path components are
// stripped from caller-given names so scripts cannot escape it.
type scratchStore struct {
	dir string
}

// DirStore returns a Store rooted at dir; an empty dir means the OS temp
// directory.
func DirStore(dir string) Store {
	if dir == "" {
		dir = os.TempDir()
	}
	return &scratchStore{dir: dir}
}

func (s *scratchStore) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

func (s *scratchStore) WriteFile(name, text string) error {
	return os.WriteFile(s.path(name), []byte(text), 0o644)
}

func (s *scratchStore) ReadFile(name string) (string, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type stdinReader struct {
	in  *bufio.Reader
	out io.Writer
}

// StdinReader reads input lines from in, echoing prompts to out.
func StdinReader(in io.Reader, out io.Writer) LineReader {
	return &stdinReader{in: bufio.NewReader(in), out: out}
}

func (r *stdinReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	line, err := r.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line, nil
}
