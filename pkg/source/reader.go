package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
)

// MaxLineSize is the longest line the reader accepts. Minified bundles inlined
// into HTML can be long, so this is well above bufio's default.
const MaxLineSize = 1024 * 1024

// ReadLines reads the whole file at path. The file is closed before returning,
// and nothing is returned unless the entire file was read.
func ReadLines(ctx context.Context, path string) ([]Line, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer f.Close()

	lines, err := Read(ctx, f, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

// Read splits r into lines tagged with name. Lines end at "\n" with an
// optional preceding "\r"; a lone "\r" (classic Mac OS) is not a line break,
// so such files read as a single line.
func Read(ctx context.Context, r io.Reader, name string) ([]Line, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	var lines []Line
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lines = append(lines, Line{
			Content: sc.Text(),
			Source:  name,
			LineNum: len(lines) + 1,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
