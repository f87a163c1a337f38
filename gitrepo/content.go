package gitrepo

import (
	"bufio"
	"errors"
	"io"
	"os"

	"repolens/utils"
)

// ErrNotText marks content that cannot be decoded as text. Callers recover
// locally; it never aborts a batch.
var ErrNotText = errors.New("content is not text")

// ReadPrefix returns up to maxBytes from the start of a tracked file.
func (r *Repo) ReadPrefix(path string, maxBytes int) ([]byte, error) {
	file, err := os.Open(r.abs(path))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buf := make([]byte, maxBytes)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return buf[:n], nil
}

// ReadFull returns the whole file as text, or ErrNotText when the content is
// not decodable (binary that slipped past earlier filters).
func (r *Repo) ReadFull(path string) (string, error) {
	content, err := os.ReadFile(r.abs(path))
	if err != nil {
		return "", err
	}
	probe := content
	if len(probe) > 4096 {
		probe = probe[:4096]
	}
	if len(content) > 0 && !utils.LooksLikeText(probe) {
		return "", ErrNotText
	}
	return string(content), nil
}

// CountLines counts raw lines without decoding, so it works for any content.
func (r *Repo) CountLines(path string) int {
	file, err := os.Open(r.abs(path))
	if err != nil {
		return 0
	}
	defer file.Close()

	var lines int
	scan := bufio.NewScanner(file)
	scan.Buffer(make([]byte, 64*1024), 1024*1024)
	for scan.Scan() {
		lines++
	}
	return lines
}
