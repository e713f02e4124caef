package corpus

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadURLMap reads a "filename URL" mapping file, one entry per line. Blank
// lines and lines starting with "//" are skipped; lines without a URL part
// are ignored.
func LoadURLMap(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening url map %s: %w", path, err)
	}
	defer f.Close()

	urls := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			continue
		}
		urls[parts[0]] = strings.TrimSpace(parts[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading url map %s: %w", path, err)
	}
	return urls, nil
}
