package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/brume-cli/brume/internal/core/domain"
)

func isNotExist(err error) bool {
	return os.IsNotExist(err) || strings.Contains(err.Error(), "no such file or directory")
}

// listRenderedFiles returns every *.md path directly under dir, sorted
// for deterministic reindex ordering.
func listRenderedFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, domain.Wrap(domain.KindFilesystem, "listing rendered documents", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	return out, nil
}

func mustRead(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}

// marshalRawPretty pretty-prints the raw transcript for persistence under
// raw/*.json, per spec.md §4.8 step (g).
func marshalRawPretty(raw domain.RawTranscript) ([]byte, error) {
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return nil, domain.Wrap(domain.KindParse, "serializing raw transcript", err)
	}
	return data, nil
}
