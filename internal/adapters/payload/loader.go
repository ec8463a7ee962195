package payload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andrescamacho/cardarb-go/internal/domain/extraction"
)

// StdinRef selects standard input instead of a file.
const StdinRef = "-"

// FileLoader reads card payload JSON documents written by the fetch layer.
type FileLoader struct {
	stdin io.Reader
}

// NewFileLoader creates a loader. stdin is used for the "-" reference and
// defaults to os.Stdin.
func NewFileLoader(stdin io.Reader) *FileLoader {
	if stdin == nil {
		stdin = os.Stdin
	}
	return &FileLoader{stdin: stdin}
}

// Load reads and parses one card payload.
func (l *FileLoader) Load(ctx context.Context, ref string) (*extraction.CardPayload, error) {
	data, err := l.read(ctx, ref)
	if err != nil {
		return nil, err
	}
	card, err := extraction.ParseCardPayload(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ref, err)
	}
	return card, nil
}

// LoadRaw reads a single marketplace payload as a generic JSON object.
func (l *FileLoader) LoadRaw(ctx context.Context, ref string) (map[string]interface{}, error) {
	data, err := l.read(ctx, ref)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: %w", ref, err)
	}
	return raw, nil
}

func (l *FileLoader) read(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ref == StdinRef {
		data, err := io.ReadAll(l.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	return data, nil
}

// ListDir returns every *.json file directly inside dir, sorted by name.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list payload directory: %w", err)
	}

	var refs []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		refs = append(refs, filepath.Join(dir, e.Name()))
	}
	sort.Strings(refs)
	return refs, nil
}
