package corpus

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/quotetok/pkg/domain"
)

//go:embed quotes.json
var builtinQuotes []byte

// Builtin serves the quotes embedded into the binary
type Builtin struct{}

// GetQuotes returns the embedded quotes
func (Builtin) GetQuotes(_ context.Context) ([]domain.Quote, error) {
	quotes, err := decodeQuotes(builtinQuotes)
	if err != nil {
		return nil, fmt.Errorf("builtin quotes: %w", err)
	}
	return normalize(quotes, DefaultCategory), nil
}

// FileProvider reads quotes from a local JSON file, an array of {id, content, category}
type FileProvider struct {
	Path     string
	Category string // assigned to quotes without a category
}

// GetQuotes reads and decodes the file on every call
func (p *FileProvider) GetQuotes(_ context.Context) ([]domain.Quote, error) {
	data, err := os.ReadFile(p.Path) //nolint:gosec // path comes from config
	if err != nil {
		return nil, fmt.Errorf("read quotes file: %w", err)
	}
	quotes, err := decodeQuotes(data)
	if err != nil {
		return nil, fmt.Errorf("quotes file %s: %w", p.Path, err)
	}
	res := normalize(quotes, p.Category)
	lgr.Printf("[DEBUG] read %d quotes from %s", len(res), p.Path)
	return res, nil
}

// ReadFile loads quotes from a JSON file, used for seeding the database
func ReadFile(path string) ([]domain.Quote, error) {
	return (&FileProvider{Path: path, Category: DefaultCategory}).GetQuotes(context.Background())
}

func decodeQuotes(data []byte) ([]domain.Quote, error) {
	var quotes []domain.Quote
	if err := json.Unmarshal(data, &quotes); err != nil {
		return nil, fmt.Errorf("decode quotes: %w", err)
	}
	return quotes, nil
}
