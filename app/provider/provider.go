package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-school-fees/app/entity"
	"github.com/vibast-solutions/ms-go-school-fees/app/mapper"
	"github.com/vibast-solutions/ms-go-school-fees/app/types"
)

var ErrEmptySource = errors.New("snapshot source is empty")

// SnapshotProvider performs one read of a payer's children and payments.
type SnapshotProvider interface {
	Fetch(ctx context.Context) (*entity.Snapshot, error)
}

// FileProvider reads a backend snapshot dump from disk on every Fetch, so
// edits to the file show up on the next refresh.
type FileProvider struct {
	path string
	now  func() time.Time
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: strings.TrimSpace(path), now: time.Now}
}

func (p *FileProvider) Fetch(ctx context.Context) (*entity.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.path == "" {
		return nil, ErrEmptySource
	}

	raw, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return Decode(raw, p.now())
}

// Decode accepts either a full snapshot object or a bare array of payments.
func Decode(raw []byte, fetchedAt time.Time) (*entity.Snapshot, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, ErrEmptySource
	}

	var resp types.SnapshotResponse
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &resp.Payments); err != nil {
			return nil, fmt.Errorf("decode payments: %w", err)
		}
	} else if err := json.Unmarshal([]byte(trimmed), &resp); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	return mapper.SnapshotFromResponse(&resp, fetchedAt), nil
}
