package provider

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write snapshot failed: %v", err)
	}
	return path
}

func TestFileProviderFetch(t *testing.T) {
	path := writeFile(t, `{"children":[{"id":1,"firstName":"Ada","pendingAmount":0}],"payments":[{"id":2,"amount":500,"paymentType":"SINGLE_PAYMENT","status":"PENDING"}]}`)

	p := NewFileProvider(path)
	fixed := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	snap, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(snap.Children) != 1 || len(snap.Payments) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if !snap.FetchedAt.Equal(fixed) {
		t.Fatalf("unexpected fetched at: %v", snap.FetchedAt)
	}
}

func TestFileProviderRereadsFile(t *testing.T) {
	path := writeFile(t, `[{"id":1,"amount":500,"status":"PENDING"}]`)
	p := NewFileProvider(path)

	first, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := os.WriteFile(path, []byte(`[{"id":1,"amount":500,"status":"SUCCESSFUL"}]`), 0o600); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	second, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if first.Payments[0].Status != "PENDING" || second.Payments[0].Status != "SUCCESSFUL" {
		t.Fatalf("expected re-read to observe new status, got %q then %q", first.Payments[0].Status, second.Payments[0].Status)
	}
}

func TestFileProviderErrors(t *testing.T) {
	if _, err := NewFileProvider("").Fetch(context.Background()); !errors.Is(err, ErrEmptySource) {
		t.Fatalf("expected ErrEmptySource, got %v", err)
	}
	if _, err := NewFileProvider(filepath.Join(t.TempDir(), "missing.json")).Fetch(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := NewFileProvider(writeFile(t, `{not json`)).Fetch(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := NewFileProvider(writeFile(t, "  ")).Fetch(context.Background()); !errors.Is(err, ErrEmptySource) {
		t.Fatalf("expected ErrEmptySource for blank file, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewFileProvider(writeFile(t, `[]`)).Fetch(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
