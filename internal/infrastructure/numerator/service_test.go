package numerator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	corenumerator "shopinvoice/internal/core/numerator"
)

// Mock objects
type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the sequence row: every call bumps and returns it.
type mockQuerier struct {
	mu           sync.Mutex
	currentValue int64
	lastKey      string
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(args) > 0 {
		if key, ok := args[0].(string); ok {
			m.lastKey = key
		}
	}

	if len(args) == 2 {
		// SetNextNumber passes the stored value directly.
		if val, ok := args[1].(int64); ok {
			m.currentValue = val
			return &mockRow{val: m.currentValue}
		}
	}

	m.currentValue++
	return &mockRow{val: m.currentValue}
}

func TestNextNumber_Sequential(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := corenumerator.DefaultConfig("INV")
	period := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	num, err := svc.NextNumber(ctx, cfg, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "INV-2026-00001" {
		t.Errorf("expected INV-2026-00001, got %s", num)
	}

	num, err = svc.NextNumber(ctx, cfg, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "INV-2026-00002" {
		t.Errorf("expected INV-2026-00002, got %s", num)
	}

	if q.lastKey != "INV_2026" {
		t.Errorf("expected scope key INV_2026, got %s", q.lastKey)
	}
}

func TestNextNumber_ScopeResetsPerYear(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	cfg := corenumerator.DefaultConfig("INV")

	if _, err := svc.NextNumber(context.Background(), cfg, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.lastKey != "INV_2027" {
		t.Errorf("expected scope key INV_2027, got %s", q.lastKey)
	}
}

func TestNextNumber_NeverReset(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	cfg := corenumerator.Config{Prefix: "INV", PadWidth: 5, ResetPeriod: "never"}

	num, err := svc.NextNumber(context.Background(), cfg, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "INV-00001" {
		t.Errorf("expected INV-00001, got %s", num)
	}
	if q.lastKey != "INV" {
		t.Errorf("expected scope key INV, got %s", q.lastKey)
	}
}

func TestSetNextNumber(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := corenumerator.DefaultConfig("INV")
	period := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	if err := svc.SetNextNumber(ctx, cfg, period, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	num, err := svc.NextNumber(ctx, cfg, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "INV-2026-00100" {
		t.Errorf("expected INV-2026-00100, got %s", num)
	}
}

func TestNextNumber_Uninitialized(t *testing.T) {
	var svc *Service
	if _, err := svc.NextNumber(context.Background(), corenumerator.DefaultConfig("INV"), time.Now()); err == nil {
		t.Fatal("expected error for uninitialized service")
	}
}
