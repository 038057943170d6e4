package lang

import (
	"strings"
	"sync"
	"testing"
)

func TestParseCacheSharesTree(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	a, err := Parse(t.Context(), "1 + 2 * 3")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	b, err := Parse(t.Context(), "1 + 2 * 3")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	// Identical source parses once; the tree is shared between results.
	if a.Root() != b.Root() {
		t.Error("expected cached parses to share the syntax tree")
	}
}

func TestParseCacheKeyedByOptions(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	plain, err := Parse(t.Context(), "1 + 2")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	tokens, err := Parse(t.Context(), "1 + 2", WithTokens(true))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(plain.Tokens()) != 0 {
		t.Errorf("plain parse must not collect tokens, got %d", len(plain.Tokens()))
	}

	if len(tokens.Tokens()) == 0 {
		t.Error("token-collecting parse must not share the bare cache entry")
	}
}

func TestParseCacheBypass(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	a, err := Parse(t.Context(), "4 * 4", WithoutCache())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	b, err := Parse(t.Context(), "4 * 4", WithoutCache())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if a.Root() == b.Root() {
		t.Error("WithoutCache parses must not share the syntax tree")
	}
}

func TestParseCacheConcurrent(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	const workers = 16

	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			x, err := Parse(t.Context(), "pow(2, 8) + 1")
			if err != nil {
				t.Errorf("parse error: %v", err)

				return
			}

			result, err := x.Evaluate(t.Context(), nil)
			if err != nil {
				t.Errorf("evaluate error: %v", err)

				return
			}

			if !result.Equal(Number(257)) {
				t.Errorf("expected 257, got %v", result)
			}
		}()
	}

	wg.Wait()
}

func TestParseReader(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	x, err := ParseReader(t.Context(), strings.NewReader("6 * 7"))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	result, err := x.Evaluate(t.Context(), nil)
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	if !result.Equal(Number(42)) {
		t.Errorf("expected 42, got %v", result)
	}
}
