package lang

import (
	"bytes"
	"context"
	"encoding/gob"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores parsed expressions keyed by the combined hash of
// source text and parse options. Expressions are immutable after parsing,
// so cached entries are shared safely across goroutines.
var globalCache sync.Map

// state tracks the one-time parse of a single cache entry.
type state struct {
	once sync.Once
	expr *Expression
	err  error
}

// hashOptions encodes options using gob and hashes with xxh3.
// Returns a hash that uniquely identifies the options configuration.
func hashOptions(opts optionsKey) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	_ = enc.Encode(opts.collectTokens)

	return xxh3.Hash(buf.Bytes())
}

// ParseReader parses input from an io.Reader and returns the Expression.
// The content is cached after first parse for efficiency.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Expression, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	var temp Expression

	applyOptions(&temp, opts...)

	temp.logger.TraceContext(
		ctx,
		"read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return Parse(ctx, string(data), opts...)
}

// parseCached parses a string with caching.
func parseCached(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Expression, error) {
	var temp Expression

	applyOptions(&temp, opts...)

	// Combine source hash with options hash for cache key uniqueness.
	sourceHash := xxh3.Hash([]byte(source))
	optsHash := hashOptions(temp.opts)
	sourceKey := strconv.FormatUint(sourceHash^optsHash, 36)

	entry := new(state)
	value, cacheHit := globalCache.LoadOrStore(sourceKey, entry)

	st, ok := value.(*state)
	if !ok {
		return nil, ErrParse.Wrap(errNote("invalid state type in cache"))
	}

	temp.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.String("opts_hash", strconv.FormatUint(optsHash, 16)),
		slog.Bool("cache_hit", cacheHit),
	)

	st.once.Do(func() {
		st.expr, st.err = parse(ctx, source, opts...)
	})

	if st.err != nil {
		return nil, st.err
	}

	// Return a shallow copy so per-call options (such as the logger) do
	// not leak between callers. The root and tokens are shared; both are
	// immutable.
	x := *st.expr
	applyOptions(&x, opts...)

	return &x, nil
}

// ClearCache removes all cached expressions.
// This is primarily useful for testing or when memory needs to be
// reclaimed.
func ClearCache() {
	globalCache = sync.Map{}
}
