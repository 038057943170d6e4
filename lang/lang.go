package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/exprkit/log"
)

// optionsKey holds Expression configuration options.
// This type is gob-encodable for cache key hashing.
type optionsKey struct {
	collectTokens bool
	skipCache     bool
}

// Option configures parsing or evaluation behavior.
type Option func(*Expression)

// WithTokens enables token collection during parsing. Tokens are recorded
// only when enabled, keeping the default path allocation-free for callers
// that do not need syntax highlighting.
func WithTokens(collect bool) Option {
	return func(x *Expression) {
		x.opts.collectTokens = collect
	}
}

// WithoutCache bypasses the global parse cache for this parse.
func WithoutCache() Option {
	return func(x *Expression) {
		x.opts.skipCache = true
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(x *Expression) {
		x.logger = logger
	}
}

// applyOptions applies functional options to an Expression.
func applyOptions(x *Expression, opts ...Option) {
	for _, opt := range opts {
		opt(x)
	}
}

// Parse parses source and returns an immutable Expression.
//
// Identical source parsed with identical options is served from a global
// cache, so hosts may call Parse freely and still pay for each distinct
// expression only once ("parse once, evaluate many").
func Parse(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Expression, error) {
	var temp Expression

	applyOptions(&temp, opts...)

	temp.logger.TraceContext(
		ctx,
		"parse start",
		slog.Int("source_length", len(source)),
		slog.Bool("collect_tokens", temp.opts.collectTokens),
	)

	if temp.opts.skipCache {
		return parse(ctx, source, opts...)
	}

	return parseCached(ctx, source, opts...)
}

// Eval parses source (through the cache) and evaluates it against env in
// one call. The env may be nil.
func Eval(
	ctx context.Context,
	source string,
	env Environment,
	opts ...Option,
) (Value, error) {
	x, err := Parse(ctx, source, opts...)
	if err != nil {
		return Value{}, err
	}

	return x.Evaluate(ctx, env)
}

// parse is the internal parsing implementation, bypassing the cache.
func parse(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Expression, error) {
	x := &Expression{source: source}
	applyOptions(x, opts...)

	p := newParser(source, x.opts.collectTokens)

	root, err := p.parse()
	if err != nil {
		return nil, err
	}

	x.root = root
	x.tokens = p.tokens

	x.logger.TraceContext(
		ctx,
		"parse complete",
		slog.Int("token_count", len(x.tokens)),
	)

	return x, nil
}
