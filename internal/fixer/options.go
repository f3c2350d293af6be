package fixer

import (
	"go.uber.org/zap"

	"yaml-fixer/internal/confidence"
	"yaml-fixer/internal/fixes"
	"yaml-fixer/internal/knowledge"
	"yaml-fixer/internal/yamlio"
)

const (
	// DefaultIndentUnit is the indentation width used when none is given.
	DefaultIndentUnit = 2
	// DefaultMaxIterations bounds the detect-apply-parse loop.
	DefaultMaxIterations = 3
)

// Options controls a single Fix call.
type Options struct {
	// IndentUnit is the indentation width in spaces (>= 1).
	IndentUnit int
	// Aggressive lowers the confidence threshold and enables relocation
	// of misplaced fields.
	Aggressive bool
	// ConfidenceThreshold is the minimum confidence of an applied fix.
	// Zero or less selects confidence.DefaultThreshold.
	ConfidenceThreshold float64
	// MaxIterations bounds the detect-apply-parse loop.
	MaxIterations int
}

// DefaultOptions returns the default fix options.
func DefaultOptions() Options {
	return Options{
		IndentUnit:          DefaultIndentUnit,
		ConfidenceThreshold: confidence.DefaultThreshold,
		MaxIterations:       DefaultMaxIterations,
	}
}

func (o Options) withDefaults() Options {
	if o.IndentUnit < 1 {
		o.IndentUnit = DefaultIndentUnit
	}

	if o.MaxIterations < 1 {
		o.MaxIterations = DefaultMaxIterations
	}

	return o
}

// Threshold returns the effective confidence threshold.
func (o Options) Threshold() float64 {
	return confidence.Threshold(o.ConfidenceThreshold, o.Aggressive)
}

// Fixer repairs YAML text. A Fixer holds only read-only state and is safe
// for concurrent use.
type Fixer struct {
	kb     *knowledge.Base
	codec  yamlio.Codec
	log    *zap.Logger
	passes []fixes.Pass
}

// Option configures a Fixer.
type Option func(*Fixer)

// WithLogger sets the logger used for iteration traces.
func WithLogger(log *zap.Logger) Option {
	return func(f *Fixer) {
		if log != nil {
			f.log = log
		}
	}
}

// WithCodec replaces the YAML parser and serializer.
func WithCodec(codec yamlio.Codec) Option {
	return func(f *Fixer) {
		if codec != nil {
			f.codec = codec
		}
	}
}

// WithKnowledge replaces the built-in Kubernetes knowledge base.
func WithKnowledge(kb *knowledge.Base) Option {
	return func(f *Fixer) {
		if kb != nil {
			f.kb = kb
		}
	}
}

// New creates a Fixer. Without options it uses the built-in knowledge
// base, the yaml.v3 codec and a no-op logger.
func New(opts ...Option) *Fixer {
	f := &Fixer{
		codec:  yamlio.YAMLCodec{},
		log:    zap.NewNop(),
		passes: fixes.DefaultPasses(),
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.kb == nil {
		f.kb = knowledge.MustDefault()
	}

	return f
}
