package mesh

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// minViableSize is the smallest input any strategy can make sense of:
// even the earliest size-candidate fields sit in the first 0x60 bytes.
const minViableSize = 0x60

// Decoder runs the strategy chain over raw assets. The zero-value-like
// Decoder from NewDecoder binds the production LZ4 codec, a nop logger
// and the default candidate tables; all are replaceable through options.
// A Decoder is stateless across calls and safe for sequential reuse.
type Decoder struct {
	codec           Decompressor
	log             *zap.Logger
	sizeCandidates  []SizeCandidate
	countCandidates []CountCandidate
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithDecompressor replaces the block codec, e.g. with a deterministic
// fake in tests.
func WithDecompressor(c Decompressor) Option {
	return func(d *Decoder) { d.codec = c }
}

// WithLogger attaches a logger for per-strategy tracing.
func WithLogger(l *zap.Logger) Option {
	return func(d *Decoder) { d.log = l }
}

// WithSizeCandidates replaces the compressed-size field placements.
func WithSizeCandidates(cands []SizeCandidate) Option {
	return func(d *Decoder) { d.sizeCandidates = cands }
}

// WithCountCandidates replaces the heuristic count-field placements.
func WithCountCandidates(cands []CountCandidate) Option {
	return func(d *Decoder) { d.countCandidates = cands }
}

// NewDecoder returns a Decoder with production defaults.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		codec:           LZ4Decompressor{},
		log:             zap.NewNop(),
		sizeCandidates:  DefaultSizeCandidates,
		countCandidates: DefaultCountCandidates,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode classifies the asset and attempts the sniffed strategies in
// order. The first strategy producing a structurally valid mesh wins and
// its output is sanitized before return. Every strategy failure is local:
// it is recorded and the chain advances. Decoding is deterministic: the
// same bytes always yield the same mesh.
func (d *Decoder) Decode(asset RawAsset) (Result, error) {
	if len(asset.Data) < minViableSize {
		return Result{}, fmt.Errorf("%w: %d bytes", ErrTruncatedData, len(asset.Data))
	}

	cls := Sniff(asset)
	var attempts []error
	for _, s := range cls.Order {
		m, err := d.runStrategy(s, asset, cls)
		if err == nil {
			err = m.Validate()
		}
		if err != nil {
			d.log.Debug("strategy failed",
				zap.Stringer("strategy", s),
				zap.String("model", asset.Name),
				zap.Error(err))
			attempts = append(attempts, fmt.Errorf("%s: %w", s, err))
			continue
		}

		clean, kept, dropped := Sanitize(m)
		d.log.Debug("mesh decoded",
			zap.Stringer("strategy", s),
			zap.String("model", asset.Name),
			zap.Int("vertices", clean.VertexCount()),
			zap.Int("faces", kept),
			zap.Int("dropped", dropped))
		return Result{
			Mesh:         clean,
			Strategy:     s,
			TotalFaces:   kept + dropped,
			DroppedFaces: dropped,
		}, nil
	}
	return Result{}, fmt.Errorf("%w: %w", ErrStrategiesExhausted, errors.Join(attempts...))
}

// runStrategy dispatches one strategy attempt. Failed attempts leave no
// side effects; each strategy works on the shared immutable input only.
func (d *Decoder) runStrategy(s Strategy, asset RawAsset, cls Classification) (*DecodedMesh, error) {
	switch s {
	case StrategyFmtMesh:
		return d.decodeFmtMesh(asset, cls.ZipPos)
	case StrategyCompressed, StrategyCompressedRetry:
		return d.decodeCompressed(asset, cls.ZipPos)
	case StrategyHeuristic:
		return d.decodeHeuristic(asset)
	default:
		return nil, fmt.Errorf("%w: unknown strategy %d", ErrUnsupportedHeader, s)
	}
}
