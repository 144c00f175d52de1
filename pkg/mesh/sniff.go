package mesh

import (
	"bytes"
	"strings"
)

// Strategy identifies one decode strategy in the fallback chain.
type Strategy int

const (
	StrategyFmtMesh Strategy = iota
	StrategyCompressed
	StrategyHeuristic
	StrategyCompressedRetry
)

// String returns the strategy name as reported in conversion summaries.
func (s Strategy) String() string {
	switch s {
	case StrategyFmtMesh:
		return "fmt_mesh"
	case StrategyCompressed:
		return "compressed"
	case StrategyHeuristic:
		return "heuristic"
	case StrategyCompressedRetry:
		return "compressed (fallback)"
	default:
		return "unknown"
	}
}

// fmtMeshSignature is the leading byte sequence of the fmt_mesh variant.
var fmtMeshSignature = []byte{0x1F, 0x00, 0x00, 0x00}

// compressionKeywords are build-variant tokens embedded in compiled model
// names. Any of them marks a model whose positions are stored quantized.
var compressionKeywords = []string{
	"StripAnim",
	"CompOcc",
	"ZipPos",
	"ZipUvs",
	"StripNorm",
	"StripUv13",
	"CopyFrameDelay",
}

// zipPosKeyword selects the 8-bit quantized position branch inside the
// fmt_mesh and compressed strategies.
const zipPosKeyword = "ZipPos"

// Classification is the sniffer verdict for one asset: which strategies
// to attempt, in which order, and which decode branches they should take.
type Classification struct {
	Order             []Strategy
	ZipPos            bool
	CompressPositions bool
	CompressUVs       bool
}

// Sniff classifies an asset from its leading bytes, its external flag
// record and its name. Pure: no side effects on the asset.
//
// Priority: the fmt_mesh signature puts that strategy first; otherwise
// the flag table decides whether the compressed strategy is admissible
// before the heuristic one; absent both, filename keywords stand in for
// the flags. A forced compressed retry always closes the chain.
func Sniff(asset RawAsset) Classification {
	c := Classification{
		ZipPos: strings.Contains(asset.Name, zipPosKeyword),
	}

	switch {
	case asset.Flags != nil:
		c.CompressPositions = asset.Flags.CompressPositions
		c.CompressUVs = asset.Flags.CompressUVs
	default:
		for _, kw := range compressionKeywords {
			if strings.Contains(asset.Name, kw) {
				c.CompressPositions = true
				break
			}
		}
	}

	if len(asset.Data) >= len(fmtMeshSignature) && bytes.Equal(asset.Data[:len(fmtMeshSignature)], fmtMeshSignature) {
		c.Order = append(c.Order, StrategyFmtMesh)
	}
	if c.CompressPositions || c.CompressUVs {
		c.Order = append(c.Order, StrategyCompressed)
	}
	c.Order = append(c.Order, StrategyHeuristic, StrategyCompressedRetry)

	return c
}
