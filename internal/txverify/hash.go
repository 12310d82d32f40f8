package txverify

import "github.com/puzzlecoin/puzzlechain/pkg/codec"

func parseTxHash(s string) (codec.Hash, error) {
	return codec.HexToHash(s)
}
