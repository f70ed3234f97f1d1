// notation.go parses the UCI long-algebraic move format of spec.md §6.2's
// closing paragraph ("source square + destination square ... optional
// trailing promotion letter"). Grounded on the teacher's UCIToMove, but
// instead of hand-reconstructing the move's kind tag from piece/capture/
// castling/en-passant rules, it matches the string against the position's
// own legal move list — the generator already knows every kind tag
// correctly, so re-deriving them here would just be a second, riskier copy
// of the same logic.
package engine

import "fmt"

// ParseUCIMove resolves a UCI move string (e.g. "e2e4", "e7e8q", "e1g1")
// against pos's legal moves. It returns an error if the string is
// malformed or names no legal move in pos.
func ParseUCIMove(pos *Position, s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, fmt.Errorf("malformed move %q", s)
	}
	src, err := SquareFromString(s[0:2])
	if err != nil {
		return NullMove, fmt.Errorf("malformed move %q: %v", s, err)
	}
	dst, err := SquareFromString(s[2:4])
	if err != nil {
		return NullMove, fmt.Errorf("malformed move %q: %v", s, err)
	}
	var promo Figure = NoFigure
	if len(s) == 5 {
		fig, ok := symbolToPromotionFigure[s[4]]
		if !ok {
			return NullMove, fmt.Errorf("malformed move %q: unknown promotion letter %q", s, s[4])
		}
		promo = fig
	}

	moves := GenerateMoves(pos, AllMoves, nil)
	for _, m := range moves {
		if m.Src() != src || m.Dst() != dst {
			continue
		}
		if m.IsPromotion() != (promo != NoFigure) {
			continue
		}
		if promo != NoFigure && m.PromotionFigure() != promo {
			continue
		}
		return m, nil
	}
	return NullMove, fmt.Errorf("illegal move: %q", s)
}

var symbolToPromotionFigure = map[byte]Figure{
	'n': Knight, 'N': Knight,
	'b': Bishop, 'B': Bishop,
	'r': Rook, 'R': Rook,
	'q': Queen, 'Q': Queen,
}
