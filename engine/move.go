// move.go implements the packed 16-bit move encoding of spec.md §3/§4.2:
// bits 0..5 source square, bits 6..11 destination square, bits 12..15 a
// kind tag. The kind tag alone decides every move predicate.
package engine

// MoveKind is the 4-bit tag packed into bits 12..15 of a Move.
type MoveKind uint16

const (
	Silent     MoveKind = 0
	DoublePush MoveKind = 1
	CastleKS   MoveKind = 2
	CastleQS   MoveKind = 3
	Capture    MoveKind = 4
	EnPassant  MoveKind = 5
	// 6 and 7 are unused.

	PromoKnight        MoveKind = 8
	PromoBishop        MoveKind = 9
	PromoRook          MoveKind = 10
	PromoQueen         MoveKind = 11
	PromoKnightCapture MoveKind = 12
	PromoBishopCapture MoveKind = 13
	PromoRookCapture   MoveKind = 14
	PromoQueenCapture  MoveKind = 15
)

// promotionFigures maps a promotion kind's low two bits to the figure
// being promoted to: 0=Knight, 1=Bishop, 2=Rook, 3=Queen.
var promotionFigures = [4]Figure{Knight, Bishop, Rook, Queen}

// Move is a packed source/destination/kind word. The zero value, NullMove,
// is the sentinel "no move"; no legal move ever equals it.
type Move uint16

const NullMove Move = 0

// NewMove packs src, dst and kind into a Move.
func NewMove(src, dst Square, kind MoveKind) Move {
	return Move(src) | Move(dst)<<6 | Move(kind)<<12
}

func (m Move) Src() Square  { return Square(m & 0x3f) }
func (m Move) Dst() Square  { return Square((m >> 6) & 0x3f) }
func (m Move) Kind() MoveKind { return MoveKind(m >> 12) }

// IsCapture reports whether the move removes an enemy piece, including en
// passant and capture-promotions.
func (m Move) IsCapture() bool { return m.Kind()&0b0100 != 0 }

// IsPromotion reports whether the destination piece differs from the
// moving piece's figure.
func (m Move) IsPromotion() bool { return m.Kind()&0b1000 != 0 }

// IsEnPassant reports whether this move is an en passant capture.
func (m Move) IsEnPassant() bool { return m.Kind() == EnPassant }

// IsDoublePush reports whether this move is a two-square pawn push.
func (m Move) IsDoublePush() bool { return m.Kind() == DoublePush }

// IsCastleKS reports whether this move is king-side castling.
func (m Move) IsCastleKS() bool { return m.Kind() == CastleKS }

// IsCastleQS reports whether this move is queen-side castling.
func (m Move) IsCastleQS() bool { return m.Kind() == CastleQS }

// IsCastle reports whether this move is castling of either side.
func (m Move) IsCastle() bool { return m.Kind() == CastleKS || m.Kind() == CastleQS }

// IsQuiet reports whether the move is neither a capture nor a promotion;
// such moves are candidates for the killer-move heuristic.
func (m Move) IsQuiet() bool { return !m.IsCapture() && !m.IsPromotion() }

// PromotionFigure returns the figure promoted to. Only meaningful when
// IsPromotion() is true.
func (m Move) PromotionFigure() Figure {
	return promotionFigures[m.Kind()&3]
}

// UCI converts the move to UCI long algebraic notation, e.g. "e2e4" or
// "a7a8q". Castling is the king's two-square move, e.g. "e1g1".
func (m Move) UCI() string {
	s := m.Src().String() + m.Dst().String()
	if m.IsPromotion() {
		sym := map[Figure]byte{Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q'}[m.PromotionFigure()]
		s += string(sym)
	}
	return s
}

func (m Move) String() string { return m.UCI() }
