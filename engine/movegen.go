// movegen.go implements strictly-legal move generation (spec.md §4.5):
// checkers, pin masks, check-evasion masks and an en passant reveal check,
// using the magic bitboards and jump tables from attack.go.
package engine

// capturesOnly restricts generation to captures (including en passant and
// capture-promotions); used by quiescence search (spec.md §4.10).
const (
	AllMoves      = false
	CapturesOnly  = true
)

// pawnAttackSources returns the squares from which a pawn of color by
// would attack sq — i.e. the inverse of a pawn's own attack pattern.
func pawnAttackSources(sq Square, by Color) Bitboard {
	bb := sq.Bitboard()
	if by == White {
		return bb.SW() | bb.SE()
	}
	return bb.NW() | bb.NE()
}

// pawnAttacksFrom returns the attack set of every pawn in pawns, in bulk.
func pawnAttacksFrom(by Color, pawns Bitboard) Bitboard {
	if by == White {
		return pawns.NE() | pawns.NW()
	}
	return pawns.SE() | pawns.SW()
}

// attackersTo returns the bitboard of by-colored pieces attacking sq given
// occupancy occ.
func attackersTo(b *Board, occ Bitboard, sq Square, by Color) Bitboard {
	var att Bitboard
	att |= KnightAttacks(sq) & b.ByPiece(by, Knight)
	att |= KingAttacks(sq) & b.ByPiece(by, King)
	att |= RookAttacks(sq, occ) & (b.ByPiece(by, Rook) | b.ByPiece(by, Queen))
	att |= BishopAttacks(sq, occ) & (b.ByPiece(by, Bishop) | b.ByPiece(by, Queen))
	att |= pawnAttackSources(sq, by) & b.ByPiece(by, Pawn)
	return att
}

// attackMap returns every square attacked by by, given occupancy occ. The
// caller controls occ so the friendly king can be removed from blockers
// when computing the map used to restrict the king's own moves (spec.md
// §4.5 step 1: sliders must "see through" the king they are checking).
func attackMap(b *Board, occ Bitboard, by Color) Bitboard {
	var m Bitboard
	m |= pawnAttacksFrom(by, b.ByPiece(by, Pawn))
	b.ByPiece(by, Knight).Squares(func(s Square) { m |= KnightAttacks(s) })
	b.ByPiece(by, King).Squares(func(s Square) { m |= KingAttacks(s) })
	diag := b.ByPiece(by, Bishop) | b.ByPiece(by, Queen)
	diag.Squares(func(s Square) { m |= BishopAttacks(s, occ) })
	orth := b.ByPiece(by, Rook) | b.ByPiece(by, Queen)
	orth.Squares(func(s Square) { m |= RookAttacks(s, occ) })
	return m
}

// between returns the squares strictly between a and b if they are
// aligned on a rook or bishop ray, or BbEmpty otherwise.
func between(a, b Square) Bitboard {
	aBB, bBB := a.Bitboard(), b.Bitboard()
	if a.Rank() == b.Rank() || a.File() == b.File() {
		return RookAttacks(a, bBB) & RookAttacks(b, aBB)
	}
	dr, df := a.Rank()-b.Rank(), a.File()-b.File()
	if dr == df || dr == -df {
		return BishopAttacks(a, bBB) & BishopAttacks(b, aBB)
	}
	return BbEmpty
}

// isSlider reports whether fig moves along rook/bishop/queen rays.
func isSlider(fig Figure) bool {
	return fig == Bishop || fig == Rook || fig == Queen
}

// pinMasks computes, for every square, the destination mask a piece
// standing there must obey to not expose its own king (spec.md §4.5 step
// 4). Non-pinned squares map to BbFull.
func pinMasks(pos *Position) [64]Bitboard {
	var masks [64]Bitboard
	for sq := SquareMinValue; sq <= SquareMaxValue; sq++ {
		masks[sq] = BbFull
	}

	us, them := pos.Us(), pos.Them()
	b := &pos.Board
	kingBB := b.ByPiece(us, King)
	if kingBB == 0 {
		return masks
	}
	kingSq := Square(kingBB.TrailingZeros())
	occ := b.Occupied()
	ourPieces := b.ByColor[us]

	// x-ray: sliders of theirs that would reach the king if our pieces
	// were transparent (only their own pieces can block this ray).
	opponentOnlyOcc := occ &^ ourPieces
	consider := func(sq Square, pinners Bitboard) {
		pinners.Squares(func(p Square) {
			ray := between(kingSq, p)
			blockers := ray & ourPieces
			if blockers.Popcnt() == 1 && blockers&occ&^ourPieces == 0 {
				pinnedSq := Square(blockers.TrailingZeros())
				masks[pinnedSq] = ray | p.Bitboard()
			}
		})
	}
	diagPinners := BishopAttacks(kingSq, opponentOnlyOcc) & (b.ByPiece(them, Bishop) | b.ByPiece(them, Queen))
	orthPinners := RookAttacks(kingSq, opponentOnlyOcc) & (b.ByPiece(them, Rook) | b.ByPiece(them, Queen))
	consider(kingSq, diagPinners)
	consider(kingSq, orthPinners)
	return masks
}

// checkInfo bundles the per-search-node information step 1-3 of spec.md
// §4.5 computes once: checkers, the king's legal destinations, and the
// capture/push masks every non-king move must land within.
type checkInfo struct {
	numCheckers  int
	checkerSq    Square
	kingAttacks  Bitboard // opponent attack map with our king removed from blockers
	legalMask    Bitboard // capture_mask | push_mask
}

func computeCheckInfo(pos *Position) checkInfo {
	us, them := pos.Us(), pos.Them()
	b := &pos.Board
	kingBB := b.ByPiece(us, King)
	var ci checkInfo
	if kingBB == 0 {
		ci.legalMask = BbFull
		return ci
	}
	kingSq := Square(kingBB.TrailingZeros())
	occ := b.Occupied()

	checkers := attackersTo(b, occ, kingSq, them)
	ci.numCheckers = checkers.Popcnt()
	ci.kingAttacks = attackMap(b, occ&^kingBB, them)

	switch ci.numCheckers {
	case 0:
		ci.legalMask = BbFull
	case 1:
		ci.checkerSq = Square(checkers.TrailingZeros())
		captureMask := checkers
		pushMask := Bitboard(0)
		checkerPiece := b.Get(ci.checkerSq)
		if isSlider(checkerPiece.Figure()) {
			pushMask = between(kingSq, ci.checkerSq)
		}
		ci.legalMask = captureMask | pushMask
	default:
		ci.legalMask = BbEmpty // only king moves are legal
	}
	return ci
}

// GenerateMoves appends every strictly legal move in pos to dst and
// returns the extended slice. When capturesOnly is true, only captures
// (including en passant and capture-promotions) are produced — the mode
// quiescence search (spec.md §4.10) uses.
func GenerateMoves(pos *Position, capturesOnly bool, dst []Move) []Move {
	us := pos.Us()
	b := &pos.Board
	ci := computeCheckInfo(pos)

	kingBB := b.ByPiece(us, King)
	if kingBB == 0 {
		return dst
	}
	kingSq := Square(kingBB.TrailingZeros())

	if ci.numCheckers >= 2 {
		return generateKingMoves(pos, kingSq, ci, capturesOnly, dst)
	}

	pins := pinMasks(pos)
	dst = generatePawnMoves(pos, ci, pins, capturesOnly, dst)
	dst = generateKnightMoves(pos, ci, pins, capturesOnly, dst)
	dst = generateSliderMoves(pos, Bishop, ci, pins, capturesOnly, dst)
	dst = generateSliderMoves(pos, Rook, ci, pins, capturesOnly, dst)
	dst = generateSliderMoves(pos, Queen, ci, pins, capturesOnly, dst)
	dst = generateKingMoves(pos, kingSq, ci, capturesOnly, dst)
	if ci.numCheckers == 0 && !capturesOnly {
		dst = generateCastling(pos, dst)
	}
	return dst
}

func addQuiet(dst []Move, src, d Square) []Move {
	return append(dst, NewMove(src, d, Silent))
}

func addCapture(dst []Move, src, d Square) []Move {
	return append(dst, NewMove(src, d, Capture))
}

func generateKnightMoves(pos *Position, ci checkInfo, pins [64]Bitboard, capturesOnly bool, dst []Move) []Move {
	us := pos.Us()
	b := &pos.Board
	targets := ^b.ByColor[us] & ci.legalMask
	b.ByPiece(us, Knight).Squares(func(src Square) {
		quiet, caps := splitByOccupancy(KnightAttacks(src)&pins[src]&targets, b.ByColor[pos.Them()])
		if !capturesOnly {
			addEach(&dst, src, quiet, addQuiet)
		}
		addEach(&dst, src, caps, addCapture)
	})
	return dst
}

func generateSliderMoves(pos *Position, fig Figure, ci checkInfo, pins [64]Bitboard, capturesOnly bool, dst []Move) []Move {
	us := pos.Us()
	b := &pos.Board
	occ := b.Occupied()
	targets := ^b.ByColor[us] & ci.legalMask
	b.ByPiece(us, fig).Squares(func(src Square) {
		var atk Bitboard
		switch fig {
		case Bishop:
			atk = BishopAttacks(src, occ)
		case Rook:
			atk = RookAttacks(src, occ)
		case Queen:
			atk = QueenAttacks(src, occ)
		}
		quiet, caps := splitByOccupancy(atk&pins[src]&targets, b.ByColor[pos.Them()])
		if !capturesOnly {
			addEach(&dst, src, quiet, addQuiet)
		}
		addEach(&dst, src, caps, addCapture)
	})
	return dst
}

func splitByOccupancy(moves, enemyOcc Bitboard) (quiet, captures Bitboard) {
	return moves &^ enemyOcc, moves & enemyOcc
}

func addEach(dst *[]Move, src Square, bb Bitboard, add func([]Move, Square, Square) []Move) {
	bb.Squares(func(d Square) { *dst = add(*dst, src, d) })
}

func generateKingMoves(pos *Position, kingSq Square, ci checkInfo, capturesOnly bool, dst []Move) []Move {
	us := pos.Us()
	b := &pos.Board
	targets := KingAttacks(kingSq) &^ b.ByColor[us] &^ ci.kingAttacks
	quiet, caps := splitByOccupancy(targets, b.ByColor[pos.Them()])
	if !capturesOnly {
		addEach(&dst, kingSq, quiet, addQuiet)
	}
	addEach(&dst, kingSq, caps, addCapture)
	return dst
}

// castleSpec describes one of the four castling rights.
type castleSpec struct {
	right                Castle
	kingFrom, kingTo     Square
	rookFrom             Square
	betweenKingAndRook   Bitboard // squares that must be empty
	kingPath             Bitboard // squares (incl. start) that must not be attacked
	kind                 MoveKind
}

var castleSpecs = [4]castleSpec{
	{WhiteOO, RankFile(0, 4), RankFile(0, 6), RankFile(0, 7), RankFile(0, 5).Bitboard() | RankFile(0, 6).Bitboard(), RankFile(0, 4).Bitboard() | RankFile(0, 5).Bitboard() | RankFile(0, 6).Bitboard(), CastleKS},
	{WhiteOOO, RankFile(0, 4), RankFile(0, 2), RankFile(0, 0), RankFile(0, 1).Bitboard() | RankFile(0, 2).Bitboard() | RankFile(0, 3).Bitboard(), RankFile(0, 4).Bitboard() | RankFile(0, 3).Bitboard() | RankFile(0, 2).Bitboard(), CastleQS},
	{BlackOO, RankFile(7, 4), RankFile(7, 6), RankFile(7, 7), RankFile(7, 5).Bitboard() | RankFile(7, 6).Bitboard(), RankFile(7, 4).Bitboard() | RankFile(7, 5).Bitboard() | RankFile(7, 6).Bitboard(), CastleKS},
	{BlackOOO, RankFile(7, 4), RankFile(7, 2), RankFile(7, 0), RankFile(7, 1).Bitboard() | RankFile(7, 2).Bitboard() | RankFile(7, 3).Bitboard(), RankFile(7, 4).Bitboard() | RankFile(7, 3).Bitboard() | RankFile(7, 2).Bitboard(), CastleQS},
}

func generateCastling(pos *Position, dst []Move) []Move {
	us := pos.Us()
	b := &pos.Board
	occ := b.Occupied()
	them := pos.Them()
	whiteKingHome := RankFile(0, 4)
	blackKingHome := RankFile(7, 4)

	for _, cs := range castleSpecs {
		if cs.kingFrom == whiteKingHome && us != White {
			continue
		}
		if cs.kingFrom == blackKingHome && us != Black {
			continue
		}
		if pos.Castling&cs.right == 0 {
			continue
		}
		if occ&cs.betweenKingAndRook != 0 {
			continue
		}
		attacked := false
		cs.kingPath.Squares(func(sq Square) {
			if attackersTo(b, occ, sq, them) != 0 {
				attacked = true
			}
		})
		if attacked {
			continue
		}
		dst = append(dst, NewMove(cs.kingFrom, cs.kingTo, cs.kind))
	}
	return dst
}

// pawnPromoKinds enumerates the (quiet, capture) kind pairs for each
// promotion figure, in the order spec.md §3 packs them.
var pawnPromoKinds = [4][2]MoveKind{
	{PromoKnight, PromoKnightCapture},
	{PromoBishop, PromoBishopCapture},
	{PromoRook, PromoRookCapture},
	{PromoQueen, PromoQueenCapture},
}

func generatePawnMoves(pos *Position, ci checkInfo, pins [64]Bitboard, capturesOnly bool, dst []Move) []Move {
	us, them := pos.Us(), pos.Them()
	b := &pos.Board
	occ := b.Occupied()
	pawns := b.ByPiece(us, Pawn)
	promoRank := 7
	startRank := 1
	fwd := func(bb Bitboard) Bitboard {
		if us == White {
			return bb.North()
		}
		return bb.South()
	}
	if us == Black {
		promoRank = 0
		startRank = 6
	}

	pawns.Squares(func(src Square) {
		pin := pins[src]

		if !capturesOnly {
			one := fwd(src.Bitboard()) &^ occ
			if one != 0 && one&pin != 0 && one&ci.legalMask != 0 {
				d := Square(one.TrailingZeros())
				dst = emitPawnMove(dst, src, d, false, d.Rank() == promoRank)
			}
			if one != 0 && src.Rank() == startRank {
				two := fwd(one) &^ occ
				if two != 0 && two&pin != 0 && two&ci.legalMask != 0 {
					d := Square(two.TrailingZeros())
					dst = append(dst, NewMove(src, d, DoublePush))
				}
			}
		}

		caps := pawnAttacksFrom(us, src.Bitboard()) & b.ByColor[them] & pin & ci.legalMask
		caps.Squares(func(d Square) {
			dst = emitPawnMove(dst, src, d, true, d.Rank() == promoRank)
		})

		if pos.EnPassant != SquareNone {
			epTargets := pawnAttacksFrom(us, src.Bitboard()) & pos.EnPassant.Bitboard()
			if epTargets != 0 {
				m := NewMove(src, pos.EnPassant, EnPassant)
				if enPassantIsLegal(pos, src, pos.EnPassant) {
					dst = append(dst, m)
				}
			}
		}
	})
	return dst
}

func emitPawnMove(dst []Move, src, d Square, capture, promo bool) []Move {
	if !promo {
		if capture {
			return append(dst, NewMove(src, d, Capture))
		}
		return append(dst, NewMove(src, d, Silent))
	}
	for _, kinds := range pawnPromoKinds {
		kind := kinds[0]
		if capture {
			kind = kinds[1]
		}
		dst = append(dst, NewMove(src, d, kind))
	}
	return dst
}

// enPassantIsLegal simulates the en passant capture (removing both the
// capturing and captured pawns, placing the capturer at dst) and verifies
// the king is not left in check — this single check subsumes ordinary
// pins, discovered checks and the horizontal "reveal" pin spec.md §4.5
// calls out explicitly (capturing en passant un-blocks a rank attack on
// the king from a rook/queen once both pawns vanish).
func enPassantIsLegal(pos *Position, src, epTarget Square) bool {
	us := pos.Us()
	capturedSq := RankFile(src.Rank(), epTarget.File())
	b := pos.Board // value copy

	pawn := b.Get(src)
	captured := b.Get(capturedSq)
	b.remove(src, pawn)
	b.remove(capturedSq, captured)
	b.put(epTarget, pawn)

	kingBB := b.ByPiece(us, King)
	if kingBB == 0 {
		return true
	}
	kingSq := Square(kingBB.TrailingZeros())
	return attackersTo(&b, b.Occupied(), kingSq, us.Opposite()) == 0
}
