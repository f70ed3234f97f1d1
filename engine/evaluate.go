// evaluate.go implements the composable static evaluator of spec.md §4.6:
// independent term functions, each returning a White-minus-Black
// centipawn contribution, summed by Evaluate. The search negates on entry
// to negamax to convert this White-relative score to a side-to-move-
// relative one (spec.md §9).
package engine

// Figure values in centipawns, exactly as spec.md §4.6 lists them. The
// King entry exists only for array symmetry; checkmate is signalled by
// the search, never by material score.
var figureValue = [FigureArraySize]int32{0, 100, 300, 315, 500, 900, 1200}

// maxPhase is the classic tapered-eval normalization constant: four
// knights/bishops (1 each) + four rooks (2 each) + two queens (4 each).
const maxPhase = 4*1 + 4*1 + 4*2 + 2*4

var phaseWeight = [FigureArraySize]int32{0, 0, 1, 1, 2, 4, 0}

// gamePhase returns a 0..maxPhase value, maxPhase at the start of the
// game and shrinking toward 0 as non-pawn material is traded off.
func gamePhase(pos *Position) int32 {
	var phase int32
	for fig := Knight; fig <= Queen; fig++ {
		phase += phaseWeight[fig] * int32(pos.Board.ByFigure(fig).Popcnt())
	}
	if phase > maxPhase {
		phase = maxPhase
	}
	return phase
}

// Evaluate returns the White-relative static evaluation of pos, the sum
// of every term in spec.md §4.6's baseline set.
func Evaluate(pos *Position) int32 {
	phase := gamePhase(pos)
	return evalMaterial(pos) +
		evalPieceSquares(pos, phase) +
		evalPassedPawns(pos, phase) +
		evalBishopPair(pos) +
		evalKingShield(pos, phase) +
		evalDoubledPawns(pos)
}

func evalMaterial(pos *Position) int32 {
	var score int32
	for fig := Pawn; fig <= Queen; fig++ {
		white := int32(pos.Board.ByPiece(White, fig).Popcnt())
		black := int32(pos.Board.ByPiece(Black, fig).Popcnt())
		score += figureValue[fig] * (white - black)
	}
	return score
}

// evalPieceSquares interpolates each occupied square's middlegame and
// endgame table entries by phase (spec.md §4.6).
func evalPieceSquares(pos *Position, phase int32) int32 {
	var score int32
	for fig := Pawn; fig <= King; fig++ {
		pos.Board.ByPiece(White, fig).Squares(func(sq Square) {
			score += lerpPhase(pstMG(fig, sq), pstEG(fig, sq), phase)
		})
		pos.Board.ByPiece(Black, fig).Squares(func(sq Square) {
			msq := mirrorSquare(sq)
			score -= lerpPhase(pstMG(fig, msq), pstEG(fig, msq), phase)
		})
	}
	return score
}

func lerpPhase(mg, eg int32, phase int32) int32 {
	return (mg*phase + eg*(maxPhase-phase)) / maxPhase
}

// passedPawnBonus is indexed by the pawn's distance (in ranks) from
// promotion: 0 = already on the last rank (never reached in practice), 6
// = still on its start rank.
var passedPawnBonus = [8]int32{0, 120, 80, 50, 30, 15, 5, 0}

// evalPassedPawns rewards a pawn with no opposing pawn on its own file or
// either adjacent file ahead of it, scaled up as the game phase drains
// (spec.md §4.6).
func evalPassedPawns(pos *Position, phase int32) int32 {
	var score int32
	whitePawns := pos.Board.ByPiece(White, Pawn)
	blackPawns := pos.Board.ByPiece(Black, Pawn)

	whitePawns.Squares(func(sq Square) {
		if isPassed(sq, White, blackPawns) {
			score += scaleByEndgame(passedPawnBonus[7-sq.Rank()], phase)
		}
	})
	blackPawns.Squares(func(sq Square) {
		if isPassed(sq, Black, whitePawns) {
			score -= scaleByEndgame(passedPawnBonus[sq.Rank()], phase)
		}
	})
	return score
}

func scaleByEndgame(bonus int32, phase int32) int32 {
	return bonus * (maxPhase*2 - phase) / (maxPhase * 2)
}

func isPassed(sq Square, us Color, enemyPawns Bitboard) bool {
	f := sq.File()
	var fileMask Bitboard
	for _, df := range []int{-1, 0, 1} {
		nf := f + df
		if nf < 0 || nf > 7 {
			continue
		}
		fileMask |= FileBb(nf)
	}

	var aheadMask Bitboard
	if us == White {
		for r := sq.Rank() + 1; r < 8; r++ {
			aheadMask |= RankBb(r)
		}
	} else {
		for r := sq.Rank() - 1; r >= 0; r-- {
			aheadMask |= RankBb(r)
		}
	}
	return enemyPawns&fileMask&aheadMask == 0
}

const bishopPairBonus = 30

func evalBishopPair(pos *Position) int32 {
	var score int32
	if pos.Board.ByPiece(White, Bishop).Popcnt() >= 2 {
		score += bishopPairBonus
	}
	if pos.Board.ByPiece(Black, Bishop).Popcnt() >= 2 {
		score -= bishopPairBonus
	}
	return score
}

const kingShieldPenalty = 12

// evalKingShield penalizes a castled king whose three shield pawns (the
// pawns one rank in front of the king, on its file and the two adjacent
// files) have gone missing. "Castled" is approximated by the king sitting
// on a kingside or queenside castled square (g/c-file) rather than e-file,
// since Position does not retain castling history (spec.md §9: transient,
// no back-pointers).
func evalKingShield(pos *Position, phase int32) int32 {
	var score int32
	if wk := pos.Board.ByPiece(White, King); wk != 0 {
		sq := Square(wk.TrailingZeros())
		score -= scaleByOpening(kingShieldGap(sq, White, pos.Board.ByPiece(White, Pawn)), phase)
	}
	if bk := pos.Board.ByPiece(Black, King); bk != 0 {
		sq := Square(bk.TrailingZeros())
		score += scaleByOpening(kingShieldGap(sq, Black, pos.Board.ByPiece(Black, Pawn)), phase)
	}
	return score
}

func scaleByOpening(penalty int32, phase int32) int32 {
	return penalty * phase / maxPhase
}

func kingShieldGap(sq Square, us Color, ownPawns Bitboard) int32 {
	f := sq.File()
	if f != 6 && f != 2 { // only g-file / c-file kings are considered castled
		return 0
	}
	shieldRank := sq.Rank() + 1
	if us == Black {
		shieldRank = sq.Rank() - 1
	}
	if shieldRank < 0 || shieldRank > 7 {
		return 0
	}
	var missing int32
	for df := -1; df <= 1; df++ {
		nf := f + df
		if nf < 0 || nf > 7 {
			continue
		}
		if ownPawns&RankFile(shieldRank, nf).Bitboard() == 0 {
			missing++
		}
	}
	return missing * kingShieldPenalty
}

const doubledPawnPenalty = 10

// evalDoubledPawns penalizes each pawn beyond the first on a file, found
// by counting the pawns on each file (spec.md §4.6).
func evalDoubledPawns(pos *Position) int32 {
	return doubledPawnScore(pos.Board.ByPiece(White, Pawn)) - doubledPawnScore(pos.Board.ByPiece(Black, Pawn))
}

func doubledPawnScore(pawns Bitboard) int32 {
	var score int32
	for f := 0; f < 8; f++ {
		count := (pawns & FileBb(f)).Popcnt()
		if count > 1 {
			score += int32(count-1) * doubledPawnPenalty
		}
	}
	return score
}
