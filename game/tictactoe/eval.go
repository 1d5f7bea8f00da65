package tictactoe

import "gamesearch/game"

// EvaluateLines counts the lines still open for the player to move minus those
// still open for the opponent. The result stays inside (-1, 1) so it never
// looks like a decided game.
func EvaluateLines(s game.State) float64 {
	ts, ok := s.(*State)
	if !ok {
		panic("unexpected state type")
	}
	if ts.IsGameOver() {
		return ts.GameScore(ts)
	}

	me, opponent := marks[ts.player], marks[1-ts.player]
	open := 0
	for _, line := range lines {
		mine, theirs := false, false
		for _, cell := range line {
			switch ts.board[cell] {
			case me:
				mine = true
			case opponent:
				theirs = true
			}
		}
		if mine && !theirs {
			open++
		} else if theirs && !mine {
			open--
		}
	}
	return float64(open) / 10
}

// EvaluateLinesTuple is the tuple form of EvaluateLines.
func EvaluateLinesTuple(s game.State) game.ScoreTuple {
	return game.ZeroSum(s.Player(), EvaluateLines(s))
}
