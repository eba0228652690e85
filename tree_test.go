package chess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVariationBranching(t *testing.T) {
	g := NewGame()
	for _, m := range []string{"e4", "e5", "Nf3"} {
		require.NoError(t, g.PushMove(m, nil))
	}
	mainFEN := g.FEN()
	require.True(t, g.GoBack())

	require.NoError(t, g.PushMove("Nc3", &PushMoveOptions{NewVariation: true}))
	child := g.CurrentBoard()
	require.NotEqual(t, g.RootBoard().ID(), child.ID())
	require.False(t, child.IsContinuation())
	require.Equal(t, g.RootBoard().ID(), child.ParentBoard())
	require.Equal(t, 2, child.BranchTurnIndex())

	// the variation's first move replaces the main line's third ply
	require.Equal(t, 2, child.Ply())

	require.NoError(t, g.ReturnFromVariation())
	require.Equal(t, g.RootBoard().ID(), g.CurrentBoard().ID())
	require.Equal(t, 1, g.CurrentBoard().Cursor())

	vars := g.Variations()
	require.Len(t, vars, 1)
	require.Equal(t, child.ID(), vars[0].ID())
	require.Empty(t, g.Continuations())

	require.True(t, g.GoForward())
	require.Equal(t, mainFEN, g.FEN())
}

func TestContinuationBranching(t *testing.T) {
	g := NewGame()
	for _, m := range []string{"e4", "e5", "Nf3"} {
		require.NoError(t, g.PushMove(m, nil))
	}
	require.True(t, g.GoBack())

	child, err := g.AddContinuation()
	require.NoError(t, err)
	require.True(t, child.IsContinuation())
	require.Equal(t, 1, child.BranchTurnIndex())
	require.Equal(t, child.ID(), g.CurrentBoard().ID())

	require.NoError(t, g.PushMove("Nc3", nil))
	// the continuation's first move shares the main line's third ply
	require.Equal(t, 2, g.CurrentBoard().Ply())

	require.NoError(t, g.ReturnFromContinuation())
	require.Equal(t, 1, g.CurrentBoard().Cursor())

	conts := g.Continuations()
	require.Len(t, conts, 1)
	require.Equal(t, child.ID(), conts[0].ID())
	require.Empty(t, g.Variations())
}

func TestSpliceOnDivergence(t *testing.T) {
	g := NewGame()
	for _, m := range []string{"e4", "e5", "Nf3", "Nc6"} {
		require.NoError(t, g.PushMove(m, nil))
	}
	oldTailFEN := g.FEN()
	require.True(t, g.GoBack())
	require.True(t, g.GoBack())

	// diverging mid-line pushes the old future into a variation
	require.NoError(t, g.PushMove("d4", nil))
	require.Equal(t, g.RootBoard().ID(), g.CurrentBoard().ID())
	require.Equal(t, []string{"e2e4", "e7e5", "d2d4"}, getMainline(g))

	require.True(t, g.GoBack())
	vars := g.Variations()
	require.Len(t, vars, 1)
	spliced := vars[0]
	require.Equal(t, 2, spliced.BranchTurnIndex())
	require.Len(t, spliced.History(), 2)

	// the spliced line still replays to its original end state
	require.NoError(t, g.SelectTurn(spliced.ID(), 1))
	require.Equal(t, oldTailFEN, g.FEN())
}

func TestNewVariationMatchingNextTurn(t *testing.T) {
	g := NewGame()
	require.NoError(t, g.PushMove("e4", nil))
	require.True(t, g.GoBack())

	// an explicit variation request wins over replaying the next turn
	require.NoError(t, g.PushMove("e4", &PushMoveOptions{NewVariation: true}))
	child := g.CurrentBoard()
	require.NotEqual(t, g.RootBoard().ID(), child.ID())
	require.Equal(t, 0, child.BranchTurnIndex())
	require.NoError(t, g.PushMove("c5", nil))
	require.Len(t, child.History(), 2)

	require.NoError(t, g.ReturnFromVariation())
	require.Equal(t, []string{"e2e4"}, getMainline(g))
	vars := g.Variations()
	require.Len(t, vars, 1)
	require.Equal(t, child.ID(), vars[0].ID())
}

func TestEnterVariation(t *testing.T) {
	g := NewGame()
	for _, m := range []string{"e4", "e5", "Nf3"} {
		require.NoError(t, g.PushMove(m, nil))
	}
	g.GoBack()
	branchFEN := g.FEN()
	require.NoError(t, g.PushMove("Nc3", &PushMoveOptions{NewVariation: true}))
	require.NoError(t, g.ReturnFromVariation())

	require.NoError(t, g.EnterVariation(0))
	require.Equal(t, -1, g.CurrentBoard().Cursor())
	require.Equal(t, branchFEN, g.FEN())
	require.True(t, g.GoForward())
	require.Equal(t, "Nc3", g.CurrentBoard().History()[0].Move().SAN())

	require.ErrorIs(t, g.EnterVariation(5), ErrNoSuchVariation)
}

func TestEnterContinuation(t *testing.T) {
	g := NewGame()
	require.NoError(t, g.PushMove("e4", nil))
	branchFEN := g.FEN()
	_, err := g.AddContinuation()
	require.NoError(t, err)
	require.NoError(t, g.PushMove("c5", nil))
	require.NoError(t, g.ReturnFromContinuation())

	require.NoError(t, g.EnterContinuation(0))
	require.Equal(t, branchFEN, g.FEN())
	require.True(t, g.GoForward())
	require.Equal(t, "c5", g.CurrentBoard().History()[0].Move().SAN())

	require.ErrorIs(t, g.EnterContinuation(3), ErrNoSuchVariation)
}

func TestReturnFromVariationOnMainline(t *testing.T) {
	g := NewGame()
	require.NoError(t, g.PushMove("e4", nil))
	require.ErrorIs(t, g.ReturnFromVariation(), ErrNoSuchVariation)
	require.ErrorIs(t, g.ReturnFromContinuation(), ErrNoSuchVariation)
}

func TestSelectTurnAcrossBranches(t *testing.T) {
	g := NewGame()
	for _, m := range []string{"e4", "e5", "Nf3", "Nc6"} {
		require.NoError(t, g.PushMove(m, nil))
	}
	g.GoBack()
	g.GoBack()
	require.NoError(t, g.PushMove("Nc3", &PushMoveOptions{NewVariation: true}))
	require.NoError(t, g.PushMove("Nf6", nil))
	varBoard := g.CurrentBoard().ID()
	varFEN := g.FEN()

	// jump to the main line end and back into the variation
	root := g.RootBoard().ID()
	require.NoError(t, g.SelectTurn(root, 3))
	require.Equal(t, root, g.CurrentBoard().ID())
	require.Equal(t, 3, g.CurrentBoard().Cursor())

	require.NoError(t, g.SelectTurn(varBoard, 1))
	require.Equal(t, varFEN, g.FEN())

	// before-first-turn selection
	require.NoError(t, g.SelectTurn(root, -1))
	require.Equal(t, StartingFEN, g.FEN())

	require.ErrorIs(t, g.SelectTurn(99, 0), ErrNoSuchBoard)
	require.ErrorIs(t, g.SelectTurn(root, 17), ErrTurnIndexOutOfRange)
	require.ErrorIs(t, g.SelectTurn(root, -2), ErrTurnIndexOutOfRange)
}

func TestSelectTurnIntoNestedVariation(t *testing.T) {
	g := NewGame()
	for _, m := range []string{"e4", "e5", "Nf3"} {
		require.NoError(t, g.PushMove(m, nil))
	}
	g.GoBack()
	require.NoError(t, g.PushMove("Nc3", &PushMoveOptions{NewVariation: true}))
	require.NoError(t, g.PushMove("Nf6", nil))
	g.GoBack()
	require.NoError(t, g.PushMove("d5", &PushMoveOptions{NewVariation: true}))
	nested := g.CurrentBoard()
	require.Equal(t, 1, nested.BranchTurnIndex())
	nestedFEN := g.FEN()

	root := g.RootBoard().ID()
	require.NoError(t, g.SelectTurn(root, 2))
	require.NoError(t, g.SelectTurn(nested.ID(), 0))
	require.Equal(t, nestedFEN, g.FEN())
}

func TestPromoteVariation(t *testing.T) {
	g := NewGame()
	for _, m := range []string{"e4", "e5", "Nf3", "Nc6"} {
		require.NoError(t, g.PushMove(m, nil))
	}
	g.GoBack()
	g.GoBack()
	require.NoError(t, g.PushMove("Nc3", &PushMoveOptions{NewVariation: true}))
	require.NoError(t, g.PushMove("Nf6", nil))
	child := g.CurrentBoard().ID()

	require.NoError(t, g.PromoteVariation(child))
	require.Equal(t, []string{"e2e4", "e7e5", "b1c3", "g8f6"}, getMainline(g))

	// the former main-line tail is now the variation
	root := g.RootBoard().ID()
	require.NoError(t, g.SelectTurn(root, 1))
	vars := g.Variations()
	require.Len(t, vars, 1)
	demoted := vars[0]
	require.Equal(t, child, demoted.ID())
	require.Len(t, demoted.History(), 2)
	require.Equal(t, "Nf3", demoted.History()[0].Move().SAN())
	require.Equal(t, root, demoted.ParentBoard())
	require.Equal(t, 2, demoted.BranchTurnIndex())

	// the demoted line still replays
	require.NoError(t, g.SelectTurn(demoted.ID(), 1))
	require.Equal(t, "Nc6", g.CurrentBoard().History()[1].Move().SAN())
}

func TestPromoteVariationErrors(t *testing.T) {
	g := NewGame()
	require.NoError(t, g.PushMove("e4", nil))
	require.ErrorIs(t, g.PromoteVariation(42), ErrNoSuchBoard)
	require.ErrorIs(t, g.PromoteVariation(g.RootBoard().ID()), ErrNoSuchVariation)

	cont, err := g.AddContinuation()
	require.NoError(t, err)
	require.ErrorIs(t, g.PromoteVariation(cont.ID()), ErrNoSuchVariation)
}

func TestRepetitionCountAcrossNavigation(t *testing.T) {
	g := NewGame()
	moves := []string{"Nf3", "Nf6", "Ng1", "Ng8", "Nf3", "Nf6", "Ng1", "Ng8"}
	for _, m := range moves {
		require.NoError(t, g.PushMove(m, nil))
	}
	require.Equal(t, 3, g.CurrentBoard().Repetitions())

	// walking back unwinds the counter
	for range moves {
		require.True(t, g.GoBack())
	}
	require.Equal(t, 1, g.CurrentBoard().Repetitions())

	// and forward replays restore it
	for range moves {
		require.True(t, g.GoForward())
	}
	require.Equal(t, 3, g.CurrentBoard().Repetitions())
}

func TestRepetitionCounterResetOnPawnMove(t *testing.T) {
	g := NewGame()
	for _, m := range []string{"Nf3", "Nf6", "Ng1", "Ng8", "e4"} {
		require.NoError(t, g.PushMove(m, nil))
	}
	// the pawn move makes every earlier position unreachable
	require.Equal(t, 1, g.CurrentBoard().Repetitions())

	g.GoBack()
	require.Equal(t, 2, g.CurrentBoard().Repetitions())
}

func TestVariationInheritsRepetitionHistory(t *testing.T) {
	g := NewGame()
	for _, m := range []string{"Nf3", "Nf6", "Ng1", "Ng8", "Nf3"} {
		require.NoError(t, g.PushMove(m, nil))
	}
	g.GoBack()
	require.NoError(t, g.PushMove("Nc3", &PushMoveOptions{NewVariation: true}))
	for _, m := range []string{"Nc6", "Nb1", "Nb8"} {
		require.NoError(t, g.PushMove(m, nil))
	}
	// the variation reaches the start position through its own cycle,
	// stacked on the two occurrences inherited from the parent line
	require.Equal(t, 3, g.CurrentBoard().Repetitions())
}

func TestTurnPlies(t *testing.T) {
	g := NewGame()
	for _, m := range []string{"e4", "e5", "Nf3"} {
		require.NoError(t, g.PushMove(m, nil))
	}
	require.Equal(t, 2, g.CurrentBoard().Ply())
	g.GoBack()
	require.Equal(t, 1, g.CurrentBoard().Ply())

	fen, err := FEN("r3k2r/pppq1ppp/2n1pn2/3p4/3P4/2N1PN2/PPPQ1PPP/R3K2R b KQkq - 4 8")
	require.NoError(t, err)
	g = NewGame(fen)
	require.NoError(t, g.PushMove("O-O", nil))
	// move 8 for black is ply 15
	require.Equal(t, 15, g.CurrentBoard().Ply())
}
