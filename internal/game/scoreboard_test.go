package game

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestScoreboard_WinThreshold(t *testing.T) {
	p := &recordingPresenter{}
	s := NewScoreboard(3, 5, p)

	s.IncrementGood()
	s.IncrementGood()
	testutil.AssertEqual(t, "not over yet", s.GameOver(), false)

	s.IncrementGood()
	testutil.AssertEqual(t, "game over", s.GameOver(), true)
	testutil.AssertEqual(t, "result", s.Result(), ResultWon)

	good, bad := s.Counts()
	testutil.AssertEqual(t, "good", good, 3)
	testutil.AssertEqual(t, "bad", bad, 0)
	testutil.AssertEqual(t, "published won", p.lastWon, true)
}

func TestScoreboard_LoseThreshold(t *testing.T) {
	s := NewScoreboard(5, 2, nil)

	s.IncrementBad()
	s.IncrementBad()

	testutil.AssertEqual(t, "game over", s.GameOver(), true)
	testutil.AssertEqual(t, "result", s.Result(), ResultLost)
}

func TestScoreboard_FrozenAfterGameOver(t *testing.T) {
	s := NewScoreboard(1, 1, nil)

	s.IncrementGood()
	testutil.AssertEqual(t, "won", s.Result(), ResultWon)

	// Further increments of either kind change nothing
	s.IncrementBad()
	s.IncrementGood()

	good, bad := s.Counts()
	testutil.AssertEqual(t, "good frozen", good, 1)
	testutil.AssertEqual(t, "bad frozen", bad, 0)
	testutil.AssertEqual(t, "result frozen", s.Result(), ResultWon)
}

func TestScoreboard_Reset(t *testing.T) {
	p := &recordingPresenter{}
	s := NewScoreboard(2, 2, p)

	s.IncrementGood()
	s.IncrementGood()
	testutil.AssertEqual(t, "over before reset", s.GameOver(), true)

	s.Reset()

	good, bad := s.Counts()
	testutil.AssertEqual(t, "good reset", good, 0)
	testutil.AssertEqual(t, "bad reset", bad, 0)
	testutil.AssertEqual(t, "open again", s.GameOver(), false)
	testutil.AssertEqual(t, "result open", s.Result(), ResultOpen)

	// Counting works again after the reset
	s.IncrementBad()
	_, bad = s.Counts()
	testutil.AssertEqual(t, "bad counts again", bad, 1)
}

func TestScoreboard_PublishesEveryChange(t *testing.T) {
	p := &recordingPresenter{}
	s := NewScoreboard(10, 10, p)

	s.IncrementGood()
	s.IncrementBad()
	s.IncrementBad()

	testutil.AssertEqual(t, "publish count", p.scoreCalls, 3)
	testutil.AssertEqual(t, "last good", p.lastGood, 1)
	testutil.AssertEqual(t, "last bad", p.lastBad, 2)
	testutil.AssertEqual(t, "not over", p.lastOver, false)
}
