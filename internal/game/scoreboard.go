package game

import (
	"log/slog"
	"sync"
)

// SessionResult is how a finished session ended.
type SessionResult int

const (
	ResultOpen SessionResult = iota
	ResultWon
	ResultLost
)

// Scoreboard owns the delivery counters and the session's win/lose
// transition. It is an explicit object with a reset operation rather than
// ambient globals so replays start from a known state.
type Scoreboard struct {
	mu sync.Mutex

	winAt  int
	loseAt int

	good     int
	bad      int
	gameOver bool
	result   SessionResult

	presenter Presenter
}

func NewScoreboard(winAt, loseAt int, p Presenter) *Scoreboard {
	return &Scoreboard{
		winAt:     winAt,
		loseAt:    loseAt,
		presenter: p,
	}
}

// IncrementGood records a correct delivery. Once the session is over further
// increments are ignored.
func (s *Scoreboard) IncrementGood() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gameOver {
		return
	}
	s.good++
	if s.good >= s.winAt {
		s.gameOver = true
		s.result = ResultWon
		slog.Info("session won", "good", s.good, "bad", s.bad)
	}
	s.publish()
}

// IncrementBad records a wrong delivery or a timeout.
func (s *Scoreboard) IncrementBad() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gameOver {
		return
	}
	s.bad++
	if s.bad >= s.loseAt {
		s.gameOver = true
		s.result = ResultLost
		slog.Info("session lost", "good", s.good, "bad", s.bad)
	}
	s.publish()
}

func (s *Scoreboard) publish() {
	if s.presenter != nil {
		s.presenter.ScoreChanged(s.good, s.bad, s.gameOver, s.result == ResultWon)
	}
}

// Counts returns the current good and bad delivery counts.
func (s *Scoreboard) Counts() (good, bad int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.good, s.bad
}

// GameOver reports whether the session has ended.
func (s *Scoreboard) GameOver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameOver
}

// Result returns how the session ended, or ResultOpen.
func (s *Scoreboard) Result() SessionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Reset zeroes the counters and reopens the session.
func (s *Scoreboard) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.good = 0
	s.bad = 0
	s.gameOver = false
	s.result = ResultOpen
	s.publish()
}
