package console

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pixil98/go-workshop/internal/game"
	"github.com/pixil98/go-workshop/internal/messaging"
)

// Subscriber provides the ability to subscribe to message subjects
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (unsubscribe func(), err error)
}

// Console is the operator surface for the scene: it inspects spots and
// visitors, stocks the player's hand, and triggers deliveries. It doubles as
// the player-input boundary in deployments without a 3D front end.
type Console struct {
	spawner *game.NPCSpawner
	items   *game.HandEconomy
	score   *game.Scoreboard
	sub     Subscriber
}

func New(spawner *game.NPCSpawner, items *game.HandEconomy, score *game.Scoreboard, sub Subscriber) *Console {
	return &Console{
		spawner: spawner,
		items:   items,
		score:   score,
		sub:     sub,
	}
}

// RunSession drives one operator connection until it quits or drops. Scene
// banners and score changes are mirrored into the session between commands.
func (c *Console) RunSession(ctx context.Context, conn io.ReadWriter) error {
	session := &session{console: c, conn: conn}
	return session.run(ctx)
}

type session struct {
	console *Console
	conn    io.ReadWriter
	quit    bool
}

func (s *session) run(ctx context.Context) error {
	// Mirror scene banners into the session while it is active.
	msgs := make(chan string, 16)
	if sub := s.console.sub; sub != nil {
		for _, subject := range []string{messaging.SubjectMessage, messaging.SubjectScore} {
			unsub, err := sub.Subscribe(subject, func(data []byte) {
				select {
				case msgs <- renderEvent(subject, data):
				default:
					// A slow session drops banners rather than blocking the bus.
				}
			})
			if err != nil {
				return fmt.Errorf("subscribing to %s: %w", subject, err)
			}
			defer unsub()
		}
	}

	// Read input lines into a channel
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(s.conn)
		for scanner.Scan() {
			inputChan <- scanner.Text()
		}
		inputErrChan <- scanner.Err()
		close(inputChan)
	}()

	if err := s.writeLine(banner); err != nil {
		return err
	}
	if err := s.prompt(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-msgs:
			if err := s.writeLine("\n" + msg); err != nil {
				return err
			}
			if err := s.prompt(); err != nil {
				return err
			}

		case line, ok := <-inputChan:
			if !ok {
				// Connection lost.
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			line = strings.TrimSpace(line)
			if line == "" {
				if err := s.prompt(); err != nil {
					return err
				}
				continue
			}

			parts := strings.Fields(line)
			out, err := s.exec(parts[0], parts[1:])
			if err != nil {
				var userErr *UserError
				if errors.As(err, &userErr) {
					out = userErr.Message
				} else {
					return fmt.Errorf("command %q failed: %w", parts[0], err)
				}
			}
			if out != "" {
				if err := s.writeLine(out); err != nil {
					return err
				}
			}

			if s.quit {
				s.writeLine("Goodbye!")
				return nil
			}

			if err := s.prompt(); err != nil {
				return err
			}
		}
	}
}

func (s *session) prompt() error {
	good, bad := s.console.score.Counts()
	_, err := s.conn.Write([]byte(fmt.Sprintf("[%dg/%db] > ", good, bad)))
	return err
}

func (s *session) writeLine(msg string) error {
	_, err := s.conn.Write([]byte(msg + "\n"))
	return err
}

// renderEvent turns a bus event into a session banner line.
func renderEvent(subject string, data []byte) string {
	switch subject {
	case messaging.SubjectMessage:
		var ev messaging.MessageEvent
		if err := json.Unmarshal(data, &ev); err == nil {
			return "* " + ev.Text
		}
	case messaging.SubjectScore:
		var ev messaging.ScoreEvent
		if err := json.Unmarshal(data, &ev); err == nil {
			line := fmt.Sprintf("* score: %d good, %d bad", ev.Good, ev.Bad)
			if ev.GameOver {
				if ev.Won {
					line += " -- session won!"
				} else {
					line += " -- session lost"
				}
			}
			return line
		}
	}
	slog.Warn("unrenderable scene event", "subject", subject)
	return "* (scene event)"
}
