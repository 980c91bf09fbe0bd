package console

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pixil98/go-workshop/internal/display"
	"github.com/pixil98/go-workshop/internal/game"
)

const banner = "Workshop scene console. Type 'help' for commands."

// UserError is a problem the operator can fix; it is shown to them instead
// of ending the session.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}

func (s *session) exec(cmd string, args []string) (string, error) {
	switch strings.ToLower(cmd) {
	case "help":
		return helpText, nil
	case "status":
		return s.status()
	case "spots":
		return s.spots(), nil
	case "npcs":
		return s.npcs()
	case "items":
		return s.itemList(), nil
	case "hold":
		return s.hold(args)
	case "hand":
		return s.hand(), nil
	case "give":
		return s.give(args)
	case "stop":
		s.console.spawner.StopSpawning()
		return "Spawning stopped.", nil
	case "start":
		s.console.spawner.RestartSpawning()
		return "Spawning restarted.", nil
	case "reset":
		return s.reset(), nil
	case "quit", "exit":
		s.quit = true
		return "", nil
	default:
		return "", NewUserError(fmt.Sprintf("Unknown command %q. Type 'help' for commands.", cmd))
	}
}

const helpText = `Commands:
  status        session score and spawner state
  spots         waiting spot occupancy
  npcs          live visitors and their state
  items         known item types
  hold <item>   put an item in the player's hand
  hand          show the held item
  give <npc>    deliver the held item to a visitor
  stop          pause the spawn cadence
  start         restart the spawn cadence (frees all spots)
  reset         hard reset: remove all visitors, restart, zero the score
  quit          leave the console`

func (s *session) status() (string, error) {
	good, bad := s.console.score.Counts()
	view := statusView{
		Good:     good,
		Bad:      bad,
		GameOver: s.console.score.GameOver(),
		Won:      s.console.score.Result() == game.ResultWon,
		Spawning: s.console.spawner.Spawning(),
		Visitors: len(s.console.spawner.Visitors()),
	}
	out, err := ExpandTemplate(statusTemplate, view)
	if err != nil {
		return "", fmt.Errorf("rendering status: %w", err)
	}
	return display.Wrap(out), nil
}

func (s *session) spots() string {
	var b strings.Builder
	for _, spot := range s.console.spawner.SpotStates() {
		state := "free"
		if spot.Occupied {
			state = "occupied"
		}
		fmt.Fprintf(&b, "spot %d: %s\n", spot.ID, state)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *session) npcs() (string, error) {
	infos := s.console.spawner.Visitors()
	if len(infos) == 0 {
		return "No visitors right now.", nil
	}

	var b strings.Builder
	for _, info := range infos {
		row := visitorView{
			ID:     info.ID,
			Race:   display.Capitalize(string(info.Race)),
			State:  info.State.String(),
			SpotID: info.SpotID,
		}
		if info.HasPatience {
			row.Patience = info.Patience.Round(time.Second).String()
		}
		out, err := ExpandTemplate(visitorTemplate, row)
		if err != nil {
			return "", fmt.Errorf("rendering visitor %d: %w", info.ID, err)
		}
		b.WriteString(out + "\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *session) itemList() string {
	all := s.console.items.Catalog().GetAll()
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&b, "%s - %s\n", id, all[id].DisplayName)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *session) hold(args []string) (string, error) {
	if len(args) != 1 {
		return "", NewUserError("Hold what? Usage: hold <item>")
	}

	inst, err := s.console.items.GiveToPlayer(game.ItemType(args[0]))
	if err != nil {
		return "", NewUserError(fmt.Sprintf("No such item %q. Try 'items'.", args[0]))
	}
	return fmt.Sprintf("You are now holding %s.", inst.Type), nil
}

func (s *session) hand() string {
	t, held := s.console.items.QueryHeldItem()
	if !held {
		return "Your hands are empty."
	}
	return fmt.Sprintf("You are holding %s.", t)
}

func (s *session) give(args []string) (string, error) {
	if len(args) != 1 {
		return "", NewUserError("Give to whom? Usage: give <npc-id>")
	}

	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return "", NewUserError(fmt.Sprintf("%q is not a visitor id.", args[0]))
	}

	outcome, err := s.console.spawner.Deliver(id)
	switch {
	case err == nil:
		if outcome == game.OutcomeCorrect {
			return "They beam at you. Exactly what they wanted!", nil
		}
		return "They take it, visibly unimpressed.", nil
	case errors.Is(err, game.ErrNoSuchNPC):
		return "", NewUserError("No such visitor.")
	case errors.Is(err, game.ErrNotWaiting):
		return "", NewUserError("That visitor isn't taking deliveries.")
	case errors.Is(err, game.ErrNothingHeld):
		return "", NewUserError("You have nothing to give.")
	case errors.Is(err, game.ErrItemRemoval):
		return "", NewUserError("The item slips from your grasp. Try again.")
	default:
		return "", err
	}
}

func (s *session) reset() string {
	s.console.spawner.RemoveAllNPCs()
	s.console.spawner.RestartSpawning()
	s.console.score.Reset()
	return "Session reset."
}
