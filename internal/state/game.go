package state

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cardforge/oracle-engine/internal/engine"
	"github.com/cardforge/oracle-engine/internal/stack"
)

// ErrUnknownZone reports a zone name outside the fixed zone set.
var ErrUnknownZone = errors.New("unknown zone")

// Phases is the fixed turn structure, in order.
var Phases = []string{
	"Untap",
	"Upkeep",
	"Draw",
	"Precombat Main",
	"Beginning of Combat",
	"Declare Attackers",
	"Declare Blockers",
	"Combat Damage",
	"End of Combat",
	"Postcombat Main",
	"End Step",
	"Cleanup",
}

// GameState is the single shared mutable game object. It is visited
// synchronously by every component; there is no internal locking and
// no atomicity across multi-step effect chains.
type GameState struct {
	Players    []*Player
	TurnIndex  int
	PhaseIndex int

	// Triggers, when set, receives queued enters-the-battlefield
	// triggers from MoveCard. There is no automatic event detection
	// beyond that: components queue their own triggers.
	Triggers *stack.TriggerEngine

	log *zap.Logger
}

func NewGameState(log *zap.Logger, players ...*Player) *GameState {
	return &GameState{Players: players, log: log}
}

// RegisterPlayer adds a player if not already managed.
func (g *GameState) RegisterPlayer(player *Player) {
	for _, existing := range g.Players {
		if existing == player {
			return
		}
	}
	g.Players = append(g.Players, player)
}

// CurrentPlayer returns the player whose turn it is.
func (g *GameState) CurrentPlayer() *Player {
	if len(g.Players) == 0 {
		return nil
	}
	return g.Players[g.TurnIndex]
}

// CurrentPhase returns the name of the current phase.
func (g *GameState) CurrentPhase() string {
	return Phases[g.PhaseIndex]
}

// AdvancePhase moves to the next phase and returns its name.
func (g *GameState) AdvancePhase() string {
	g.PhaseIndex = (g.PhaseIndex + 1) % len(Phases)
	return g.CurrentPhase()
}

// NextTurn passes the turn, resets phases and per-turn allowances.
func (g *GameState) NextTurn() *Player {
	g.TurnIndex = (g.TurnIndex + 1) % len(g.Players)
	g.PhaseIndex = 0
	for _, player := range g.Players {
		player.ResetLandPlay()
	}
	return g.CurrentPlayer()
}

// Zone returns the named zone slice for a player.
func (g *GameState) Zone(player *Player, zone string) ([]*Card, error) {
	slot, err := zoneSlot(player, zone)
	if err != nil {
		return nil, err
	}
	return *slot, nil
}

func zoneSlot(player *Player, zone string) (*[]*Card, error) {
	switch zone {
	case ZoneHand:
		return &player.Hand, nil
	case ZoneLibrary:
		return &player.Library, nil
	case ZoneBattlefield:
		return &player.Battlefield, nil
	case ZoneGraveyard:
		return &player.Graveyard, nil
	case ZoneExile:
		return &player.Exile, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownZone, zone)
}

// PlaceCard moves a card between zones. The card is removed from
// whichever zone currently holds it, regardless of owner, then
// appended to the target zone. Entering the battlefield queues an ETB
// trigger when the card's text has one and a trigger engine is wired.
func (g *GameState) PlaceCard(card *Card, player *Player, zone string) (string, error) {
	slot, err := zoneSlot(player, zone)
	if err != nil {
		return "", err
	}

	for _, owner := range g.Players {
		for _, zoneName := range []string{ZoneHand, ZoneLibrary, ZoneBattlefield, ZoneGraveyard, ZoneExile} {
			current, _ := zoneSlot(owner, zoneName)
			removeCard(current, card)
		}
	}

	card.Zone = zone
	card.Controller = player
	*slot = append(*slot, card)

	if zone == ZoneBattlefield {
		card.SummoningSick = true
		g.queueEnterTrigger(card, player)
	}

	line := fmt.Sprintf("%s moves to %s.", card.Name, zone)
	g.log.Debug("card moved",
		zap.String("card", card.Name),
		zap.String("zone", zone),
		zap.String("controller", player.Name))
	return line, nil
}

func (g *GameState) queueEnterTrigger(card *Card, controller *Player) {
	if g.Triggers == nil {
		return
	}
	if !containsFold(card.OracleText, "enters the battlefield") {
		return
	}
	g.Triggers.FireNow(card.Name+" enters the battlefield", nil, card, controller)
}

func removeCard(zone *[]*Card, card *Card) {
	for i, existing := range *zone {
		if existing == card {
			*zone = append((*zone)[:i], (*zone)[i+1:]...)
			return
		}
	}
}

// PlayerList implements the effect engine's game-state interface.
func (g *GameState) PlayerList() []engine.Player {
	players := make([]engine.Player, len(g.Players))
	for i, player := range g.Players {
		players[i] = player
	}
	return players
}

// MoveCard implements the effect engine's game-state interface.
func (g *GameState) MoveCard(card engine.Permanent, controller engine.Player, zone string) (string, error) {
	concrete, ok := card.(*Card)
	if !ok {
		return "", fmt.Errorf("cannot move non-card permanent %s", card.DisplayName())
	}
	player, ok := controller.(*Player)
	if !ok || player == nil {
		return "", fmt.Errorf("cannot move %s: unmanaged controller", card.DisplayName())
	}
	return g.PlaceCard(concrete, player, zone)
}

// CheckStateBasedActions sweeps the battlefield and players once:
// creatures with zero toughness or lethal marked damage go to the
// graveyard (indestructible exempts the lethal-damage rule, not the
// zero-toughness one), players at zero life lose. Returns a log line
// per action taken.
func (g *GameState) CheckStateBasedActions() []string {
	var results []string
	for _, player := range g.Players {
		for _, permanent := range append([]*Card(nil), player.Battlefield...) {
			if !permanent.IsCreature() {
				continue
			}
			switch {
			case permanent.Toughness <= 0:
				results = append(results, g.destroyBySBA(permanent, player, "zero toughness"))
			case permanent.Damage >= permanent.Toughness && !permanent.HasAbility("indestructible"):
				results = append(results, g.destroyBySBA(permanent, player, "lethal damage"))
			}
		}
		if player.Life <= 0 && !player.HasLost() {
			player.Lose("life total is 0 or less")
			results = append(results, fmt.Sprintf("%s loses the game due to 0 life.", player.Name))
		}
	}
	return results
}

func (g *GameState) destroyBySBA(creature *Card, controller *Player, reason string) string {
	if _, err := g.PlaceCard(creature, controller, ZoneGraveyard); err != nil {
		return err.Error()
	}
	creature.Damage = 0
	g.log.Info("state-based action",
		zap.String("card", creature.Name),
		zap.String("reason", reason))
	return fmt.Sprintf("%s is destroyed by SBA.", creature.Name)
}
