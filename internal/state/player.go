// Package state holds the mutable game entities: players, cards, the
// shared game state with its zones and state-based-action sweep, and
// targeting legality. It implements the collaborator interfaces the
// effect engine resolves against.
package state

import "fmt"

const startingLife = 20

// Player is one participant. Zone slices are owned by the player and
// shared with GameState, so mutations through either stay in sync.
type Player struct {
	Name        string
	Life        int
	Hand        []*Card
	Library     []*Card
	Graveyard   []*Card
	Exile       []*Card
	Battlefield []*Card

	LandsPlayedThisTurn int

	lost       bool
	lossReason string
}

func NewPlayer(name string) *Player {
	return &Player{Name: name, Life: startingLife}
}

func (p *Player) DisplayName() string { return p.Name }

// DrawCards moves up to n cards from library to hand and returns how
// many were actually drawn. Drawing from an empty library loses the
// game.
func (p *Player) DrawCards(n int) int {
	drawn := 0
	for i := 0; i < n; i++ {
		if len(p.Library) == 0 {
			p.Lose("tried to draw from empty library")
			return drawn
		}
		card := p.Library[0]
		p.Library = p.Library[1:]
		card.Zone = ZoneHand
		p.Hand = append(p.Hand, card)
		drawn++
	}
	return drawn
}

func (p *Player) GainLife(n int) { p.Life += n }
func (p *Player) LoseLife(n int) { p.Life -= n }

// UntapAll untaps every permanent the player controls.
func (p *Player) UntapAll() {
	for _, permanent := range p.Battlefield {
		permanent.Tapped = false
	}
}

// DiscardToLimit discards down to the hand limit and returns the
// discarded cards.
func (p *Player) DiscardToLimit(limit int) []*Card {
	excess := len(p.Hand) - limit
	if excess <= 0 {
		return nil
	}
	discarded := p.Hand[len(p.Hand)-excess:]
	p.Hand = p.Hand[:len(p.Hand)-excess]
	for _, card := range discarded {
		card.Zone = ZoneGraveyard
	}
	p.Graveyard = append(p.Graveyard, discarded...)
	return discarded
}

// Lose marks the player as having lost the game.
func (p *Player) Lose(reason string) {
	p.lost = true
	p.lossReason = reason
}

func (p *Player) HasLost() bool { return p.lost }

func (p *Player) LossReason() string { return p.lossReason }

// CanPlayLand reports whether the per-turn land allowance remains.
func (p *Player) CanPlayLand() bool { return p.LandsPlayedThisTurn < 1 }

// ResetLandPlay resets the per-turn land allowance.
func (p *Player) ResetLandPlay() { p.LandsPlayedThisTurn = 0 }

func (p *Player) String() string {
	return fmt.Sprintf("%s (%d life)", p.Name, p.Life)
}
