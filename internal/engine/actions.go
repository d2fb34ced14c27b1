package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cardforge/oracle-engine/internal/ir"
)

// Damage dispatch is by capability, not concrete type: a target that
// tracks a life total loses life, one that marks damage gets damage
// marked, one that tracks loyalty loses loyalty. Checked in that order.
type lifeHolder interface {
	LoseLife(n int)
	DisplayName() string
}

type damageable interface {
	MarkDamage(n int)
	DisplayName() string
}

type loyaltyHolder interface {
	LoseLoyalty(n int)
	DisplayName() string
}

type tappable interface {
	Tap()
	Untap()
	DisplayName() string
}

type abilityHolder interface {
	GrantAbility(keyword string)
	DisplayName() string
}

type controlled interface {
	ControllingPlayer() Player
}

func (e *Engine) applyAction(node *ir.Node, ctx *Context) string {
	action := node.Action
	if action == nil {
		return ""
	}

	targets := e.resolveTargets(action, ctx)
	amount := action.EffectiveAmount()

	var logs []string
	appendf := func(format string, args ...any) {
		logs = append(logs, fmt.Sprintf(format, args...))
	}

	switch action.Name {
	case ir.ActionDrawCard:
		if ctx.Controller != nil {
			drawn := ctx.Controller.DrawCards(amount)
			appendf("%s draws %d card(s).", ctx.Controller.DisplayName(), drawn)
		}

	case ir.ActionGainLife:
		if ctx.Controller != nil {
			ctx.Controller.GainLife(amount)
			appendf("%s gains %d life.", ctx.Controller.DisplayName(), amount)
		}

	case ir.ActionLoseLife:
		if ctx.Controller != nil {
			ctx.Controller.LoseLife(amount)
			appendf("%s loses %d life.", ctx.Controller.DisplayName(), amount)
		}

	case ir.ActionDealDamage:
		for _, target := range targets {
			switch tgt := target.(type) {
			case lifeHolder:
				tgt.LoseLife(amount)
				appendf("%s takes %d damage (life).", tgt.DisplayName(), amount)
			case damageable:
				tgt.MarkDamage(amount)
				appendf("%s takes %d damage (marked).", tgt.DisplayName(), amount)
			case loyaltyHolder:
				tgt.LoseLoyalty(amount)
				appendf("%s loses %d loyalty.", tgt.DisplayName(), amount)
			}
		}

	case ir.ActionGrantKeyword:
		granted := false
		for _, target := range targets {
			if holder, ok := target.(abilityHolder); ok {
				holder.GrantAbility(action.Keyword)
				appendf("%s gains %s.", holder.DisplayName(), action.Keyword)
				granted = true
			}
		}
		if !granted {
			appendf("Keyword granted: %s", action.Keyword)
		}

	case ir.ActionCreateToken:
		appendf("Token created: %s", describeToken(action.Token))
		if action.StoreAs != "" {
			ctx.Refs.Set(action.StoreAs, action.Token)
		}

	case ir.ActionApplyPTModifier:
		appendf("Applied P/T modifier: %s until end of turn", action.Modifier)

	case ir.ActionSearchLibrary:
		appendf("Searching library (reveal: %t)", action.Reveal)

	case ir.ActionDiscardCards:
		appendf("Discarding %d card(s)", amount)

	case ir.ActionExileFromHand:
		appendf("Exiling card from opponent's hand")

	case ir.ActionMultiPlayerDiscard:
		appendf("Each opponent discards a card")

	case ir.ActionUntapPermanents:
		appendf("Untapping up to %d permanent(s)", amount)

	case ir.ActionPutIntoLibraryDepth:
		appendf("Put into library %d from top", action.Position)

	case ir.ActionDestroyTarget:
		logs = append(logs, e.moveTargets(targets, ctx, "graveyard", "Destroying target: %s")...)

	case ir.ActionExileTarget:
		logs = append(logs, e.moveTargets(targets, ctx, "exile", "Exiling target: %s")...)

	case ir.ActionReturnToHand:
		logs = append(logs, e.moveTargets(targets, ctx, "hand", "Returning %s to hand")...)

	case ir.ActionReturnToBattlefield:
		logs = append(logs, e.moveTargets(targets, ctx, "battlefield", "Returning %s to the battlefield")...)

	case ir.ActionTapTarget:
		for _, target := range targets {
			if perm, ok := target.(tappable); ok {
				perm.Tap()
				appendf("%s becomes tapped.", perm.DisplayName())
			}
		}

	case ir.ActionUntapTarget:
		for _, target := range targets {
			if perm, ok := target.(tappable); ok {
				perm.Untap()
				appendf("%s becomes untapped.", perm.DisplayName())
			}
		}

	case ir.ActionCounterSpell:
		appendf("Countering target spell")

	case ir.ActionSetStateFlag:
		flag := action.Extra["flag"]
		if flag != "" {
			ctx.Flags[flag] = true
			appendf("State flag set: %s", flag)
		}

	case ir.ActionStaticEffect:
		appendf("Static effect registered (layer %s)", action.Layer)

	case ir.ActionConditionalFallback:
		appendf("Conditional fallback detected")

	default:
		// Unknown and unparsed actions degrade to a logged no-op so
		// one rules-coverage gap never halts a simulated game.
		e.log.Warn("unknown effect action",
			zap.String("action", string(action.Name)),
			zap.String("raw_text", action.RawText))
		appendf("[UNKNOWN EFFECT]")
		appendf("  Action: %s", action.Name)
		appendf("  Raw Text: %s", rawTextOrPlaceholder(action))
	}

	return strings.Join(logs, "\n")
}

// resolveTargets returns the targets a leaf acts on. A reference tag
// bound earlier in the same resolution takes precedence over the
// context's declared targets.
func (e *Engine) resolveTargets(action *ir.Action, ctx *Context) []any {
	if action.ReferenceTag != "" {
		if obj := ctx.Refs.Resolve(action.ReferenceTag); obj != nil {
			return []any{obj}
		}
	}
	return ctx.Targets
}

func (e *Engine) moveTargets(targets []any, ctx *Context, zone, format string) []string {
	var logs []string
	for _, target := range targets {
		perm, ok := target.(Permanent)
		if !ok {
			continue
		}
		if ctx.Game != nil {
			controller := ctx.Controller
			if owned, ok := target.(controlled); ok && owned.ControllingPlayer() != nil {
				controller = owned.ControllingPlayer()
			}
			if line, err := ctx.Game.MoveCard(perm, controller, zone); err == nil && line != "" {
				logs = append(logs, line)
			}
		}
		logs = append(logs, fmt.Sprintf(format, perm.DisplayName()))
	}
	return logs
}

func describeToken(token *ir.TokenSpec) string {
	if token == nil {
		return "token"
	}
	var parts []string
	if token.Power != 0 || token.Toughness != 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", token.Power, token.Toughness))
	}
	parts = append(parts, token.Colors...)
	parts = append(parts, token.Types...)
	if len(token.Abilities) > 0 {
		parts = append(parts, "with "+strings.Join(token.Abilities, ", "))
	}
	if token.CopyOf != "" {
		parts = append(parts, "(copy of "+token.CopyOf+")")
	}
	if len(parts) == 0 {
		return "token"
	}
	return strings.Join(parts, " ")
}

func rawTextOrPlaceholder(action *ir.Action) string {
	if action.RawText == "" {
		return "<missing raw_text>"
	}
	return action.RawText
}
