package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cardforge/oracle-engine/internal/combat"
	"github.com/cardforge/oracle-engine/internal/engine"
	"github.com/cardforge/oracle-engine/internal/parser"
	"github.com/cardforge/oracle-engine/internal/stack"
	"github.com/cardforge/oracle-engine/internal/state"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted two-player exchange through the engine",
	Long: `Run a small scripted game: a spell is compiled from oracle text,
pushed onto the stack and resolved, then one combat is fought. The
resolution log is printed step by step.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		alice := state.NewPlayer("Alice")
		bob := state.NewPlayer("Bob")
		game := state.NewGameState(log, alice, bob)

		bear := state.NewCard("Grizzly Bears", "Creature — Bear", "")
		bear.Power, bear.Toughness = 2, 2
		bear.Zone = state.ZoneBattlefield
		bear.Controller = alice
		alice.Battlefield = append(alice.Battlefield, bear)

		fmt.Println("== Stack ==")
		effects := engine.New(log, nil)
		gameStack := stack.New(log)
		resolver := stack.NewResolver(gameStack, effects, log)

		bolt := parser.CompileText("deal 3 damage to any target")
		gameStack.Push(stack.NewEntry(stack.KindSpell, "Lightning Bolt", nil, alice, bolt, []any{bob}))

		result, err := resolver.ResolveTop(game)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", result.Entry.Name, result.Outcome)
		fmt.Println(result.Log)
		fmt.Printf("%s is at %d life.\n\n", bob.DisplayName(), bob.Life)

		fmt.Println("== Combat ==")
		for game.CurrentPhase() != "Declare Attackers" {
			game.AdvancePhase()
		}
		battle := combat.NewEngine(log)
		for _, line := range battle.DeclareAttackers(game, alice, []combat.AttackerAssignment{
			{Creature: bear, Defender: bob},
		}) {
			fmt.Println(line)
		}
		game.AdvancePhase()
		for _, line := range battle.AssignCombatDamage(game) {
			fmt.Println(line)
		}
		fmt.Printf("%s is at %d life.\n", bob.DisplayName(), bob.Life)

		log.Info("demo complete",
			zap.Int("alice_life", alice.Life),
			zap.Int("bob_life", bob.Life),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
