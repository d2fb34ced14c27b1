package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cardforge/oracle-engine/internal/cards"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import cards from a JSON file into the configured store",
	Long: `Import card records from a JSON file. The file may be either an
array of card objects or a map keyed by card name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		repo, closeStore, err := openRepository(log)
		if err != nil {
			return err
		}
		defer closeStore()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		var list []*cards.RawCard
		if err := json.Unmarshal(data, &list); err != nil {
			byName := make(map[string]*cards.RawCard)
			if err := json.Unmarshal(data, &byName); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			for _, card := range byName {
				list = append(list, card)
			}
		}

		imported := 0
		for _, card := range list {
			if card == nil || card.Name == "" {
				continue
			}
			if err := repo.AddCard(cmd.Context(), card); err != nil {
				return fmt.Errorf("import %q: %w", card.Name, err)
			}
			imported++
		}

		fmt.Printf("Imported %d cards.\n", imported)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
