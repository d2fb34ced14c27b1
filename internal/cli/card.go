package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var cardCmd = &cobra.Command{
	Use:   "card <name>",
	Short: "Look up a card and compile its oracle text",
	Args:  cobra.MinimumNArgs(1),
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

		name := strings.Join(args, " ")
		meta, err := repo.GetCard(cmd.Context(), name)
		if err != nil {
			return fmt.Errorf("look up %q: %w", name, err)
		}

		fmt.Printf("%s  %s\n", meta.Name, meta.ManaCost)
		fmt.Println(meta.TypeLine)
		if meta.OracleText != "" {
			fmt.Println()
			fmt.Println(meta.OracleText)
		}
		if len(meta.StaticKeywords) > 0 {
			fmt.Printf("\nKeywords: %s\n", strings.Join(meta.StaticKeywords, ", "))
		}

		fmt.Println()
		data, err := json.MarshalIndent(meta.Behavior, "", "  ")
		if err != nil {
			return fmt.Errorf("encode effect tree: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cardCmd)
}
