package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cardforge/oracle-engine/internal/parser"
)

var showSegments bool

var parseCmd = &cobra.Command{
	Use:   "parse <oracle text>",
	Short: "Compile oracle text into its effect tree",
	Long: `Compile a piece of rules text into the canonical effect tree and
print it as JSON. With --segments, also show how the tokenizer
segments the text into trigger, condition and action spans.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")

		if showSegments {
			for _, segment := range parser.SegmentPatterns(text) {
				fmt.Printf("%-10s %s\n", segment.Tag, segment.Text)
			}
			fmt.Println()
		}

		tree := parser.CompileText(text)
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return fmt.Errorf("encode effect tree: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	parseCmd.Flags().BoolVar(&showSegments, "segments", false, "show tokenizer segmentation")
	rootCmd.AddCommand(parseCmd)
}
