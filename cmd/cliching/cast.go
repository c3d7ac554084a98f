package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/cliching"
	"github.com/aretw0/cliching/internal/cli"
	"github.com/aretw0/cliching/internal/presentation/tui"
	"github.com/aretw0/cliching/pkg/divination"
	"github.com/aretw0/cliching/pkg/oracle"
	"github.com/spf13/cobra"
)

// castCmd represents the cast command: a single non-interactive consultation.
var castCmd = &cobra.Command{
	Use:   "cast",
	Short: "Cast a single hexagram and print it",
	Long: `Casts one original hexagram and prints it with its interpretation.
With --change, the changing hexagram is derived for the given line
positions in the same run. With --json, the consultation is printed as a
machine-readable document instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("no-color")
		question, _ := cmd.Flags().GetString("question")
		changeArg, _ := cmd.Flags().GetString("change")
		jsonMode, _ := cmd.Flags().GetBool("json")

		table, err := cliching.New(cliching.WithQuestion(question))
		if err != nil {
			return err
		}

		original := table.Cast()

		var changed *divination.Hexagram
		var changing, skipped []int
		if changeArg != "" {
			positions := cli.ParsePositions(changeArg)
			if len(positions) == 0 {
				return fmt.Errorf("no line positions in %q", changeArg)
			}
			for _, position := range positions {
				if position < 1 || position > divination.LineCount {
					return fmt.Errorf("line positions must be between 1 and 6, given %d", position)
				}
			}

			changing, skipped, err = original.ChangingPositions(positions)
			if err != nil {
				return err
			}

			changed, _, err = table.Change(positions)
			if err != nil {
				return err
			}
		}

		if jsonMode {
			return printJSON(table, question, original, changed, changing, skipped)
		}

		renderer := tui.NewRenderer(plain)
		if question != "" {
			fmt.Printf("Question: %s\n\n", question)
		}

		if err := printHexagram(renderer, table, original); err != nil {
			return err
		}

		if changed != nil {
			for _, position := range skipped {
				yao, _ := original.Yao(position)
				fmt.Fprintf(os.Stderr, "Warning: line %d (young %s) is not a changing line.\n",
					position, yao.Value)
			}
			fmt.Println("\nChanging hexagram:")
			if err := printHexagram(renderer, table, changed); err != nil {
				return err
			}
		}

		return nil
	},
}

func printHexagram(renderer *tui.Renderer, table *cliching.Table, h *divination.Hexagram) error {
	entry, err := table.Interpret(h)
	if err != nil {
		return err
	}
	fmt.Print(renderer.Hexagram(h, entry))
	fmt.Print(renderer.Interpretation(entry))
	return nil
}

type hexagramDocument struct {
	Lines            []divination.Yao `json:"lines"`
	Identity         int              `json:"identity"`
	Binary           string           `json:"binary"`
	MutablePositions []int            `json:"mutable_positions,omitempty"`
	Interpretation   oracle.Entry     `json:"interpretation"`
}

type castDocument struct {
	Question string            `json:"question,omitempty"`
	Original hexagramDocument  `json:"original"`
	Changed  *hexagramDocument `json:"changed,omitempty"`
	Changing []int             `json:"changing_positions,omitempty"`
	Skipped  []int             `json:"skipped_positions,omitempty"`
}

func printJSON(table *cliching.Table, question string, original, changed *divination.Hexagram, changing, skipped []int) error {
	document := castDocument{
		Question: question,
		Changing: changing,
		Skipped:  skipped,
	}

	var err error
	document.Original, err = hexagramDoc(table, original)
	if err != nil {
		return err
	}

	if changed != nil {
		doc, err := hexagramDoc(table, changed)
		if err != nil {
			return err
		}
		document.Changed = &doc
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(document)
}

func hexagramDoc(table *cliching.Table, h *divination.Hexagram) (hexagramDocument, error) {
	entry, err := table.Interpret(h)
	if err != nil {
		return hexagramDocument{}, err
	}

	yaos := h.Yaos()
	return hexagramDocument{
		Lines:            yaos[:],
		Identity:         h.Identity(),
		Binary:           h.Binary(),
		MutablePositions: h.MutablePositions(),
		Interpretation:   entry,
	}, nil
}

func init() {
	rootCmd.AddCommand(castCmd)

	castCmd.Flags().StringP("change", "c", "", "Line positions (1-6) to change, e.g. '1,3,5'")
	castCmd.Flags().Bool("json", false, "Print the consultation as JSON")
}
