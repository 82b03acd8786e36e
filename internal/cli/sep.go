package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var sepCmd = &cobra.Command{
	Use:   "sep [title]",
	Short: "Add a section separator",
	Long: `Append a section separator, optionally titled. Titles are
upper-cased.

Examples:
  todo sep
  todo sep work`,
	RunE: runSep,
}

var sepBelow string

func init() {
	sepCmd.Flags().StringVar(&sepBelow, "below", "", "Insert below the record with this id instead of appending")
}

func runSep(cmd *cobra.Command, args []string) error {
	eng, _, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	if sepBelow != "" {
		id, err := resolveID(eng, sepBelow)
		if err != nil {
			return err
		}
		if _, ok := eng.AddSeparatorBelow(id); !ok {
			return fmt.Errorf("cannot insert separator below %s", sepBelow)
		}
		fmt.Println("✓ Added separator")
		return nil
	}

	text := "---"
	if len(args) > 0 {
		text += " " + strings.Join(args, " ")
	}
	if _, ok := eng.AddTask(text); !ok {
		return fmt.Errorf("failed to add separator")
	}
	fmt.Println("✓ Added separator")
	return nil
}
