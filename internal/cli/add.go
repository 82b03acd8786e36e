package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add a new task",
	Long: `Add a new task to the end of the list.

Text starting with "---" creates a section separator instead; any
remaining text becomes the section title.

Examples:
  todo add "Buy milk"
  todo add --- WORK`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	eng, _, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	text := strings.Join(args, " ")
	_, ok := eng.AddTask(text)
	if !ok {
		fmt.Println("Nothing to add.")
		return nil
	}

	if strings.HasPrefix(strings.TrimSpace(text), "---") {
		fmt.Println("✓ Added separator")
	} else {
		fmt.Printf("✓ Added: %q\n", strings.TrimSpace(text))
	}
	return nil
}
