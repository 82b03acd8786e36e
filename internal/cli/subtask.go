package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var subtaskCmd = &cobra.Command{
	Use:   "subtask [parent-id] [text]",
	Short: "Add a subtask under a task",
	Long: `Add a subtask under an existing main task. The subtask is
inserted after the parent's last subtask so the cluster stays
together. Separators and subtasks cannot take subtasks.

Examples:
  todo subtask 3f2a91 "Pick up the keys"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSubtask,
}

func runSubtask(cmd *cobra.Command, args []string) error {
	eng, _, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	parentID, err := resolveID(eng, args[0])
	if err != nil {
		return err
	}

	text := strings.Join(args[1:], " ")
	if _, ok := eng.AddSubtask(parentID, text); !ok {
		return fmt.Errorf("cannot add a subtask under %s", args[0])
	}

	parent := eng.Store().Find(parentID)
	fmt.Printf("✓ Added under %q: %q\n", parent.Name, strings.TrimSpace(text))
	return nil
}
