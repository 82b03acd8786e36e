package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id...]",
	Short: "Toggle tasks done",
	Long: `Toggle the done state of one or more tasks. Ids may be
prefixes as long as they are unique (see 'todo list --ids').

Completing the last open subtask completes its parent; reopening a
subtask reopens its parent.

Examples:
  todo done 3f2a91
  todo done 3f2a91 77c0de`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDone,
}

func runDone(cmd *cobra.Command, args []string) error {
	eng, _, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	ids, err := resolveIDs(eng, args)
	if err != nil {
		return err
	}

	if _, ok := eng.ToggleDoneBatch(ids); !ok {
		fmt.Println("Nothing toggled.")
		return nil
	}

	for _, id := range ids {
		r := eng.Store().Find(id)
		if r == nil || r.Separator {
			continue
		}
		if r.Done {
			fmt.Printf("✓ Completed: %q\n", r.Name)
		} else {
			fmt.Printf("○ Reopened: %q\n", r.Name)
		}
	}
	return nil
}
