package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id...]",
	Aliases: []string{"rm"},
	Short:   "Delete records",
	Long: `Delete tasks or separators by id. Deleting a parent does not
delete its subtasks; they are promoted to plain tasks on the next
start.

Examples:
  todo delete 3f2a91
  todo rm 3f2a91 77c0de`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	eng, _, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	ids, err := resolveIDs(eng, args)
	if err != nil {
		return err
	}

	for _, id := range ids {
		r := eng.Store().Find(id)
		name := id
		if r != nil {
			name = r.Name
		}
		if _, ok := eng.Remove(id); ok {
			fmt.Printf("🗑 Deleted: %q\n", name)
		}
	}
	return nil
}
