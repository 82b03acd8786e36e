package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel [task-id...]",
	Short: "Toggle tasks cancelled",
	Long: `Toggle the cancelled state of one or more tasks. Cancelling
clears the urgent flag; un-cancelling does not restore it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCancel,
}

func runCancel(cmd *cobra.Command, args []string) error {
	eng, _, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	ids, err := resolveIDs(eng, args)
	if err != nil {
		return err
	}

	if _, ok := eng.ToggleCancelledBatch(ids); !ok {
		fmt.Println("Nothing toggled.")
		return nil
	}

	for _, id := range ids {
		r := eng.Store().Find(id)
		if r == nil || r.Separator {
			continue
		}
		if r.Cancelled {
			fmt.Printf("✗ Cancelled: %q\n", r.Name)
		} else {
			fmt.Printf("○ Restored: %q\n", r.Name)
		}
	}
	return nil
}

var urgentCmd = &cobra.Command{
	Use:   "urgent [task-id...]",
	Short: "Toggle tasks urgent",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUrgent,
}

func runUrgent(cmd *cobra.Command, args []string) error {
	eng, _, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	ids, err := resolveIDs(eng, args)
	if err != nil {
		return err
	}

	if _, ok := eng.ToggleUrgentBatch(ids); !ok {
		fmt.Println("Nothing toggled.")
		return nil
	}

	for _, id := range ids {
		r := eng.Store().Find(id)
		if r == nil || r.Separator {
			continue
		}
		if r.Urgent {
			fmt.Printf("! Urgent: %q\n", r.Name)
		} else {
			fmt.Printf("○ Not urgent: %q\n", r.Name)
		}
	}
	return nil
}
