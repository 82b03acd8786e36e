package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deadlineCmd = &cobra.Command{
	Use:   "deadline [task-id] [date]",
	Short: "Set or clear a task deadline",
	Long: `Set a task's deadline as YYYY-MM-DD. Omit the date to clear
it.

Examples:
  todo deadline 3f2a91 2026-09-15
  todo deadline 3f2a91`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runDeadline,
}

func runDeadline(cmd *cobra.Command, args []string) error {
	eng, _, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	id, err := resolveID(eng, args[0])
	if err != nil {
		return err
	}

	date := ""
	if len(args) > 1 {
		date = args[1]
	}

	if _, ok := eng.SetDeadline(id, date); !ok {
		return fmt.Errorf("invalid deadline %q (want YYYY-MM-DD)", date)
	}

	r := eng.Store().Find(id)
	if date == "" {
		fmt.Printf("○ Cleared deadline for %q\n", r.Name)
	} else {
		fmt.Printf("📅 %q due %s\n", r.Name, date)
	}
	return nil
}

var colorCmd = &cobra.Command{
	Use:   "color [task-id] [hex]",
	Short: "Set or clear a task's background color",
	Long: `Set a main task's custom background color as a hex code.
Omit the code to clear it.

Examples:
  todo color 3f2a91 "#2C3E50"
  todo color 3f2a91`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runColor,
}

func runColor(cmd *cobra.Command, args []string) error {
	eng, _, closeStore, err := openEngine()
	if err != nil {
		return err
	}
	defer closeStore()

	id, err := resolveID(eng, args[0])
	if err != nil {
		return err
	}

	color := ""
	if len(args) > 1 {
		color = args[1]
	}

	if _, ok := eng.SetColor(id, color); !ok {
		return fmt.Errorf("cannot set color %q on %s", color, args[0])
	}

	r := eng.Store().Find(id)
	if color == "" {
		fmt.Printf("○ Cleared color for %q\n", r.Name)
	} else {
		fmt.Printf("🎨 %q set to %s\n", r.Name, r.CustomColor)
	}
	return nil
}
