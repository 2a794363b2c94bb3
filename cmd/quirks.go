package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var quirksFlagQuirk string

// quirksCmd prints the resolved opcode quirk set for a given --quirk
// value, so a ROM author can confirm which 8XY6/8XYE and FX55/FX65
// behavior a run with that flag would use without starting the emulator.
var quirksCmd = &cobra.Command{
	Use:   "quirks",
	Short: "print the resolved quirk configuration for a quirk set",
	Args:  cobra.NoArgs,
	RunE:  runQuirks,
}

func init() {
	quirksCmd.Flags().StringVar(&quirksFlagQuirk, "quirk", "modern", "opcode quirk set: modern or classic")
}

func runQuirks(cmd *cobra.Command, args []string) error {
	q, err := parseQuirks(quirksFlagQuirk)
	if err != nil {
		return err
	}
	fmt.Printf("ShiftUsesVY:            %t\n", q.ShiftUsesVY)
	fmt.Printf("NoIncrementOnStoreLoad: %t\n", q.NoIncrementOnStoreLoad)
	return nil
}
