package system

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitduel/internal/cli"
	"github.com/julianstephens/habitduel/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Remove duplicate daily entries, keeping the last one per date."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Tracker()
	if err != nil {
		return err
	}

	results := svc.Validate()
	conflicts := 0
	for _, u := range svc.ListUsers() {
		res := results[u.ID]
		fmt.Printf("%s\n", cli.UserLabel(u.Profile))
		fmt.Println(indent(res.FormatReport()))
		conflicts += len(res.Conflicts)
	}

	if conflicts == 0 {
		fmt.Println(cli.SuccessStyle.Render("✓ Data validation passed"))
		return nil
	}

	if c.Fix {
		if hasStatusConflicts(results) {
			removed := svc.RepairStatuses()
			fmt.Printf("Removed %d duplicate daily entr%s.\n", removed, plural(removed, "y", "ies"))
			if err := svc.Repository().LastSaveError(); err != nil {
				return fmt.Errorf("failed to save repaired data: %w", err)
			}
		}
		remaining := 0
		for _, res := range svc.Validate() {
			remaining += len(res.Conflicts)
		}
		if remaining == 0 {
			fmt.Println(cli.SuccessStyle.Render("✓ All conflicts fixed"))
			return nil
		}
		return fmt.Errorf("%d conflict(s) need manual attention", remaining)
	}

	fmt.Println(cli.MutedStyle.Render("Run 'habitduel validate --fix' to remove duplicate daily entries."))
	return fmt.Errorf("found %d conflict(s)", conflicts)
}

func hasStatusConflicts(results map[string]validation.ValidationResult) bool {
	for _, res := range results {
		for _, c := range res.Conflicts {
			if c.Type == validation.ConflictDuplicateStatus {
				return true
			}
		}
	}
	return false
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
