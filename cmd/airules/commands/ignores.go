package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(ignoresCmd)
}

var ignoresCmd = &cobra.Command{
	Use:   "ignores",
	Short: "List the files explode would write",
	Long: `Print every file explode would write for the selected agents, one per
line and relative to the current directory. Nothing is written.

The output is suitable for a .gitignore when the generated files are not
committed.`,
	Example: `  # Ignore generated files
  airules ignores >> .gitignore

  See Also: airules explode, airules delete`,
	Args: cobra.NoArgs,
	RunE: runIgnores,
}

func runIgnores(cmd *cobra.Command, _ []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}

	plan, err := p.plan()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	seen := make(map[string]bool)
	for _, rel := range plan.RelPaths(p.root) {
		if seen[rel] {
			continue
		}
		seen[rel] = true
		fmt.Fprintln(w, rel)
	}
	return nil
}
