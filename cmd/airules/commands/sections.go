package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/airules/internal/errors"
	"github.com/thoreinstein/airules/internal/registry"
)

func init() {
	rootCmd.AddCommand(sectionsCmd)
}

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Print the section registry",
	Long: `Print the known sections in canonical order with the file stem each
maps to and its default scope.

The registry is the built-in default unless sections_file is set in
airules.yaml. Sections listed here are written first, in this order, when
bundling; others follow alphabetically.`,
	Example: `  # Show the registry
  airules sections

See Also: airules lint`,
	Args: cobra.NoArgs,
	RunE: runSections,
}

func runSections(cmd *cobra.Command, _ []string) error {
	p, err := loadProject(cmd)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	source := "built-in default"
	if p.cfg.SectionsFile != "" {
		source = p.path(p.cfg.SectionsFile)
	}
	if !quiet {
		fmt.Fprintf(w, "Sections (%s):\n\n", source)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SECTION\tFILE\tSCOPE")
	for _, e := range p.registry.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, registry.Filename(e.Name), e.Directive)
	}
	return errors.Wrap(tw.Flush(), "writing sections")
}
