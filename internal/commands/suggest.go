package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/agenda/internal/parser"
	"github.com/balkashynov/agenda/internal/store"
)

func newSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <text>",
		Short: "Show the due date detected in a piece of text",
		Long: `Show the due date the detector reads from text, without creating anything.

Recognised: hoy, mañana, próximo <día>, el <día>, and dd/mm/yyyy when it is
the whole text. The first phrase found wins.`,
		Args: cobra.MinimumNArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, st *store.Store) error {
			out := cmd.OutOrStdout()
			now := st.Now()

			found := parser.InferDate(strings.Join(args, " "), now)
			if found == nil {
				fmt.Fprintln(out, "No date detected.")
				return nil
			}
			fmt.Fprintf(out, "%s %s\n", found.Weekday(), found.Format(dateLayout))
			fmt.Fprintln(out, parser.FormatDueDate(found, now))
			return nil
		}),
	}
}
