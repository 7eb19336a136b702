package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/spf13/cobra"

	"github.com/balkashynov/agenda/internal/models"
	"github.com/balkashynov/agenda/internal/parser"
	"github.com/balkashynov/agenda/internal/store"
	"github.com/balkashynov/agenda/internal/views"
)

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar [day]",
		Short: "Show the tasks due on a day",
		Long: `Show the tasks due on a day. The day is dd/mm/yyyy or any phrase the date
detector understands (hoy, mañana, el viernes); it defaults to today.
With --month the whole month is printed with the number of tasks per day.`,
		Args: cobra.MaximumNArgs(1),
		RunE: withStore(runCalendar),
	}
	cmd.Flags().BoolP("month", "m", false, "Print a month grid")
	return cmd
}

func runCalendar(cmd *cobra.Command, args []string, st *store.Store) error {
	out := cmd.OutOrStdout()
	day := st.Now()
	if len(args) == 1 {
		picked := parser.InferDate(args[0], st.Now())
		if picked == nil {
			return fmt.Errorf("could not read a date from %q: use dd/mm/yyyy", args[0])
		}
		day = *picked
	}

	tasks, err := st.Tasks(cmd.Context())
	if err != nil {
		return err
	}
	tasks = views.Live(tasks)

	if month, _ := cmd.Flags().GetBool("month"); month {
		printMonth(out, views.Month(tasks, day), day)
		return nil
	}

	due := views.OnDay(tasks, day)
	fmt.Fprintf(out, "%s %s\n", day.Weekday(), day.Format(dateLayout))
	if len(due) == 0 {
		fmt.Fprintln(out, "Nothing due.")
		return nil
	}
	for _, task := range due {
		fmt.Fprintf(out, "  %-10s %s  %s\n", statusMark(task.Status), task.Title, priorityMark(task))
	}
	return nil
}

func priorityMark(task models.Task) string {
	mark := string(task.Priority)
	if task.IsImportant {
		mark += " ★"
	}
	return mark
}

// printMonth prints a Monday-first grid; days with tasks show their count
func printMonth(out io.Writer, counts []int, ref time.Time) {
	first := now.With(ref).BeginningOfMonth()
	fmt.Fprintf(out, "%s %d\n", first.Month(), first.Year())
	fmt.Fprintln(out, "Mo    Tu    We    Th    Fr    Sa    Su")

	offset := (int(first.Weekday()) + 6) % 7
	var row strings.Builder
	row.WriteString(strings.Repeat("      ", offset))
	for day := 1; day <= len(counts); day++ {
		marker := ""
		if n := counts[day-1]; n > 0 {
			marker = fmt.Sprintf("·%d", n)
		}
		row.WriteString(fmt.Sprintf("%2d%-4s", day, marker))
		if (offset+day)%7 == 0 {
			fmt.Fprintln(out, strings.TrimRight(row.String(), " "))
			row.Reset()
		}
	}
	if row.Len() > 0 {
		fmt.Fprintln(out, strings.TrimRight(row.String(), " "))
	}
}
