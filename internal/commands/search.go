package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/agenda/internal/models"
	"github.com/balkashynov/agenda/internal/store"
	"github.com/balkashynov/agenda/internal/views"
)

// Match tiers, best first
const (
	matchExact = iota
	matchPrefix
	matchSuffix
	matchContains
	matchNone
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search tasks across title, description and tags",
		Long: `Search tasks with tiered matching:
- Exact match (highest priority)
- Prefix match
- Suffix match
- Contains match (lowest priority)

Search is case insensitive. Deleted tasks are skipped unless --all is set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: withStore(runSearch),
	}

	cmd.Flags().IntP("limit", "n", 0, "Limit number of results")
	cmd.Flags().Bool("all", false, "Include deleted tasks")
	cmd.Flags().Bool("json", false, "Output as JSON")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string, st *store.Store) error {
	out := cmd.OutOrStdout()
	query := strings.Join(args, " ")

	tasks, err := st.Tasks(cmd.Context())
	if err != nil {
		return fmt.Errorf("error searching tasks: %w", err)
	}
	if all, _ := cmd.Flags().GetBool("all"); !all {
		tasks = views.Live(tasks)
	}

	results := searchTasks(tasks, query)
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(out, map[string]any{
			"query": query,
			"count": len(results),
			"tasks": results,
		})
	}

	fmt.Fprintf(out, "Search results for '%s' (%d found):\n", query, len(results))
	if len(results) == 0 {
		fmt.Fprintln(out, "No tasks found matching your search.")
		return nil
	}
	fmt.Fprintln(out)
	printTaskTable(out, results)
	return nil
}

// searchTasks returns the tasks matching query, best tier first and
// stored order within a tier
func searchTasks(tasks []models.Task, query string) []models.Task {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []models.Task{}
	}

	type hit struct {
		task models.Task
		tier int
	}
	hits := []hit{}
	for _, task := range tasks {
		best := matchNone
		fields := append([]string{task.Title, task.Description}, task.Tags...)
		for _, field := range fields {
			if tier := matchTier(strings.ToLower(field), query); tier < best {
				best = tier
			}
		}
		if best != matchNone {
			hits = append(hits, hit{task: task, tier: best})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].tier < hits[j].tier })

	out := make([]models.Task, len(hits))
	for i, h := range hits {
		out[i] = h.task
	}
	return out
}

func matchTier(field, query string) int {
	switch {
	case field == "":
		return matchNone
	case field == query:
		return matchExact
	case strings.HasPrefix(field, query):
		return matchPrefix
	case strings.HasSuffix(field, query):
		return matchSuffix
	case strings.Contains(field, query):
		return matchContains
	default:
		return matchNone
	}
}
