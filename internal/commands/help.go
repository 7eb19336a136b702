package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help [command]",
		Short: "Show comprehensive help for agenda",
		Long:  `Display detailed help for all agenda commands, or cobra's help for one command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				target, _, err := cmd.Root().Find(args)
				if err != nil || target == nil {
					return fmt.Errorf("unknown help topic %q", args)
				}
				return target.Help()
			}
			showCustomHelp(cmd.OutOrStdout())
			return nil
		},
	}
}

func showCustomHelp(out io.Writer) {
	fmt.Fprint(out, `
 █████╗  ██████╗ ███████╗███╗   ██╗██████╗  █████╗
██╔══██╗██╔════╝ ██╔════╝████╗  ██║██╔══██╗██╔══██╗
███████║██║  ███╗█████╗  ██╔██╗ ██║██║  ██║███████║
██╔══██║██║   ██║██╔══╝  ██║╚██╗██║██║  ██║██╔══██║
██║  ██║╚██████╔╝███████╗██║ ╚████║██████╔╝██║  ██║
╚═╝  ╚═╝ ╚═════╝ ╚══════╝╚═╝  ╚═══╝╚═════╝ ╚═╝  ╚═╝

agenda - tasks, lists and projects in your terminal

COMMANDS:

  add <task>              Create a task with smart parsing
    -d, --desc            Description
    --priority            p1|p2|p3|p4
    --due                 Due date (dd/mm/yyyy, 3 days, 5 hours, 2 weeks)
    --reminder-end        Keep reminding until this date
    -l, --list            List name or id
    -p, --project         Project name or id
    -t, --tags            Comma-separated tags
    --important           Mark as important
    --no-infer            Ignore date phrases in the title
    -i, --interactive     Open the composer

    Smart syntax:
      #hashtags     Tags
      +p1           Priority
      !             Important
      due:mañana    Due date

    Date phrases in the title set the due date:
      hoy, mañana, próximo lunes, el viernes, 25/12/2026

    Example:
      agenda add "Revisar presupuesto el viernes #trabajo +p1"

  ls                      List tasks
    --list, --project     Filter by list or project
    --status              pending|in-progress|completed|deleted
    --tag                 Filter by tag
    --today               Due today
    --important           Important only
    --all                 Include deleted
    --json                JSON output

  search <query>          Search title, description and tags
  show <id>               Show every detail of a task
  edit <id>               Change only the fields you pass
    --clear-due           Remove the due date
  done <id>               Mark as completed
  undone <id>             Mark as pending
  rm <id>                 Delete (--soft marks as deleted)
  move <id> --status s    Move to another column (--index n)

  board                   Live board, one column per status
    --plain               Print the columns
  calendar [day]          Tasks due on a day (--month for the grid)
  stats                   Counters, priority 1 tasks and lists
  suggest <text>          Show the date detected in text

  list add|ls|show|rm|mv      Manage lists
  project add|ls|show|rm|mv   Manage projects

  version                 Show version
  help                    Show this help

GLOBAL FLAGS:
  --config <file>         Config file (default ~/.agenda/config.yaml)
  --ephemeral             Keep everything in memory for this run

`)
}
