package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/schemawalk"
	"github.com/erraggy/schemawalk/cmd/schemawalk/commands"
	"github.com/erraggy/schemawalk/internal/mcpserver"
)

// commandNames lists the valid subcommands for typo suggestions.
var commandNames = []string{"walk", "stats", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("schemawalk %s\n", schemawalk.Version())
		if len(os.Args) > 2 && os.Args[2] == "--verbose" {
			fmt.Println(schemawalk.BuildInfo())
		}
	case "help", "-h", "--help":
		printUsage()
	case "walk":
		exitOnError(commands.HandleWalk(os.Args[2:]))
	case "stats":
		exitOnError(commands.HandleStats(os.Args[2:]))
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err := mcpserver.Run(ctx)
		stop()
		exitOnError(err)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the closest command within edit distance 2, or "".
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`schemawalk - JSON Schema traversal tools

Usage:
  schemawalk <command> [options]

Commands:
  walk        List every subschema of a schema document
  stats       Count subschemas by keyword and nesting depth
  mcp         Serve walk and stats as MCP tools over stdio
  version     Show version information
  help        Show this help message

Examples:
  schemawalk walk schema.json
  schemawalk walk --keyword properties --format json schema.yaml
  schemawalk walk --pointer /definitions/Address --detail schema.json
  schemawalk stats a.json b.json
  cat schema.json | schemawalk walk -

Run 'schemawalk <command> --help' for more information on a command.`)
}
