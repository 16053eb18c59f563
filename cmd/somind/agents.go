package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/societymind/somind/internal/roster"
	"github.com/societymind/somind/pkg/models"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the society roster",
	Long: `List every agent in the society: the outer coordination layer and
each inner team with its human proxy and specialists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		agents, err := roster.Load()
		if err != nil {
			return fmt.Errorf("load agent roster: %w", err)
		}

		bold := color.New(color.Bold)
		bold.Println("Outer Team (coordination layer)")
		for _, a := range agents.OuterAgents() {
			fmt.Printf("  %-26s %s\n", annotate(a), a.Role)
		}

		for _, team := range agents.InnerTeams() {
			fmt.Println()
			bold.Printf("%s", models.TeamTitle(team))
			fmt.Printf(" (%s)\n", agents.Domain(team))
			if proxy, ok := agents.Proxy(team); ok {
				fmt.Printf("  %-26s %s\n", annotate(proxy), proxy.Role)
			}
			for _, sp := range agents.Specialists(team) {
				fmt.Printf("  %-26s %s\n", annotate(sp), sp.Role)
			}
		}
		return nil
	},
}

// annotate marks the human seats in the roster listing.
func annotate(a models.Agent) string {
	switch a.Kind {
	case models.AgentKindDirector, models.AgentKindHumanProxy:
		return a.Name + " (human)"
	default:
		return a.Name
	}
}
