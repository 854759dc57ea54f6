package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/kin"
)

// peopleCommand lists everyone in the dataset.
func (c *CLI) peopleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "people",
		Short: "List everyone in the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := c.loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, peopleTable(eng.Tree(), eng.Directory()))
			printDetail(out, "%d people · %d relations", eng.Tree().Len(), eng.Tree().EdgeCount())
			return nil
		},
	}
}

// ancestorsCommand prints the common ancestors of two people.
func (c *CLI) ancestorsCommand() *cobra.Command {
	var closest bool

	cmd := &cobra.Command{
		Use:   "ancestors NAME_A NAME_B",
		Short: "Show the common ancestors of two people",
		Long: `Show the common ancestors of two people.

Every ancestor the two share is listed, at any generation, nearest first.
With --closest only the most recent ones are shown (for siblings their
parents, for first cousins the two shared grandparents).

Giving the same name twice lists all of that person's ancestors.`,
		Example: `  kintree ancestors Bart Lisa
  kintree ancestors "Homer Simpson" Ling --closest`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeNames(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := c.loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			runAncestors(cmd, eng, args[0], args[1], closest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&closest, "closest", false, "show only the most recent common ancestors")
	return cmd
}

func runAncestors(cmd *cobra.Command, eng *kin.Engine, nameA, nameB string, closest bool) {
	out := cmd.OutOrStdout()
	warnUnknown(cmd, eng, nameA, nameB)

	result := eng.CommonAncestorsByName(nameA, nameB)
	label := "Common ancestors"
	if closest {
		result = eng.ClosestCommonAncestorsByName(nameA, nameB)
		label = "Closest common ancestors"
	}

	if len(result) == 0 {
		printInfo(out, "%s and %s have no common ancestors", StyleHighlight.Render(nameA), StyleHighlight.Render(nameB))
		return
	}
	fmt.Fprintln(out, StyleTitle.Render(fmt.Sprintf("%s of %s and %s", label, nameA, nameB)))
	printNameList(out, eng.DisplayNames(result), false)
}

// descendantsCommand prints the depth-first descendant listing.
func (c *CLI) descendantsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "descendants NAME",
		Short: "List a person and all their descendants",
		Long: `List a person and all their descendants, depth first.

The person comes first. Each child is followed by that child's own line
before moving to the next sibling, and siblings appear in dataset order.
Someone reachable through both parents is listed once.`,
		Example:           `  kintree descendants Abraham`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeNames(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := c.loadEngine(cmd.Context())
			if err != nil {
				return err
			}
			runDescendants(cmd, eng, args[0])
			return nil
		},
	}
}

func runDescendants(cmd *cobra.Command, eng *kin.Engine, name string) {
	out := cmd.OutOrStdout()
	warnUnknown(cmd, eng, name)

	result := eng.DescendantsByName(name)
	if len(result) == 0 {
		return
	}
	fmt.Fprintln(out, StyleTitle.Render("Descendants of "+name))
	printNameList(out, eng.DisplayNames(result), true)
}

// warnUnknown prints a warning for every name the directory does not know.
func warnUnknown(cmd *cobra.Command, eng *kin.Engine, names ...string) {
	for _, name := range names {
		if _, ok := eng.ResolveName(name); !ok {
			printWarning(cmd.ErrOrStderr(), "nobody named %q in the dataset", name)
		}
	}
}

// completeNames offers display names for the first n positional arguments.
func (c *CLI) completeNames(n int) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) >= n {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		if err := c.loadConfig(); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		eng, err := c.loadEngine(cmd.Context())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return eng.Directory().Names(), cobra.ShellCompDirectiveNoFileComp
	}
}
