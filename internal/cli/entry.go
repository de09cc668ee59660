package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/easeaico/shadow/internal/types"
)

func init() {
	entryCmd := &cobra.Command{
		Use:   "entry",
		Short: "Write and manage journal entries",
	}

	add := &cobra.Command{
		Use:   "add [text]",
		Short: "Classify and store an entry",
		Long:  "Classify and store an entry. Text can be a positional arg or piped via stdin.",
		Run:   runEntryAdd,
	}
	add.Flags().String("category", "", "Manual category: Activity, Rant, Idea or Auto")

	list := &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		Run:   runEntryList,
	}
	list.Flags().String("category", "", "Filter by category")
	list.Flags().StringP("tag", "t", "", "Filter by tag")
	list.Flags().IntP("limit", "l", 50, "Max results")

	override := &cobra.Command{
		Use:   "override <id> <category>",
		Short: "Change an entry's category",
		Args:  cobra.ExactArgs(2),
		Run:   runEntryOverride,
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry and its memory",
		Args:  cobra.ExactArgs(1),
		Run:   runEntryDelete,
	}

	entryCmd.AddCommand(add, list, override, del)
	RootCmd.AddCommand(entryCmd)
}

func runEntryAdd(cmd *cobra.Command, args []string) {
	category, _ := cmd.Flags().GetString("category")
	text := strings.TrimSpace(readContent(args))
	if text == "" {
		exitErr("entry add", fmt.Errorf("text is required (positional arg or stdin)"))
	}

	a := openApp(cmd)
	defer a.Close()

	entry, err := a.Journal.CreateEntry(cmd.Context(), userID(), text, category)
	if err != nil {
		exitErr("entry add", err)
	}
	printJSON(entry)
}

func runEntryList(cmd *cobra.Command, args []string) {
	category, _ := cmd.Flags().GetString("category")
	tag, _ := cmd.Flags().GetString("tag")
	limit, _ := cmd.Flags().GetInt("limit")

	filter := types.EntryFilter{Tag: tag, Limit: limit}
	if category != "" {
		st, err := types.ParseStreamType(category)
		if err != nil {
			exitErr("entry list", err)
		}
		filter.StreamType = st
	}

	a := openApp(cmd)
	defer a.Close()

	entries, err := a.Journal.ListEntries(cmd.Context(), userID(), filter)
	if err != nil {
		exitErr("entry list", err)
	}
	printJSON(entries)
}

func runEntryOverride(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer a.Close()

	entry, err := a.Journal.OverrideCategory(cmd.Context(), userID(), args[0], args[1])
	if err != nil {
		exitErr("entry override", err)
	}
	printJSON(entry)
}

func runEntryDelete(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer a.Close()

	if err := a.Journal.DeleteEntry(cmd.Context(), userID(), args[0]); err != nil {
		exitErr("entry delete", err)
	}
	fmt.Printf("deleted %s\n", args[0])
}
