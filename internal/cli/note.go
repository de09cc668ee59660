package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/easeaico/shadow/internal/journal"
	"github.com/easeaico/shadow/internal/types"
)

func init() {
	noteCmd := &cobra.Command{
		Use:   "note",
		Short: "Manage quick notes",
	}

	add := &cobra.Command{
		Use:   "add [content]",
		Short: "Store a quick note",
		Long:  "Store a quick note. Content can be a positional arg or piped via stdin.",
		Run:   runNoteAdd,
	}
	add.Flags().StringP("priority", "p", "Auto", "Priority: High, Medium, Low or Auto")
	add.Flags().StringP("workspace", "w", types.DefaultWorkspace, "Workspace")
	add.Flags().Bool("encrypted", false, "Content is client-side encrypted")

	list := &cobra.Command{
		Use:   "list",
		Short: "List quick notes",
		Run:   runNoteList,
	}
	list.Flags().StringP("workspace", "w", "", "Filter by workspace")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a quick note",
		Args:  cobra.ExactArgs(1),
		Run:   runNoteUpdate,
	}
	update.Flags().String("content", "", "New content")
	update.Flags().StringP("priority", "p", "", "New priority")
	update.Flags().StringP("workspace", "w", "", "Move to workspace")
	update.Flags().Bool("encrypted", false, "Content is client-side encrypted")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a quick note",
		Args:  cobra.ExactArgs(1),
		Run:   runNoteDelete,
	}

	delWorkspace := &cobra.Command{
		Use:   "delete-workspace <name>",
		Short: "Delete every note in a workspace",
		Args:  cobra.ExactArgs(1),
		Run:   runNoteDeleteWorkspace,
	}

	noteCmd.AddCommand(add, list, update, del, delWorkspace)
	RootCmd.AddCommand(noteCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) {
	priority, _ := cmd.Flags().GetString("priority")
	workspace, _ := cmd.Flags().GetString("workspace")
	encrypted, _ := cmd.Flags().GetBool("encrypted")
	content := strings.TrimSpace(readContent(args))
	if content == "" {
		exitErr("note add", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	a := openApp(cmd)
	defer a.Close()

	note, err := a.Notes.CreateQuickNote(cmd.Context(), userID(), journal.NewQuickNote{
		Content:   content,
		Priority:  types.Priority(priority),
		Workspace: workspace,
		Encrypted: encrypted,
	})
	if err != nil {
		exitErr("note add", err)
	}
	printJSON(note)
}

func runNoteList(cmd *cobra.Command, args []string) {
	workspace, _ := cmd.Flags().GetString("workspace")

	a := openApp(cmd)
	defer a.Close()

	notes, err := a.Notes.ListQuickNotes(cmd.Context(), userID(), workspace)
	if err != nil {
		exitErr("note list", err)
	}
	printJSON(notes)
}

func runNoteUpdate(cmd *cobra.Command, args []string) {
	var upd types.QuickNoteUpdate
	flags := cmd.Flags()
	if flags.Changed("content") {
		v, _ := flags.GetString("content")
		upd.Content = &v
	}
	if flags.Changed("priority") {
		v, _ := flags.GetString("priority")
		p := types.Priority(v)
		upd.Priority = &p
	}
	if flags.Changed("workspace") {
		v, _ := flags.GetString("workspace")
		upd.Workspace = &v
	}
	if flags.Changed("encrypted") {
		v, _ := flags.GetBool("encrypted")
		upd.Encrypted = &v
	}

	a := openApp(cmd)
	defer a.Close()

	note, err := a.Notes.UpdateQuickNote(cmd.Context(), userID(), args[0], upd)
	if err != nil {
		exitErr("note update", err)
	}
	printJSON(note)
}

func runNoteDelete(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer a.Close()

	if err := a.Notes.DeleteQuickNote(cmd.Context(), userID(), args[0]); err != nil {
		exitErr("note delete", err)
	}
	fmt.Printf("deleted %s\n", args[0])
}

func runNoteDeleteWorkspace(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer a.Close()

	count, err := a.Notes.DeleteWorkspace(cmd.Context(), userID(), args[0])
	if err != nil {
		exitErr("note delete-workspace", err)
	}
	fmt.Printf("deleted %d notes from %s\n", count, args[0])
}
