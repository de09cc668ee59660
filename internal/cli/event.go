package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/easeaico/shadow/internal/types"
)

func init() {
	eventCmd := &cobra.Command{
		Use:   "event",
		Short: "Manage calendar events",
	}

	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Create an event",
		Args:  cobra.ExactArgs(1),
		Run:   runEventAdd,
	}
	add.Flags().String("date", "", "Date as YYYY-MM-DD, optionally followed by a time (required)")
	add.Flags().String("time", "", "Time as HH:MM AM/PM")
	add.Flags().String("type", types.EventTypePersonal, "Work or Personal")
	add.MarkFlagRequired("date")

	list := &cobra.Command{
		Use:   "list",
		Short: "List upcoming events",
		Run:   runEventList,
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		Run:   runEventDelete,
	}

	eventCmd.AddCommand(add, list, del)
	RootCmd.AddCommand(eventCmd)
}

func runEventAdd(cmd *cobra.Command, args []string) {
	date, _ := cmd.Flags().GetString("date")
	clock, _ := cmd.Flags().GetString("time")
	eventType, _ := cmd.Flags().GetString("type")

	a := openApp(cmd)
	defer a.Close()

	event, err := a.Events.CreateEvent(cmd.Context(), userID(), types.Event{
		Title: args[0],
		Date:  date,
		Time:  clock,
		Type:  eventType,
	})
	if err != nil {
		exitErr("event add", err)
	}
	printJSON(event)
}

func runEventList(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer a.Close()

	events, err := a.Events.UpcomingEvents(cmd.Context(), userID())
	if err != nil {
		exitErr("event list", err)
	}
	printJSON(events)
}

func runEventDelete(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer a.Close()

	if err := a.Events.DeleteEvent(cmd.Context(), userID(), args[0]); err != nil {
		exitErr("event delete", err)
	}
	fmt.Printf("deleted %s\n", args[0])
}
