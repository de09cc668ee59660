package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/easeaico/shadow/internal/insight"
)

func init() {
	insightCmd := &cobra.Command{
		Use:   "insight",
		Short: "Generate insights from your entries (once per day each)",
	}

	weekly := &cobra.Command{
		Use:   "weekly",
		Short: "Find one pattern in your recent entries",
		Run:   runInsightWeekly,
	}

	recap := &cobra.Command{
		Use:   "recap",
		Short: "Summarize today",
		Run:   runInsightRecap,
	}

	insightCmd.AddCommand(weekly, recap)
	RootCmd.AddCommand(insightCmd)
}

func runInsightWeekly(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer a.Close()

	res, err := a.Insights.GenerateWeekly(cmd.Context(), userID())
	if errors.Is(err, insight.ErrRateLimited) {
		exitErr("insight weekly", fmt.Errorf("insight limit reached, you can generate a new analysis tomorrow"))
	}
	if err != nil {
		exitErr("insight weekly", err)
	}
	if res.Insufficient {
		fmt.Println("Not enough data yet.")
		return
	}
	printJSON(res.Insight)
}

func runInsightRecap(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer a.Close()

	recap, err := a.Insights.DailyRecap(cmd.Context(), userID())
	if errors.Is(err, insight.ErrRateLimited) {
		exitErr("insight recap", fmt.Errorf("daily recap limit reached, come back tomorrow"))
	}
	if err != nil {
		exitErr("insight recap", err)
	}
	fmt.Println(recap)
}
