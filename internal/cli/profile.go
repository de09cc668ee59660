package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/easeaico/shadow/internal/repository"
	"github.com/easeaico/shadow/internal/types"
)

func init() {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or set the persona used in chat",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		Run:   runProfileShow,
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "Create or replace the profile",
		Run:   runProfileSet,
	}
	set.Flags().String("name", "", "Display name")
	set.Flags().Int("age", 0, "Age")
	set.Flags().String("gender", "", "Gender")
	set.Flags().String("profession", "", "Profession")
	set.Flags().String("shadow-type", "Friend", "Persona Shadow should adopt")
	set.Flags().String("focus", "", "Current focus for the week or month")

	profileCmd.AddCommand(show, set)
	RootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) {
	a := openApp(cmd)
	defer a.Close()

	p, err := a.Store.Profiles.Get(cmd.Context(), userID())
	if errors.Is(err, repository.ErrNotFound) {
		printJSON(map[string]string{"profile": "Standard User"})
		return
	}
	if err != nil {
		exitErr("profile show", err)
	}
	printJSON(p)
}

func runProfileSet(cmd *cobra.Command, args []string) {
	flags := cmd.Flags()
	name, _ := flags.GetString("name")
	age, _ := flags.GetInt("age")
	gender, _ := flags.GetString("gender")
	profession, _ := flags.GetString("profession")
	shadowType, _ := flags.GetString("shadow-type")
	focus, _ := flags.GetString("focus")

	a := openApp(cmd)
	defer a.Close()

	p := &types.UserProfile{
		UserID:       userID(),
		Name:         name,
		Age:          age,
		Gender:       gender,
		Profession:   profession,
		ShadowType:   shadowType,
		CurrentFocus: focus,
	}
	if err := a.Store.Profiles.Upsert(cmd.Context(), p); err != nil {
		exitErr("profile set", err)
	}
	printJSON(p)
}
