package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/dontstarve-calendar/internal/calendar"
	"github.com/zapponejosh/dontstarve-calendar/internal/view"
	"github.com/zapponejosh/dontstarve-calendar/internal/worldfile"
)

func newPhasesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "phases",
		Short: "List the moon phases in cycle order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			phases := calendar.Phases()
			if opts.json {
				return writeJSON(cmd, phases)
			}
			for i, p := range phases {
				cmd.Printf("%d. %s\n", i+1, p)
			}
			return nil
		},
	}
}

type seasonOutput struct {
	Label  calendar.Season `json:"label"`
	Length int             `json:"length"`
	Icon   string          `json:"icon"`
}

func newSeasonsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seasons",
		Short: "List the seasons of the year and their lengths",
		Long:  `List the seasons in year order for the --rog, --pace and --starting-season settings.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, _, err := opts.settings(cmd, []string{"1"})
			if err != nil {
				return err
			}
			cal, err := calendar.New(s)
			if err != nil {
				return err
			}

			seasons, lengths := cal.Seasons(), cal.SeasonLengths()
			if opts.json {
				out := make([]seasonOutput, len(seasons))
				for i := range seasons {
					out[i] = seasonOutput{Label: seasons[i], Length: lengths[i], Icon: view.SeasonIcon(seasons[i])}
				}
				return writeJSON(cmd, out)
			}

			for i := range seasons {
				cmd.Printf("  %s %s days\n", seasonTextf(seasons[i], "%-8s"), bold("%d", lengths[i]))
			}
			cmd.Printf("Year length: %s days\n", bold("%d", cal.YearLength()))
			return nil
		},
	}
}

func newPacesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paces",
		Short: "List the season paces and whether each is available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, p := range calendar.Paces() {
				cmd.Printf("  %s %s\n", bool2Text(p.Implemented()), p)
			}
			return nil
		},
	}
}

func newAdvanceCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "advance [days]",
		Short: "Move a world file forward by some days (default 1)",
		Long: `Move the day stored in a --world file forward, or backward with a negative
count, save the file and print the new day. Flags that are set are saved too.
Put -- before a negative count: dstcal advance -w world.toml -- -3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.world == "" {
				return fmt.Errorf("advance needs --world")
			}

			days := int64(1)
			if len(args) == 1 {
				n, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil || n < -calendar.MaxDay || n > calendar.MaxDay {
					return fmt.Errorf("invalid day count %q", args[0])
				}
				days = n
			}

			s, world, err := opts.settings(cmd, nil)
			if err != nil {
				return err
			}
			cal, err := calendar.New(s)
			if err != nil {
				return err
			}
			if err := cal.SetToday(cal.Today() + days); err != nil {
				return err
			}

			if err := worldfile.Save(opts.world, worldfile.FromSettings(world.Name, cal.Settings())); err != nil {
				return err
			}

			snap := cal.Snapshot()
			d := dayOutput{Snapshot: snap, View: view.Build(snap)}
			if opts.json {
				return writeJSON(cmd, d)
			}
			printDay(cmd, d)
			return nil
		},
	}
}
