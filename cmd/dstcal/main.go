// Command dstcal prints the Don't Starve moon phase and seasons for a day.
//
// Usage:
//
//	dstcal 21
//	dstcal 57 --rog --starting-season autumn
//	dstcal --world my-world.toml --days 5
//	dstcal advance 3 --world my-world.toml
//	dstcal seasons --rog
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zapponejosh/dontstarve-calendar/internal/calendar"
	"github.com/zapponejosh/dontstarve-calendar/internal/worldfile"
)

// maxDays bounds --days so a typo cannot print millions of lines.
const maxDays = 3650

type options struct {
	rog            bool
	dst            bool
	pace           string
	startingSeason string
	world          string
	days           int
	json           bool
	noColor        bool
}

func NewCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "dstcal [day]",
		Short: "Don't Starve moon and season calendar",
		Long: `dstcal computes the moon phase, the current season and the next season
for a Don't Starve day number.

The day comes from the argument or from a --world file. Flags override the
settings stored in the world file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := opts.settings(cmd, args)
			if err != nil {
				return err
			}
			return opts.printDays(cmd, s)
		},
	}

	f := cmd.PersistentFlags()
	f.BoolVar(&opts.rog, "rog", false, "use the Reign of Giants four-season calendar")
	f.BoolVar(&opts.dst, "dst", false, "use the Don't Starve Together moon cycle (implies --rog)")
	f.StringVar(&opts.pace, "pace", string(calendar.PaceDefault), "season pace")
	f.StringVar(&opts.startingSeason, "starting-season", string(calendar.SeasonSummer), "first season of the year")
	f.StringVarP(&opts.world, "world", "w", "", "TOML world file to read settings from")
	f.BoolVar(&opts.json, "json", false, "print JSON instead of text")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.Flags().IntVarP(&opts.days, "days", "n", 1, "number of consecutive days to print")

	cmd.AddCommand(
		newPhasesCommand(opts),
		newSeasonsCommand(opts),
		newPacesCommand(),
		newAdvanceCommand(opts),
	)

	return cmd
}

// settings resolves the calendar settings from the world file (if any), the
// flags that were set explicitly, and the day argument, in that order.
func (o *options) settings(cmd *cobra.Command, args []string) (calendar.Settings, *worldfile.World, error) {
	s := calendar.DefaultSettings(0)

	var world *worldfile.World
	if o.world != "" {
		w, err := worldfile.Load(o.world)
		if err != nil {
			return s, nil, err
		}
		world = &w
		s = w.Settings()
	}

	flags := cmd.Flags()
	if flags.Changed("rog") || world == nil {
		s.RoG = o.rog
	}
	if flags.Changed("dst") || world == nil {
		s.DST = o.dst
	}
	if flags.Changed("pace") || world == nil {
		s.Pace = calendar.Pace(o.pace)
	}
	if flags.Changed("starting-season") || world == nil {
		s.StartingSeason = calendar.Season(o.startingSeason)
	}

	if len(args) == 1 {
		day, err := calendar.ParseDay(args[0])
		if err != nil {
			return s, nil, err
		}
		s.Today = day
	}

	if s.Today == 0 {
		return s, nil, errors.New("a day is required: pass it as an argument or use --world")
	}
	return s, world, nil
}

func main() {
	cmd := NewCommand()
	cmd.SetOut(os.Stdout)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}
