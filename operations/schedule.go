package operations

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cheynewallace/tabby"
	"github.com/evergreen-ci/tcgen/model"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

const scheduleTimeFormat = "Mon 2006-01-02 15:04"

func Schedule() cli.Command {
	const (
		countFlagName = "count"
		buildFlagName = "build"
		fromFlagName  = "from"
	)

	return cli.Command{
		Name:  "schedule",
		Usage: "preview when the scheduled builds of a project tree will run",
		Flags: addProjectFlag(addParamFlag(
			cli.IntFlag{
				Name:  joinFlagNames(countFlagName, "n"),
				Usage: "number of upcoming runs to show per build",
				Value: 3,
			},
			cli.StringFlag{
				Name:  joinFlagNames(buildFlagName, "b"),
				Usage: "only show build configurations whose id contains this string",
			},
			cli.StringFlag{
				Name:  fromFlagName,
				Usage: "RFC3339 time to preview from; defaults to now",
			})...),
		Before: mergeBeforeFuncs(requireKnownProject, requirePositiveInt(countFlagName)),
		Action: func(c *cli.Context) error {
			name := c.String(projectFlagName)
			count := c.Int(countFlagName)
			filter := c.String(buildFlagName)

			from := time.Now()
			if raw := c.String(fromFlagName); raw != "" {
				var err error
				if from, err = time.Parse(time.RFC3339, raw); err != nil {
					return errors.Wrapf(err, "parsing '--%s'", fromFlagName)
				}
			}

			p, err := newContextSettings(c).assemble(name)
			if err != nil {
				return errors.Wrapf(err, "assembling project '%s'", name)
			}

			return printSchedule(os.Stdout, p, filter, from, count)
		},
	}
}

type scheduledRun struct {
	BuildId string
	Cron    string
	Runs    []time.Time
}

// upcomingRuns returns the next count runs of every enabled trigger in the
// tree whose build id contains filter.
func upcomingRuns(p model.Project, filter string, from time.Time, count int) ([]scheduledRun, error) {
	var out []scheduledRun
	for _, bt := range p.AllBuildTypes() {
		if filter != "" && !strings.Contains(bt.Id, filter) {
			continue
		}
		for _, trigger := range bt.Triggers {
			if !trigger.Enabled {
				continue
			}
			spec, err := trigger.CronSpec()
			if err != nil {
				return nil, errors.Wrapf(err, "converting trigger of '%s'", bt.Id)
			}
			runs, err := trigger.NextRuns(from, count)
			if err != nil {
				return nil, errors.Wrapf(err, "computing runs of '%s'", bt.Id)
			}
			out = append(out, scheduledRun{BuildId: bt.Id, Cron: spec, Runs: runs})
		}
	}
	return out, nil
}

func printSchedule(w io.Writer, p model.Project, filter string, from time.Time, count int) error {
	runs, err := upcomingRuns(p, filter, from, count)
	if err != nil {
		return err
	}

	t := tabby.NewCustom(tabwriter.NewWriter(w, 0, 0, 2, ' ', 0))
	t.AddHeader("Build", "Cron", "Next Runs")
	for _, run := range runs {
		formatted := make([]string, 0, len(run.Runs))
		for _, r := range run.Runs {
			formatted = append(formatted, r.Format(scheduleTimeFormat))
		}
		t.AddLine(run.BuildId, run.Cron, strings.Join(formatted, ", "))
	}
	fmt.Fprintf(w, "%d scheduled builds after %s:\n", len(runs), from.Format(scheduleTimeFormat))
	t.Print()
	return nil
}
