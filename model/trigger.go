package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/evergreen-ci/tcgen"
	"github.com/evergreen-ci/tcgen/util"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/robfig/cron"
)

// NightlyTriggerConfiguration describes when a nightly build fires. Days of
// the week use TeamCity's numbering, Sunday=1 through Saturday=7, in the
// usual cron list syntax ("1-3,5-7"). "*" means every day. Literals only
// need the fields that differ from the defaults; see WithDefaults.
type NightlyTriggerConfiguration struct {
	Branch      string `yaml:"branch" json:"branch"`
	Enabled     bool   `yaml:"enabled" json:"enabled"`
	StartHour   int    `yaml:"start_hour" json:"start_hour"`
	DaysOfWeek  string `yaml:"days_of_week" json:"days_of_week"`
	DaysOfMonth string `yaml:"days_of_month" json:"days_of_month"`
	Timezone    string `yaml:"timezone" json:"timezone"`
}

type TriggerOption func(*NightlyTriggerConfiguration)

// NewNightlyTriggerConfiguration returns an enabled trigger on the default
// branch that fires at the default hour every day, with opts applied.
func NewNightlyTriggerConfiguration(opts ...TriggerOption) NightlyTriggerConfiguration {
	c := NightlyTriggerConfiguration{
		Branch:      tcgen.DefaultBranchName,
		Enabled:     true,
		StartHour:   tcgen.DefaultStartHour,
		DaysOfWeek:  tcgen.DefaultDaysOfWeek,
		DaysOfMonth: tcgen.DefaultDaysOfMonth,
		Timezone:    tcgen.TriggerTimezone,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithDefaults returns a copy with unset fields filled from the defaults.
// NewNightlyTriggerConfiguration always sets a branch, so a trigger without
// one is a literal naming only the fields it changes: it is enabled and a
// zero start hour means the default hour. Build a midnight trigger with
// NewNightlyTriggerConfiguration(StartHour(0)).
func (c NightlyTriggerConfiguration) WithDefaults() NightlyTriggerConfiguration {
	if c.Branch == "" {
		c.Branch = tcgen.DefaultBranchName
		c.Enabled = true
		if c.StartHour == 0 {
			c.StartHour = tcgen.DefaultStartHour
		}
	}
	if c.DaysOfWeek == "" {
		c.DaysOfWeek = tcgen.DefaultDaysOfWeek
	}
	if c.DaysOfMonth == "" {
		c.DaysOfMonth = tcgen.DefaultDaysOfMonth
	}
	if c.Timezone == "" {
		c.Timezone = tcgen.TriggerTimezone
	}
	return c
}

func DaysOfWeek(days string) TriggerOption {
	return func(c *NightlyTriggerConfiguration) { c.DaysOfWeek = days }
}

func DaysOfMonth(days string) TriggerOption {
	return func(c *NightlyTriggerConfiguration) { c.DaysOfMonth = days }
}

func StartHour(hour int) TriggerOption {
	return func(c *NightlyTriggerConfiguration) { c.StartHour = hour }
}

func OnBranch(branch string) TriggerOption {
	return func(c *NightlyTriggerConfiguration) { c.Branch = branch }
}

func Disabled() TriggerOption {
	return func(c *NightlyTriggerConfiguration) { c.Enabled = false }
}

// BranchFilter is the TeamCity branch filter for the trigger.
func (c NightlyTriggerConfiguration) BranchFilter() string {
	return "+:" + c.Branch
}

// Days returns the days of the week the trigger fires on, in TeamCity
// numbering and ascending order.
func (c NightlyTriggerConfiguration) Days() ([]int, error) {
	days, err := parseList(c.DaysOfWeek, 1, 7)
	return days, errors.Wrap(err, "parsing days of week")
}

// MonthDays returns the days of the month the trigger fires on.
func (c NightlyTriggerConfiguration) MonthDays() ([]int, error) {
	days, err := parseList(c.DaysOfMonth, 1, 31)
	return days, errors.Wrap(err, "parsing days of month")
}

// EveryDay reports whether the trigger is unrestricted by day of week.
func (c NightlyTriggerConfiguration) EveryDay() bool {
	days, err := c.Days()
	return err == nil && len(days) == 7
}

func (c NightlyTriggerConfiguration) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.NewWhen(c.Branch == "", "branch must be set")
	catcher.ErrorfWhen(c.StartHour < 0 || c.StartHour > 23, "start hour %d is not between 0 and 23", c.StartHour)
	if _, err := c.Schedule(); err != nil {
		catcher.Add(err)
	}
	return catcher.Resolve()
}

// CronSpec converts the trigger to a standard five field cron expression.
// Cron numbers days of the week from Sunday=0, so TeamCity's days are
// shifted down by one.
func (c NightlyTriggerConfiguration) CronSpec() (string, error) {
	weekDays, err := c.Days()
	if err != nil {
		return "", err
	}
	monthDays, err := c.MonthDays()
	if err != nil {
		return "", err
	}

	dow := "*"
	if len(weekDays) < 7 {
		cronDays := make([]int, 0, len(weekDays))
		for _, d := range weekDays {
			cronDays = append(cronDays, d-1)
		}
		dow = joinInts(cronDays)
	}
	dom := "*"
	if len(monthDays) < 31 {
		dom = joinInts(monthDays)
	}

	return fmt.Sprintf("0 %d %s * %s", c.StartHour, dom, dow), nil
}

// Schedule parses the trigger's cron spec.
func (c NightlyTriggerConfiguration) Schedule() (cron.Schedule, error) {
	spec, err := c.CronSpec()
	if err != nil {
		return nil, err
	}
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing cron spec '%s'", spec)
	}
	return sched, nil
}

// NextRuns returns the next n times the trigger fires after from. The
// server timezone is unknown here, so times are computed in from's
// location. A disabled trigger never fires.
func (c NightlyTriggerConfiguration) NextRuns(from time.Time, n int) ([]time.Time, error) {
	if !c.Enabled {
		return nil, nil
	}
	sched, err := c.Schedule()
	if err != nil {
		return nil, err
	}

	out := make([]time.Time, 0, n)
	next := from
	for i := 0; i < n; i++ {
		next = sched.Next(next)
		if next.IsZero() {
			break
		}
		out = append(out, next)
	}
	return out, nil
}

// Offset returns a copy of the trigger that fires the given number of hours
// later. When the new hour wraps past midnight the days of the week move
// forward by one. Days of the month are not shifted.
func (c NightlyTriggerConfiguration) Offset(hours int) NightlyTriggerConfiguration {
	out := c
	total := c.StartHour + hours
	out.StartHour = ((total % 24) + 24) % 24

	dayShift := (total - out.StartHour) / 24
	if dayShift == 0 || c.EveryDay() {
		return out
	}
	days, err := c.Days()
	if err != nil {
		return out
	}
	shifted := make([]int, 0, len(days))
	for _, d := range days {
		shifted = append(shifted, ((d-1+dayShift)%7+7)%7+1)
	}
	out.DaysOfWeek = joinInts(util.SortedUniqueInts(shifted))
	return out
}

// parseList expands a cron-style list of values and ranges bounded by lo
// and hi. "*" and "?" select every value.
func parseList(expr string, lo, hi int) ([]int, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, errors.New("expression is empty")
	}
	if expr == "*" || expr == "?" {
		return util.IntRange(lo, hi), nil
	}

	var out []int
	for _, item := range strings.Split(expr, ",") {
		item = strings.TrimSpace(item)
		bounds := strings.SplitN(item, "-", 2)
		start, err := parseBounded(bounds[0], lo, hi)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing item '%s'", item)
		}
		end := start
		if len(bounds) == 2 {
			if end, err = parseBounded(bounds[1], lo, hi); err != nil {
				return nil, errors.Wrapf(err, "parsing item '%s'", item)
			}
		}
		if end < start {
			return nil, errors.Errorf("range '%s' is reversed", item)
		}
		out = append(out, util.IntRange(start, end)...)
	}

	return util.SortedUniqueInts(out), nil
}

func parseBounded(s string, lo, hi int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Errorf("'%s' is not a number", s)
	}
	if v < lo || v > hi {
		return 0, errors.Errorf("%d is not between %d and %d", v, lo, hi)
	}
	return v, nil
}

// joinInts renders values as a compact cron list, collapsing runs of three
// or more consecutive values into ranges.
func joinInts(values []int) string {
	var parts []string
	for i := 0; i < len(values); {
		j := i
		for j+1 < len(values) && values[j+1] == values[j]+1 {
			j++
		}
		switch {
		case j-i >= 2:
			parts = append(parts, fmt.Sprintf("%d-%d", values[i], values[j]))
		case j > i:
			parts = append(parts, strconv.Itoa(values[i]), strconv.Itoa(values[j]))
		default:
			parts = append(parts, strconv.Itoa(values[i]))
		}
		i = j + 1
	}
	return strings.Join(parts, ",")
}
