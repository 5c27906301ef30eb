// Package report renders draw results as plain-text reports and writes them
// to disk.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/randomizedcoder/sorteio/internal/draw"
	"github.com/randomizedcoder/sorteio/internal/parse"
)

// Report kinds. They double as the export filename prefix.
const (
	KindNumbers  = "numbers"
	KindNames    = "names"
	KindTeams    = "teams"
	KindWheel    = "wheel"
	KindComments = "comments"
)

// DateLayout is the layout of the Date line in every report.
const DateLayout = "2006-01-02 15:04:05"

// NumbersReport describes a number draw.
type NumbersReport struct {
	At       time.Time
	Min, Max int64
	Results  []int64
}

// NamesReport describes a name draw.
type NamesReport struct {
	At      time.Time
	Total   int
	Winners []string
}

// TeamsReport describes a team partition.
type TeamsReport struct {
	At    time.Time
	Total int
	Teams []draw.Group[string]
}

// CommentsReport describes a comment draw.
type CommentsReport struct {
	At      time.Time
	Total   int
	Winners []parse.Comment
}

// WheelReport describes a wheel spin.
type WheelReport struct {
	At     time.Time
	Items  []string
	State  draw.WheelState
	Winner int
}

// Numbers renders a number draw.
func Numbers(r NumbersReport) string {
	var b strings.Builder
	header(&b, "NUMBER DRAW RESULT", r.At)
	fmt.Fprintf(&b, "Range: %d to %d\n", r.Min, r.Max)
	fmt.Fprintf(&b, "Quantity: %d\n\n", len(r.Results))

	if len(r.Results) == 1 {
		fmt.Fprintf(&b, "Drawn number: %d\n", r.Results[0])
		return b.String()
	}
	nums := make([]string, len(r.Results))
	for i, n := range r.Results {
		nums[i] = strconv.FormatInt(n, 10)
	}
	fmt.Fprintf(&b, "Drawn numbers: %s\n", strings.Join(nums, ", "))
	return b.String()
}

// Names renders a name draw.
func Names(r NamesReport) string {
	var b strings.Builder
	header(&b, "NAME DRAW RESULT", r.At)
	fmt.Fprintf(&b, "Total names in list: %d\n", r.Total)
	fmt.Fprintf(&b, "Quantity drawn: %d\n\n", len(r.Winners))

	if len(r.Winners) == 1 {
		fmt.Fprintf(&b, "Winner: %s\n", r.Winners[0])
		return b.String()
	}
	b.WriteString("WINNERS:\n")
	for i, w := range r.Winners {
		fmt.Fprintf(&b, "%d. %s\n", i+1, w)
	}
	return b.String()
}

// Teams renders a team partition.
func Teams(r TeamsReport) string {
	var b strings.Builder
	header(&b, "TEAM DRAW RESULT", r.At)
	fmt.Fprintf(&b, "Total participants: %d\n", r.Total)
	fmt.Fprintf(&b, "Number of teams: %d\n\n", len(r.Teams))
	b.WriteString("TEAMS:\n")

	for _, team := range r.Teams {
		fmt.Fprintf(&b, "\n%s (%s):\n", team.Label, members(len(team.Members)))
		for i, m := range team.Members {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, m)
		}
	}
	return b.String()
}

// Comments renders a comment draw.
func Comments(r CommentsReport) string {
	var b strings.Builder
	header(&b, "COMMENT DRAW RESULT", r.At)
	fmt.Fprintf(&b, "Total comments: %d\n", r.Total)
	fmt.Fprintf(&b, "Number of winners: %d\n\n", len(r.Winners))
	b.WriteString("WINNERS:\n")

	for i, c := range r.Winners {
		fmt.Fprintf(&b, "%d. @%s: %s\n", i+1, c.Author, c.Text)
	}
	return b.String()
}

// Wheel renders a wheel spin.
func Wheel(r WheelReport) string {
	var b strings.Builder
	header(&b, "WHEEL DRAW RESULT", r.At)
	fmt.Fprintf(&b, "Segments: %d\n", r.State.SegmentCount)
	fmt.Fprintf(&b, "Final rotation: %.2f degrees\n\n", r.State.FinalRotationDegrees)

	if r.Winner >= 0 && r.Winner < len(r.Items) {
		fmt.Fprintf(&b, "Winner: %s\n", r.Items[r.Winner])
	} else {
		fmt.Fprintf(&b, "Winner: segment %d\n", r.Winner+1)
	}
	return b.String()
}

func header(b *strings.Builder, title string, at time.Time) {
	b.WriteString(title)
	b.WriteString("\n")
	fmt.Fprintf(b, "Date: %s\n", at.Format(DateLayout))
}

func members(n int) string {
	if n == 1 {
		return "1 member"
	}
	return strconv.Itoa(n) + " members"
}
