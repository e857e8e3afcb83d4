package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/yeelight-protocol/yeelight-go/pkg/log"
)

// buildFilter turns the shared flag values into a log.Filter, or nil
// when everything matches.
func buildFilter(connID, direction, category string) (*log.Filter, error) {
	filter := &log.Filter{ConnectionID: connID}
	any := connID != ""

	switch direction {
	case "":
	case "in":
		d := log.DirectionIn
		filter.Direction = &d
		any = true
	case "out":
		d := log.DirectionOut
		filter.Direction = &d
		any = true
	default:
		return nil, fmt.Errorf("unknown direction %q (valid: in out)", direction)
	}

	switch category {
	case "":
	case "line":
		c := log.CategoryLine
		filter.Category = &c
		any = true
	case "state":
		c := log.CategoryState
		filter.Category = &c
		any = true
	case "error":
		c := log.CategoryError
		filter.Category = &c
		any = true
	case "drop":
		c := log.CategoryDrop
		filter.Category = &c
		any = true
	default:
		return nil, fmt.Errorf("unknown category %q (valid: line state error drop)", category)
	}

	if !any {
		return nil, nil
	}
	return filter, nil
}

func addFilterFlags(fs *flag.FlagSet) (connID, direction, category *string) {
	connID = fs.String("conn-id", "", "keep events of this connection only")
	direction = fs.String("direction", "", "keep one direction (in, out)")
	category = fs.String("category", "", "keep one category (line, state, error, drop)")
	return
}

func runView(args []string) error {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	connID, direction, category := addFilterFlags(fs)
	fs.Parse(args)

	path, err := fileArg(fs)
	if err != nil {
		return err
	}
	filter, err := buildFilter(*connID, *direction, *category)
	if err != nil {
		return err
	}

	events, err := log.ReadEventFile(path, filter)
	if err != nil {
		return err
	}
	for _, event := range events {
		printEvent(event)
	}
	return nil
}

func printEvent(event log.Event) {
	ts := event.Timestamp.Format(time.StampMilli)
	conn := event.ConnectionID
	if len(conn) > 8 {
		conn = conn[:8]
	}

	switch {
	case event.Line != nil:
		fmt.Printf("%s %s [%s] %3s %s\n", ts, conn, event.Category, event.Direction, event.Line.Data)
	case event.StateChange != nil:
		reason := ""
		if event.StateChange.Reason != "" {
			reason = " (" + event.StateChange.Reason + ")"
		}
		fmt.Printf("%s %s [%s] %s -> %s%s\n", ts, conn, event.Category,
			event.StateChange.OldState, event.StateChange.NewState, reason)
	case event.Error != nil:
		ctx := ""
		if event.Error.Context != "" {
			ctx = " in " + event.Error.Context
		}
		fmt.Printf("%s %s [%s] %s%s\n", ts, conn, event.Category, event.Error.Message, ctx)
	default:
		fmt.Printf("%s %s [%s]\n", ts, conn, event.Category)
	}
}

func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Parse(args)

	path, err := fileArg(fs)
	if err != nil {
		return err
	}
	events, err := log.ReadEventFile(path, nil)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("empty log")
		return nil
	}

	byCategory := make(map[string]int)
	byConn := make(map[string]int)
	var bytesIn, bytesOut int
	for _, event := range events {
		byCategory[event.Category.String()]++
		byConn[event.ConnectionID]++
		if event.Line != nil {
			switch event.Direction {
			case log.DirectionIn:
				bytesIn += event.Line.Size
			case log.DirectionOut:
				bytesOut += event.Line.Size
			}
		}
	}

	first, last := events[0].Timestamp, events[len(events)-1].Timestamp
	fmt.Printf("events:      %d\n", len(events))
	fmt.Printf("connections: %d\n", len(byConn))
	fmt.Printf("span:        %s (%s .. %s)\n",
		last.Sub(first).Round(time.Millisecond),
		first.Format(time.RFC3339), last.Format(time.RFC3339))
	fmt.Printf("bytes:       %d in, %d out\n", bytesIn, bytesOut)

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		fmt.Printf("  %-6s %d\n", c, byCategory[c])
	}
	return nil
}

func runFilter(args []string) error {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	connID, direction, category := addFilterFlags(fs)
	out := fs.String("o", "", "output file (required)")
	fs.Parse(args)

	path, err := fileArg(fs)
	if err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("output file required (-o)")
	}
	filter, err := buildFilter(*connID, *direction, *category)
	if err != nil {
		return err
	}

	events, err := log.ReadEventFile(path, filter)
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := log.NewEncoder(f)
	for _, event := range events {
		if err := enc.Encode(event); err != nil {
			return fmt.Errorf("write event: %w", err)
		}
	}
	fmt.Printf("wrote %d event(s) to %s\n", len(events), *out)
	return nil
}
