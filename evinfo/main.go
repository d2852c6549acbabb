package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/argoncube/evdisplay_go/logging"
	evdisplay "github.com/argoncube/evdisplay_go/pkg"
)

var logger = logging.New(os.Stdout, os.Stderr)

func main() {
	group := flag.String("group", evdisplay.DefaultLayout().Group, "Event table group or tree")
	records := flag.Bool("records", true, "List every record")
	flag.Parse()

	if flag.NArg() != 1 {
		logger.Error("Usage: evinfo [flags] <file>")
		os.Exit(2)
	}

	layout := evdisplay.DefaultLayout()
	layout.Group = *group
	if err := describe(os.Stdout, flag.Arg(0), layout, *records); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func describe(w io.Writer, filename string, layout evdisplay.Layout, listRecords bool) error {
	src, err := evdisplay.OpenSource(filename, layout)
	if err != nil {
		return err
	}
	defer src.Close()
	return printSource(w, src, listRecords)
}

func printSource(w io.Writer, src evdisplay.Source, listRecords bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Records:\t%d\n", src.NumRecords())
	for _, field := range src.Schema().Fields() {
		fmt.Fprintf(tw, "Field:\t%s\t%v\n", field.Name, field.Kind)
	}
	if !listRecords {
		return tw.Flush()
	}

	fmt.Fprintln(tw, "\nrecord\tevent\thits")
	var total int
	for record := 0; record < src.NumRecords(); record++ {
		event, err := src.EventIndex(record)
		if err != nil {
			return err
		}
		hits, err := src.HitCount(record)
		if err != nil {
			return err
		}
		total += hits
		fmt.Fprintf(tw, "%d\t%d\t%d\n", record, event, hits)
	}
	fmt.Fprintf(tw, "total\t\t%d\n", total)
	return tw.Flush()
}
