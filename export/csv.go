// Package export writes the session report to files: the statistics table
// as CSV, the motion paths as PNG and interactive HTML plots, and an
// optional SQLite archive of runs.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"

	"motiontracker/stats"
)

// CSVHeader is the first row of the statistics table
var CSVHeader = []string{"Object ID", "Total Distance (px)", "Average Speed (px/frame)"}

// WriteCSV writes one row per object to path
func WriteCSV(path string, objects []stats.ObjectStats) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create stats file")
	}

	if err := EncodeCSV(f, objects); err != nil {
		_ = f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close stats file")
}

// EncodeCSV writes the statistics table to w
func EncodeCSV(w io.Writer, objects []stats.ObjectStats) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return errors.Wrap(err, "write header")
	}
	for _, s := range objects {
		row := []string{
			strconv.Itoa(s.ID),
			formatFloat(s.TotalDistance),
			formatFloat(s.AverageSpeed),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "write row for object %d", s.ID)
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

// PrintTable writes a human readable statistics table to w
func PrintTable(w io.Writer, objects []stats.ObjectStats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", CSVHeader[0], CSVHeader[1], CSVHeader[2], "Lifetime (frames)")
	for _, s := range objects {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t\n", s.ID, formatFloat(s.TotalDistance), formatFloat(s.AverageSpeed), s.Lifetime)
	}
	return tw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', stats.Precision, 64)
}
