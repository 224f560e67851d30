package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/jakechorley/tox-oncall/pkg/core/model"
	"github.com/jakechorley/tox-oncall/pkg/core/scheduler"
)

// DefaultCSVFileName is used when the caller asks for CSV output without naming a file
const DefaultCSVFileName = "toxicology_schedule.csv"

var csvHeader = []string{"Date", "Day", "Fellow"}

// WriteCSV writes the schedule as Date,Day,Fellow rows with ISO dates, in schedule order
func WriteCSV(w io.Writer, schedule []scheduler.ScheduleEntry) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, entry := range schedule {
		record := []string{entry.Date.Format(model.DateLayout), entry.Weekday, entry.Fellow}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", record[0], err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// WriteCSVFile creates (or truncates) path and writes the schedule to it
func WriteCSVFile(path string, schedule []scheduler.ScheduleEntry) (err error) {
	if path == "" {
		path = DefaultCSVFileName
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close csv file: %w", closeErr)
		}
	}()

	return WriteCSV(f, schedule)
}
