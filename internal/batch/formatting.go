package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/MeKo-Tech/screentime/internal/chart"
	"github.com/MeKo-Tech/screentime/internal/extract"
)

// formatBatchResults renders per-file results in the requested format.
func formatBatchResults(files []FileResult, format string) (string, error) {
	switch format {
	case "json":
		return formatJSON(files)
	case "csv":
		return formatCSV(files)
	default: // text
		return formatText(files), nil
	}
}

// formatJSON renders results as an indented JSON document.
func formatJSON(files []FileResult) (string, error) {
	doc := struct {
		Images []FileResult `json:"images"`
	}{Images: files}

	bts, err := json.MarshalIndent(doc, "", "  ")
	return string(bts), err
}

// formatCSV renders results as stacked CSV sections per file: the
// hourly table, then the category breakdown, then the app list.
func formatCSV(files []FileResult) (string, error) {
	var output strings.Builder
	writer := csv.NewWriter(&output)

	for _, file := range files {
		if err := writer.Write([]string{"File", file.Path}); err != nil {
			return "", err
		}
		switch {
		case file.Err != nil:
			if err := writer.Write([]string{"Error", file.Error}); err != nil {
				return "", err
			}
		case file.Overall != nil:
			if err := writeOverallCSV(writer, file.Overall); err != nil {
				return "", err
			}
		case file.Category != nil:
			if err := writeCategoryCSV(writer, file.Category); err != nil {
				return "", err
			}
		}
	}

	writer.Flush()
	return output.String(), writer.Error()
}

// hourlyCategoryColumns are the fixed per-category columns of the
// hourly table. A category the screenshot does not show stays zero.
var hourlyCategoryColumns = []string{"Social", "Entertainment"}

// writeOverallCSV emits the three sections of an overall record. The
// hourly table always carries the same columns regardless of which
// categories the screenshot ranked where.
func writeOverallCSV(writer *csv.Writer, res *extract.Result) error {
	header := append([]string{"Hour", "Overall"}, hourlyCategoryColumns...)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, label := range chart.HourLabels {
		hour := res.Hourly[label]
		row := []string{label, strconv.Itoa(hour.Overall)}
		for _, name := range hourlyCategoryColumns {
			row = append(row, strconv.Itoa(hour.Categories[name]))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	if err := writer.Write([]string{"Category", "Time"}); err != nil {
		return err
	}
	for _, c := range res.Categories {
		if err := writer.Write([]string{c.Name, c.Time.String()}); err != nil {
			return err
		}
	}

	if err := writer.Write([]string{"App", "Time"}); err != nil {
		return err
	}
	for _, app := range res.TopApps {
		if err := writer.Write([]string{app.Name, app.Time.String()}); err != nil {
			return err
		}
	}
	return nil
}

// writeCategoryCSV emits the two sections of a category detail record.
func writeCategoryCSV(writer *csv.Writer, res *extract.CategoryDetail) error {
	if err := writer.Write([]string{"Category", "Time"}); err != nil {
		return err
	}
	if err := writer.Write([]string{res.Category, res.TotalTime.String()}); err != nil {
		return err
	}

	if err := writer.Write([]string{"App", "Time"}); err != nil {
		return err
	}
	for _, app := range res.Apps {
		if err := writer.Write([]string{app.Name, app.Time.String()}); err != nil {
			return err
		}
	}
	return nil
}

// formatText renders a human-readable summary per file.
func formatText(files []FileResult) string {
	var output strings.Builder
	for i, file := range files {
		if i > 0 {
			output.WriteString("\n")
		}
		fmt.Fprintf(&output, "# %s\n", file.Path)
		switch {
		case file.Err != nil:
			fmt.Fprintf(&output, "error: %s\n", file.Error)
		case file.Overall != nil:
			writeOverallText(&output, file.Overall)
		case file.Category != nil:
			writeCategoryText(&output, file.Category)
		}
	}
	return output.String()
}

func writeOverallText(output *strings.Builder, res *extract.Result) {
	if res.Date != "" {
		fmt.Fprintf(output, "Date: %s\n", res.Date)
	}
	fmt.Fprintf(output, "Total: %s\n", res.TotalTime)
	for _, c := range res.Categories {
		fmt.Fprintf(output, "  %s: %s\n", c.Name, c.Time)
	}
	if len(res.TopApps) > 0 {
		output.WriteString("Most used:\n")
		for _, app := range res.TopApps {
			fmt.Fprintf(output, "  %s: %s\n", app.Name, app.Time)
		}
	}
	if res.YMaxPixels != nil {
		fmt.Fprintf(output, "Chart scale: %dpx\n", *res.YMaxPixels)
	}
}

func writeCategoryText(output *strings.Builder, res *extract.CategoryDetail) {
	if res.Category != "" {
		fmt.Fprintf(output, "Category: %s\n", res.Category)
	}
	fmt.Fprintf(output, "Total: %s\n", res.TotalTime)
	for _, app := range res.Apps {
		fmt.Fprintf(output, "  %s: %s\n", app.Name, app.Time)
	}
}
