package config

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/midbel/chartgeo"
	"github.com/midbel/chartgeo/internal/logging"
	"gopkg.in/yaml.v3"
)

var ErrData = errors.New("invalid data")

type DataError struct {
	File    string
	Line    int
	Message string
}

func (e DataError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

func (e DataError) Unwrap() error {
	return ErrData
}

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Rows gives the rows of the chart: the inline rows when there are any, the
// rows of the data file otherwise.
func (f *File) Rows() ([]chartgeo.Row, error) {
	if len(f.Data.Rows) > 0 {
		return toRows(f.Data.Rows), nil
	}
	if f.Data.File == "" {
		return nil, nil
	}
	file := f.Data.File
	if !filepath.IsAbs(file) {
		file = filepath.Join(f.Dir(), file)
	}
	return ReadRows(file, f.Data.Format)
}

// ReadRows reads the rows in file. The format is guessed from the extension
// of the file when not given.
func ReadRows(file, format string) ([]chartgeo.Row, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if format == "" {
		format = formatOf(file)
	}
	var rows []chartgeo.Row
	switch format {
	case FormatCSV:
		rows, err = readCSV(r)
	case FormatJSON:
		rows, err = readJSON(r)
	case FormatYAML:
		rows, err = readYAML(r)
	default:
		return nil, DataError{File: file, Message: fmt.Sprintf("%s: unsupported format", format)}
	}
	if err != nil {
		var de DataError
		if errors.As(err, &de) {
			de.File = file
			return nil, de
		}
		return nil, DataError{File: file, Message: err.Error()}
	}
	logging.Debug().
		Add(logging.Component("config")).
		Add(logging.File(file)).
		Add(logging.Count(len(rows))).
		Msg("rows loaded")
	return rows, nil
}

func formatOf(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		return FormatJSON
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatCSV
	}
}

// readCSV reads rows whose first line names the columns. Numbers are converted
// and empty cells are missing values.
func readCSV(r io.Reader) ([]chartgeo.Row, error) {
	rs := csv.NewReader(r)
	rs.TrimLeadingSpace = true
	head, err := rs.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	var rows []chartgeo.Row
	for line := 2; ; line++ {
		rec, err := rs.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, DataError{Line: line, Message: err.Error()}
		}
		row := make(chartgeo.Row, len(head))
		for i, name := range head {
			if i >= len(rec) {
				break
			}
			row[name] = cellValue(rec[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cellValue(str string) any {
	str = strings.TrimSpace(str)
	if str == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(str, 64); err == nil {
		return f
	}
	return str
}

func readJSON(r io.Reader) ([]chartgeo.Row, error) {
	var list []map[string]any
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, err
	}
	return toRows(list), nil
}

func readYAML(r io.Reader) ([]chartgeo.Row, error) {
	var list []map[string]any
	if err := yaml.NewDecoder(r).Decode(&list); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return toRows(list), nil
}

func toRows(list []map[string]any) []chartgeo.Row {
	rows := make([]chartgeo.Row, 0, len(list))
	for _, m := range list {
		rows = append(rows, chartgeo.Row(m))
	}
	return rows
}
