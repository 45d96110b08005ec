package phoenixcel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ptiger10/tablediff"
)

// A Reader can read in a DataFrame from various data sources.
type Reader interface {
	Read() (*DataFrame, error)
}

// ReadOptionDelimiter configures a read function to use `sep` as a field delimiter (default: ",").
func ReadOptionDelimiter(sep rune) ReadOption {
	return func(r *readConfig) {
		r.Delimiter = sep
	}
}

// ReadOptionTrimSpace configures a read function to trim leading and trailing whitespace from every field (default: false).
func ReadOptionTrimSpace(set bool) ReadOption {
	return func(r *readConfig) {
		r.TrimSpace = set
	}
}

func setReadConfig(options []ReadOption) *readConfig {
	config := &readConfig{
		Delimiter: ',',
	}
	for _, option := range options {
		option(config)
	}
	return config
}

// -- [][]string records

// RecordReader reads [][]string records into a DataFrame.
// The first record names the columns, and every later record is one row.
type RecordReader struct {
	TrimSpace bool
	records   [][]string
}

// NewRecordReader returns a default RecordReader.
func NewRecordReader(records [][]string) RecordReader {
	return RecordReader{
		records: records,
	}
}

// Read reads [][]string records to a DataFrame. Every value is read as Text.
// If there are no records, returns an empty DataFrame.
// If there is only a header record, returns a DataFrame with columns but no rows.
func (r RecordReader) Read() (*DataFrame, error) {
	if len(r.records) == 0 {
		return NewDataFrame(), nil
	}
	header := make([]string, len(r.records[0]))
	for k := range header {
		header[k] = r.field(r.records[0][k])
	}
	rows := make([]Row, len(r.records)-1)
	for i, record := range r.records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("reading records: row %d: all rows must have same length as header (%d != %d): %w",
				i, len(record), len(header), ErrShape)
		}
		rows[i] = make(Row, len(header))
		for k, name := range header {
			rows[i][name] = Text(r.field(record[k]))
		}
	}
	df, err := fromRows(rows, header)
	if err != nil {
		return nil, fmt.Errorf("reading records: header: %w", err)
	}
	return df, nil
}

func (r RecordReader) field(s string) string {
	if r.TrimSpace {
		return strings.TrimSpace(s)
	}
	return s
}

// -- encoding/csv

// CSVReader reads an encoding/csv.Reader into a DataFrame.
type CSVReader struct {
	RecordReader
	*csv.Reader
}

// NewCSVReader creates a new CSVReader with embedded encoding/csv reader and default settings.
func NewCSVReader(r io.Reader) CSVReader {
	return CSVReader{
		Reader: csv.NewReader(r),
	}
}

// Read reads every csv record and converts them to a DataFrame, as in RecordReader.Read().
func (r CSVReader) Read() (*DataFrame, error) {
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSVReader: %w: %w", ErrResource, err)
	}
	r.records = records
	df, err := r.RecordReader.Read()
	if err != nil {
		return nil, fmt.Errorf("CSVReader: %w", err)
	}
	return df, nil
}

// ReadCSV reads csv data from `r` into a DataFrame.
// The first line names the columns. Every value is read as Text, without type inference.
// Available options: ReadOptionDelimiter, ReadOptionTrimSpace.
func ReadCSV(r io.Reader, options ...ReadOption) (*DataFrame, error) {
	config := setReadConfig(options)
	reader := NewCSVReader(r)
	reader.Comma = config.Delimiter
	reader.TrimLeadingSpace = config.TrimSpace
	reader.RecordReader.TrimSpace = config.TrimSpace
	df, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("ReadCSV(): %w", err)
	}
	return df, nil
}

// ReadCSVFile reads the csv file at `path` into a DataFrame, as in ReadCSV().
func ReadCSVFile(path string, options ...ReadOption) (*DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadCSVFile(): %w: %w", ErrResource, err)
	}
	defer f.Close()
	df, err := ReadCSV(f, options...)
	if err != nil {
		return nil, fmt.Errorf("ReadCSVFile(): %v: %w", path, err)
	}
	return df, nil
}

// EqualsCSV reads csv data from `want` (configured by `options`), compares it to the DataFrame's CSVRecords(),
// and evaluates whether the stringified values match.
// If they do not match, returns a tablediff.Differences object that can be printed to isolate their differences.
func (df *DataFrame) EqualsCSV(want io.Reader, options ...ReadOption) (bool, *tablediff.Differences, error) {
	config := setReadConfig(options)
	r := csv.NewReader(want)
	r.Comma = config.Delimiter
	r.TrimLeadingSpace = config.TrimSpace
	records, err := r.ReadAll()
	if err != nil {
		return false, nil, fmt.Errorf("EqualsCSV(): %w: %w", ErrResource, err)
	}
	if config.TrimSpace {
		for i := range records {
			for k := range records[i] {
				records[i][k] = strings.TrimSpace(records[i][k])
			}
		}
	}
	diffs, eq := tablediff.Diff(df.CSVRecords(), records)
	return eq, diffs, nil
}
