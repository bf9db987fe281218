package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	apierrors "canpulse/internal/errors"
)

var (
	// ErrEmpty is returned for sources without a header row
	ErrEmpty = errors.New("no header row")

	// ErrNotText is returned for CSV sources that are not UTF-8 text,
	// such as images or archives renamed to .csv
	ErrNotText = errors.New("not UTF-8 text")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads a table from path, choosing the reader by extension:
// .xlsx and .xlsm go through excelize, anything else is parsed as CSV.
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path)
	default:
		return ReadCSVFile(path)
	}
}

// ReadCSVFile opens path and parses it as CSV
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, apierrors.NewParsingError("failed to parse "+filepath.Base(path), err)
	}
	return t, nil
}

// ReadCSV parses comma separated rows. The first record is the header.
// Ragged rows are accepted; blank lines are skipped by encoding/csv.
// Input that is not valid UTF-8 or contains NUL bytes fails with ErrNotText.
func ReadCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return nil, ErrNotText
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rows = append(rows, record)
	}

	return New(header, rows), nil
}

// ReadXLSX reads the first worksheet of an Excel workbook
func ReadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmpty
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	header := rows[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	return New(header, rows[1:]), nil
}
