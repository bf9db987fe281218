// Package dataset holds the in-memory tabular model shared by the workflow
// and the view generator.
//
// A Table keeps every cell as text, the way it was read, and converts on
// access: Floats parses a column into float64 with NaN for blank or
// non-numeric cells, which is what every aggregate needs. Tables are read
// from CSV (encoding/csv, UTF-8 BOM tolerated) or from the first sheet of an
// Excel workbook (excelize).
package dataset
