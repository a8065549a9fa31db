/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ColumnType specifies the data type of a CSV column
type ColumnType int

const (
	// TypeAuto auto-detects type from data (default)
	TypeAuto ColumnType = iota
	// TypeString forces string type
	TypeString
	// TypeInt64 forces int64 type
	TypeInt64
	// TypeFloat64 forces float64 type
	TypeFloat64
	// TypeBool forces bool type
	TypeBool
	// TypeDatetime forces time.Time
	TypeDatetime
	// TypeDecimal forces decimal.Decimal, for money and other exact values
	TypeDecimal
)

// ParseColumnType maps a type name such as "int64" or "decimal" to a ColumnType.
func ParseColumnType(name string) (ColumnType, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return TypeAuto, nil
	case "string":
		return TypeString, nil
	case "int", "int64", "integer":
		return TypeInt64, nil
	case "float", "float64":
		return TypeFloat64, nil
	case "bool", "boolean":
		return TypeBool, nil
	case "datetime", "date", "time":
		return TypeDatetime, nil
	case "decimal", "currency":
		return TypeDecimal, nil
	}
	return TypeAuto, fmt.Errorf("unknown column type %q", name)
}

// csvTimeLayouts are the layouts a column must match to be detected as datetime.
var csvTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CSVOptions configures CSV import behavior
type CSVOptions struct {
	// NoHeader indicates the first row is data; columns are then named column_1, column_2, ...
	NoHeader bool
	// Delimiter is the field delimiter (defaults to comma)
	Delimiter rune
	// Types forces the type of specific columns by header name
	Types map[string]ColumnType
	// SampleSize is the number of rows to sample for type detection (default: 100)
	SampleSize int
}

// LoadCSVFile reads a CSV file into records.
func LoadCSVFile(path string, opts CSVOptions) ([]any, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()
	return LoadCSV(file, opts)
}

// LoadCSV reads CSV data into *Record rows with typed values. Empty
// cells become nil.
func LoadCSV(r io.Reader, opts CSVOptions) ([]any, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	var headers []string
	dataRows := records
	if opts.NoHeader {
		headers = make([]string, len(records[0]))
		for i := range headers {
			headers[i] = fmt.Sprintf("column_%d", i+1)
		}
	} else {
		headers = make([]string, len(records[0]))
		for i, h := range records[0] {
			headers[i] = strings.TrimSpace(h)
		}
		dataRows = records[1:]
	}

	sampleSize := opts.SampleSize
	if sampleSize <= 0 {
		sampleSize = 100
	}
	types := detectColumnTypes(headers, dataRows, sampleSize, opts.Types)

	rows := make([]any, 0, len(dataRows))
	for _, row := range dataRows {
		rec := NewRecord()
		for i, header := range headers {
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			rec.Set(header, convertCell(value, types[i]))
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// convertCell parses value as typ. Values that fail to parse are kept as strings.
func convertCell(value string, typ ColumnType) any {
	if value == "" {
		return nil
	}
	switch typ {
	case TypeInt64:
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	case TypeFloat64:
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	case TypeBool:
		if b, ok := parseBool(value); ok {
			return b
		}
	case TypeDatetime:
		if t, ok := parseTime(value); ok {
			return t
		}
	case TypeDecimal:
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return value
}

// detectColumnTypes samples data to determine the type of each column.
// A column takes the narrowest type every non-empty sampled value parses as.
func detectColumnTypes(headers []string, dataRows [][]string, sampleSize int, forced map[string]ColumnType) []ColumnType {
	types := make([]ColumnType, len(headers))

	rowsToSample := sampleSize
	if rowsToSample > len(dataRows) {
		rowsToSample = len(dataRows)
	}

	for i, header := range headers {
		if t, ok := forced[header]; ok && t != TypeAuto {
			types[i] = t
			continue
		}

		isInt, isFloat, isBool, isTime := true, true, true, true
		hasNonEmpty := false
		for j := 0; j < rowsToSample; j++ {
			if i >= len(dataRows[j]) {
				continue
			}
			value := strings.TrimSpace(dataRows[j][i])
			if value == "" {
				continue
			}
			hasNonEmpty = true

			if isInt {
				if _, err := strconv.ParseInt(value, 10, 64); err != nil {
					isInt = false
				}
			}
			if isFloat {
				if _, err := strconv.ParseFloat(value, 64); err != nil {
					isFloat = false
				}
			}
			if isBool {
				if _, ok := parseBool(value); !ok {
					isBool = false
				}
			}
			if isTime {
				if _, ok := parseTime(value); !ok {
					isTime = false
				}
			}
		}

		switch {
		case !hasNonEmpty:
			types[i] = TypeString
		case isBool && !isInt:
			types[i] = TypeBool
		case isInt:
			types[i] = TypeInt64
		case isFloat:
			types[i] = TypeFloat64
		case isTime:
			types[i] = TypeDatetime
		default:
			types[i] = TypeString
		}
	}
	return types
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "1":
		return true, true
	case "false", "no", "0":
		return false, true
	}
	return false, false
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range csvTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
