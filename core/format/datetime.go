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

package format

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Default layouts of the date, datetime and time formats.
const (
	LayoutDate     = "2006-01-02"
	LayoutDatetime = "2006-01-02 15:04:05"
	LayoutTime     = "15:04:05"
)

// dateParseFormats lists formats to try when parsing datetime strings, in order of preference.
var dateParseFormats = []string{
	time.RFC3339Nano,          // 2006-01-02T15:04:05.999999999Z07:00
	time.RFC3339,              // 2006-01-02T15:04:05Z07:00
	"2006-01-02T15:04:05",     // ISO without timezone
	"2006-01-02 15:04:05",     // Space separator
	"2006-01-02",              // Date only (midnight)
	"2006/01/02",              // YYYY/MM/DD
	"02-Jan-2006",             // DD-Mon-YYYY
	"Jan 2, 2006",             // Natural format
	"January 2, 2006",         // Full month name
	"2006-01-02T15:04:05.000", // ISO with milliseconds no TZ
	"2006-01-02 15:04:05.000", // Space with milliseconds
}

// FormatTime formats a date-like value with the layout selected by spec.
// The default parameter picks the format type's default layout; a
// parameter containing "2006" is a Go layout and anything else is a
// PHP-style pattern such as "Y-m-d H:i".
func (f *Formatter) FormatTime(value any, spec Spec) (string, error) {
	spec = spec.Normalize()
	t, err := ToTime(value, f.location())
	if err != nil {
		return "", &Error{Format: spec.Type, Value: value, Err: err}
	}
	t = t.In(f.location())

	if spec.Param == Default {
		switch spec.Type {
		case Date:
			return t.Format(LayoutDate), nil
		case Time:
			return t.Format(LayoutTime), nil
		default:
			return t.Format(LayoutDatetime), nil
		}
	}
	if strings.Contains(spec.Param, "2006") {
		return t.Format(spec.Param), nil
	}
	return FormatPattern(t, spec.Param), nil
}

// ToTime converts a date-like value into a time.Time. It accepts
// time.Time, integer and float unix timestamps, numeric strings and any
// string layout understood by dateparse. Naive strings are read in loc.
func ToTime(value any, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, fmt.Errorf("nil time")
		}
		return *v, nil
	case string:
		return ParseDatetime(v, loc)
	case []byte:
		return ParseDatetime(string(v), loc)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return unixTime(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return time.Time{}, fmt.Errorf("timestamp %d out of range", u)
		}
		return unixTime(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		fl := rv.Float()
		if math.IsNaN(fl) || math.IsInf(fl, 0) {
			return time.Time{}, fmt.Errorf("timestamp %v is not finite", fl)
		}
		sec, frac := math.Modf(fl)
		return time.Unix(int64(sec), int64(frac*1e9)), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return time.Time{}, fmt.Errorf("nil pointer")
		}
		return ToTime(rv.Elem().Interface(), loc)
	case reflect.String:
		return ParseDatetime(rv.String(), loc)
	}
	if s, ok := value.(fmt.Stringer); ok {
		return ParseDatetime(s.String(), loc)
	}
	return time.Time{}, fmt.Errorf("unsupported date value of type %T", value)
}

// ParseDatetime attempts to parse a string as a datetime value.
// Tries the common layouts first and falls back to dateparse.
func ParseDatetime(s string, defaultLoc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty datetime")
	}

	if defaultLoc == nil {
		defaultLoc = time.UTC
	}

	// Handle Unix timestamp (numeric)
	if isNumericString(s) {
		return parseUnixTimestamp(s)
	}

	for _, format := range dateParseFormats {
		if t, err := time.ParseInLocation(format, s, defaultLoc); err == nil {
			return t, nil
		}
	}

	t, err := dateparse.ParseIn(s, defaultLoc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse datetime %q: %w", s, err)
	}
	return t, nil
}

// isNumericString checks if a string contains only digits and optional leading minus.
func isNumericString(s string) bool {
	if len(s) == 0 {
		return false
	}
	start := 0
	if s[0] == '-' {
		start = 1
	}
	for i := start; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return start < len(s)
}

// parseUnixTimestamp parses a numeric string as Unix timestamp.
func parseUnixTimestamp(s string) (time.Time, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return unixTime(n), nil
}

// unixTime picks seconds, milliseconds or nanoseconds based on magnitude.
// Thresholds:
//   - Seconds: timestamps up to ~1e11 (year ~5000)
//   - Milliseconds: timestamps from ~1e11 to ~1e16
//   - Nanoseconds: timestamps > 1e16
func unixTime(n int64) time.Time {
	absN := n
	if absN < 0 {
		absN = -absN
	}
	switch {
	case absN > 1e16:
		return time.Unix(0, n)
	case absN > 1e11:
		return time.Unix(n/1000, (n%1000)*1e6)
	default:
		return time.Unix(n, 0)
	}
}

// FormatPattern formats t with a PHP date() style pattern. A backslash
// escapes the following character; unknown letters are copied verbatim.
func FormatPattern(t time.Time, pattern string) string {
	var sb strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' {
			if i+1 < len(runes) {
				i++
				sb.WriteRune(runes[i])
			}
			continue
		}
		sb.WriteString(patternField(t, r))
	}
	return sb.String()
}

func patternField(t time.Time, r rune) string {
	switch r {
	// Day
	case 'd':
		return t.Format("02")
	case 'D':
		return t.Format("Mon")
	case 'j':
		return strconv.Itoa(t.Day())
	case 'l':
		return t.Format("Monday")
	case 'N':
		wd := int(t.Weekday())
		if wd == 0 {
			wd = 7
		}
		return strconv.Itoa(wd)
	case 'S':
		return ordinalSuffix(t.Day())
	case 'w':
		return strconv.Itoa(int(t.Weekday()))
	case 'z':
		return strconv.Itoa(t.YearDay() - 1)
	// Week
	case 'W':
		_, week := t.ISOWeek()
		return fmt.Sprintf("%02d", week)
	// Month
	case 'F':
		return t.Format("January")
	case 'm':
		return t.Format("01")
	case 'M':
		return t.Format("Jan")
	case 'n':
		return strconv.Itoa(int(t.Month()))
	case 't':
		return strconv.Itoa(daysIn(t))
	// Year
	case 'L':
		if daysInYear(t.Year()) == 366 {
			return "1"
		}
		return "0"
	case 'o':
		year, _ := t.ISOWeek()
		return strconv.Itoa(year)
	case 'Y':
		return strconv.Itoa(t.Year())
	case 'y':
		return t.Format("06")
	// Time
	case 'a':
		return t.Format("pm")
	case 'A':
		return t.Format("PM")
	case 'g':
		return t.Format("3")
	case 'G':
		return strconv.Itoa(t.Hour())
	case 'h':
		return t.Format("03")
	case 'H':
		return t.Format("15")
	case 'i':
		return t.Format("04")
	case 's':
		return t.Format("05")
	case 'u':
		return fmt.Sprintf("%06d", t.Nanosecond()/1000)
	case 'v':
		return fmt.Sprintf("%03d", t.Nanosecond()/1e6)
	// Timezone
	case 'e':
		return t.Location().String()
	case 'I':
		if t.IsDST() {
			return "1"
		}
		return "0"
	case 'O':
		return t.Format("-0700")
	case 'P':
		return t.Format("-07:00")
	case 'p':
		if _, offset := t.Zone(); offset == 0 {
			return "Z"
		}
		return t.Format("-07:00")
	case 'T':
		return t.Format("MST")
	case 'Z':
		_, offset := t.Zone()
		return strconv.Itoa(offset)
	// Full date/time
	case 'c':
		return t.Format("2006-01-02T15:04:05-07:00")
	case 'r':
		return t.Format(time.RFC1123Z)
	case 'U':
		return strconv.FormatInt(t.Unix(), 10)
	}
	return string(r)
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysInYear(year int) int {
	return time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC).YearDay()
}
