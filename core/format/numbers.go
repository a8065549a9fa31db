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
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// numberSymbols are the digits, separators and grouping sizes a locale
// uses for decimal numbers. They are read back from the x/text printer so
// decimals can be laid out from their exact string form.
type numberSymbols struct {
	zero      rune
	group     string
	decimal   string
	primary   int
	secondary int
	minGroup  int
}

var symbolCache sync.Map // language.Tag -> numberSymbols

func symbolsFor(tag language.Tag) numberSymbols {
	if s, ok := symbolCache.Load(tag); ok {
		return s.(numberSymbols)
	}
	s := readSymbols(message.NewPrinter(tag))
	symbolCache.Store(tag, s)
	return s
}

func readSymbols(p *message.Printer) numberSymbols {
	s := numberSymbols{zero: '0', group: ",", decimal: ".", primary: 3, secondary: 3, minGroup: 1}
	digits, seps := splitDigits(p.Sprint(number.Decimal(1234567.5, number.MinFractionDigits(1))))
	if len(digits) < 2 {
		return s
	}
	s.zero = digits[0][0] - 1
	s.decimal = seps[len(seps)-1]
	ints := digits[:len(digits)-1]
	if len(ints) < 2 {
		s.group = ""
		return s
	}
	s.group = seps[0]
	s.primary = len(ints[len(ints)-1])
	s.secondary = s.primary
	if len(ints) > 2 {
		s.secondary = len(ints[len(ints)-2])
	}
	if short, _ := splitDigits(p.Sprint(number.Decimal(1234))); len(short) == 1 {
		s.minGroup = 2
	}
	return s
}

// splitDigits cuts s into runs of digits and the separators between them.
func splitDigits(s string) (digits [][]rune, seps []string) {
	var run []rune
	var sep strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			if run == nil && len(digits) > 0 {
				seps = append(seps, sep.String())
				sep.Reset()
			}
			run = append(run, r)
			continue
		}
		if run != nil {
			digits = append(digits, run)
			run = nil
		}
		if len(digits) > 0 {
			sep.WriteRune(r)
		}
	}
	if run != nil {
		digits = append(digits, run)
	}
	return digits, seps
}

// format lays out d rounded to the given number of fraction digits.
func (s numberSymbols) format(d decimal.Decimal, digits int) string {
	rounded := d.Round(int32(digits))
	intPart, frac, _ := strings.Cut(rounded.Abs().StringFixed(int32(digits)), ".")
	out := s.groupDigits(intPart)
	if frac != "" {
		out += s.decimal + frac
	}
	if s.zero != '0' {
		out = strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return s.zero + (r - '0')
			}
			return r
		}, out)
	}
	if rounded.IsNegative() {
		return "-" + out
	}
	return out
}

func (s numberSymbols) groupDigits(digits string) string {
	if s.group == "" || s.primary <= 0 || len(digits) < s.primary+s.minGroup {
		return digits
	}
	head, parts := digits[:len(digits)-s.primary], []string{digits[len(digits)-s.primary:]}
	for s.secondary > 0 && len(head) > s.secondary {
		parts = append(parts, head[len(head)-s.secondary:])
		head = head[:len(head)-s.secondary]
	}
	if head != "" {
		parts = append(parts, head)
	}
	slices.Reverse(parts)
	return strings.Join(parts, s.group)
}

// symbolAfterAmount lists languages whose currency pattern puts the symbol
// after the amount, separated by a no-break space.
var symbolAfterAmount = map[string]bool{
	"bg": true, "ca": true, "cs": true, "da": true, "de": true, "el": true,
	"es": true, "et": true, "fi": true, "fr": true, "hr": true, "hu": true,
	"it": true, "lt": true, "lv": true, "nb": true, "no": true, "pl": true,
	"ro": true, "ru": true, "sk": true, "sl": true, "sv": true, "uk": true,
}

func symbolAfter(tag language.Tag) bool {
	if r, _ := tag.Region(); r.String() == "CH" {
		return false
	}
	base, _ := tag.Base()
	return symbolAfterAmount[base.String()]
}
