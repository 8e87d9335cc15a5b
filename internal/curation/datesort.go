package curation

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"portfolio-admin/internal/domain/works"
)

var dateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"January 2006",
	"Jan 2006",
	"2006",
}

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// exhibitionDate is the date an exhibition sorts by. StartDate wins when set; otherwise the
// free-text Dates is read on a best-effort basis.
func exhibitionDate(e works.ExhibitionEntry) (time.Time, bool) {
	if e.StartDate != "" {
		if t, err := time.Parse("2006-01-02", e.StartDate); err == nil {
			return t, true
		}
	}
	return parseDates(e.Dates)
}

// parseDates reads the start of strings like "Jan 15 - Feb 28, 2024", "Spring 2023" or
// "15 March 2022". Month and day default to the 1st when missing; no year means no date.
func parseDates(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	year, day := 0, 0
	var month time.Month
	for i, tok := range tokens {
		if year == 0 && len(tok) == 4 {
			if n, err := strconv.Atoi(tok); err == nil {
				year = n
			}
		}
		if month != 0 {
			continue
		}
		m, ok := monthFromName(tok)
		if !ok {
			continue
		}
		month = m
		if i+1 < len(tokens) {
			day = dayNumber(tokens[i+1])
		}
		if day == 0 && i > 0 {
			day = dayNumber(tokens[i-1])
		}
	}

	if year == 0 {
		return time.Time{}, false
	}
	if month == 0 {
		month = time.January
	}
	if day == 0 {
		day = 1
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

func monthFromName(tok string) (time.Month, bool) {
	if len(tok) < 3 {
		return 0, false
	}
	tok = strings.ToLower(tok)
	for i, name := range monthNames {
		if strings.HasPrefix(name, tok) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

func dayNumber(tok string) int {
	tok = strings.TrimRightFunc(tok, unicode.IsLetter) // 1st, 22nd
	n, err := strconv.Atoi(tok)
	if err != nil || n < 1 || n > 31 {
		return 0
	}
	return n
}
