package agg

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/huangsam/pivotrend/schema"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PeriodKey returns the integer before the first '/' of a period token.
// The second return is false when the token has no leading integer.
func PeriodKey(period string) (int, bool) {
	head, _, _ := strings.Cut(period, "/")
	head = strings.TrimSpace(head)
	end := 0
	for end < len(head) && (unicode.IsDigit(rune(head[end])) || (end == 0 && (head[0] == '-' || head[0] == '+'))) {
		end++
	}
	key, err := strconv.Atoi(head[:end])
	if err != nil {
		return 0, false
	}
	return key, true
}

// comparePeriodsDesc orders numeric periods newest first and puts
// tokens without a leading integer after every numeric one.
func comparePeriodsDesc(a, b string) int {
	ka, okA := PeriodKey(a)
	kb, okB := PeriodKey(b)
	switch {
	case okA && okB:
		return cmp.Compare(kb, ka)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}

// SortRecords orders records by categories 1..k-1 ascending under the collation of tag,
// then by period descending, then by original index. The order is total.
func SortRecords(records []schema.FlatRecord, tag language.Tag) {
	coll := collate.New(tag)
	slices.SortStableFunc(records, func(a, b schema.FlatRecord) int {
		for i := 1; i < len(a.Categories) && i < len(b.Categories); i++ {
			if c := coll.CompareString(a.Categories[i], b.Categories[i]); c != 0 {
				return c
			}
		}
		if c := comparePeriodsDesc(a.Period(), b.Period()); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
}

// PeriodSet returns the distinct periods of records, newest first.
// Periods sharing a key keep their first-appearance order.
func PeriodSet(records []schema.FlatRecord) []string {
	seen := make(map[string]struct{})
	var periods []string
	for _, r := range records {
		p := r.Period()
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		periods = append(periods, p)
	}
	slices.SortStableFunc(periods, comparePeriodsDesc)
	return periods
}
