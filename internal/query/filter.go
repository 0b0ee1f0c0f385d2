// Package query implements the pure filtering functions behind the
// directory and careers pages. Filters never mutate their inputs and
// always return a freshly allocated slice in input order.
package query

import (
	"sort"
	"strings"

	"gradnet/internal/logging"
	"gradnet/internal/store"
)

// All is the sentinel value that disables a discrete filter.
const All = "all"

// FilterPeople returns the people matching the free-text fragment and
// the discrete year/major/industry selections. Text matches are
// case-insensitive substrings against name, company, and title; an
// empty fragment matches everything. Discrete filters match by exact
// equality or the All sentinel. Predicates combine with AND.
func FilterPeople(all []store.Person, text, year, major, industry string) []store.Person {
	needle := strings.ToLower(strings.TrimSpace(text))

	out := make([]store.Person, 0, len(all))
	for _, p := range all {
		if !textMatch(needle, p.Name, p.Company, p.Title) {
			continue
		}
		if !discreteMatch(year, p.GradYear) {
			continue
		}
		if !discreteMatch(major, p.Major) {
			continue
		}
		if !discreteMatch(industry, p.Industry) {
			continue
		}
		out = append(out, p)
	}
	logging.Query("people filter text=%q year=%q major=%q industry=%q matched=%d/%d",
		text, year, major, industry, len(out), len(all))
	return out
}

// FilterJobs returns the postings matching the free-text fragment and
// the employment-type selection. Text matches against title, company,
// and location with the same semantics as FilterPeople.
func FilterJobs(all []store.JobPosting, text, jobType string) []store.JobPosting {
	needle := strings.ToLower(strings.TrimSpace(text))

	out := make([]store.JobPosting, 0, len(all))
	for _, j := range all {
		if !textMatch(needle, j.Title, j.Company, j.Location) {
			continue
		}
		if !discreteMatch(jobType, j.Type) {
			continue
		}
		out = append(out, j)
	}
	logging.Query("job filter text=%q type=%q matched=%d/%d",
		text, jobType, len(out), len(all))
	return out
}

// textMatch reports whether needle is a substring of any field.
// An empty needle is a vacuous match.
func textMatch(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// discreteMatch reports whether the selection accepts the value.
// The All sentinel accepts every value.
func discreteMatch(selection, value string) bool {
	return selection == All || selection == value
}

// Years returns the distinct graduation years present in the directory,
// newest first, with the All sentinel prepended. Used to populate the
// year select widget.
func Years(people []store.Person) []string {
	return options(people, func(p store.Person) string { return p.GradYear }, true)
}

// Majors returns the distinct majors, alphabetical, All first.
func Majors(people []store.Person) []string {
	return options(people, func(p store.Person) string { return p.Major }, false)
}

// Industries returns the distinct industries, alphabetical, All first.
func Industries(people []store.Person) []string {
	return options(people, func(p store.Person) string { return p.Industry }, false)
}

// JobTypes returns the distinct employment types, alphabetical, All first.
func JobTypes(jobs []store.JobPosting) []string {
	seen := make(map[string]bool)
	var vals []string
	for _, j := range jobs {
		if j.Type != "" && !seen[j.Type] {
			seen[j.Type] = true
			vals = append(vals, j.Type)
		}
	}
	sort.Strings(vals)
	return append([]string{All}, vals...)
}

func options(people []store.Person, field func(store.Person) string, descending bool) []string {
	seen := make(map[string]bool)
	var vals []string
	for _, p := range people {
		v := field(p)
		if v != "" && !seen[v] {
			seen[v] = true
			vals = append(vals, v)
		}
	}
	if descending {
		sort.Sort(sort.Reverse(sort.StringSlice(vals)))
	} else {
		sort.Strings(vals)
	}
	return append([]string{All}, vals...)
}
