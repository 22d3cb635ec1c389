package model

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Category is the spending or earning bucket a transaction belongs to.
type Category string

// Built-in categories.
const (
	CategoryFood          Category = "Food"
	CategoryRent          Category = "Rent"
	CategoryEntertainment Category = "Entertainment"
	CategoryTransport     Category = "Transport"
	CategoryOther         Category = "Other"
)

// DefaultCategories is the category set used when none is configured.
var DefaultCategories = CategorySet{
	CategoryFood,
	CategoryRent,
	CategoryEntertainment,
	CategoryTransport,
	CategoryOther,
}

// CategorySet is the closed list of categories chosen at configuration time.
// Order is the order categories are offered to the user.
type CategorySet []Category

// NewCategorySet builds a set from names, dropping blanks and duplicates.
func NewCategorySet(names []string) (CategorySet, error) {
	seen := make(map[string]bool, len(names))
	set := make(CategorySet, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		set = append(set, Category(name))
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: no categories configured", ErrInvalidCategory)
	}
	return set, nil
}

// Contains reports whether c is an exact member of the set.
func (s CategorySet) Contains(c Category) bool {
	for _, member := range s {
		if member == c {
			return true
		}
	}
	return false
}

// Lookup resolves a user supplied name to its canonical category,
// ignoring case.
func (s CategorySet) Lookup(name string) (Category, error) {
	name = strings.TrimSpace(name)
	for _, member := range s {
		if strings.EqualFold(string(member), name) {
			return member, nil
		}
	}
	if suggestion, ok := s.Suggest(name); ok {
		return "", fmt.Errorf("%w: %q (did you mean %q?)", ErrInvalidCategory, name, suggestion)
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, name)
}

// Suggest returns the closest category to input by edit distance. It only
// suggests when the distance is small relative to the input length.
func (s CategorySet) Suggest(input string) (Category, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" || len(s) == 0 {
		return "", false
	}

	best := s[0]
	bestDist := -1
	for _, member := range s {
		dist := levenshtein.ComputeDistance(input, strings.ToLower(string(member)))
		if bestDist < 0 || dist < bestDist {
			best = member
			bestDist = dist
		}
	}

	threshold := max(2, len(input)/2)
	if bestDist > threshold {
		return "", false
	}
	return best, true
}

// Next returns the category after c, wrapping around. The empty category
// (all) comes before the first member.
func (s CategorySet) Next(c Category) Category {
	if len(s) == 0 {
		return ""
	}
	if c == "" {
		return s[0]
	}
	for i, member := range s {
		if member == c {
			if i == len(s)-1 {
				return ""
			}
			return s[i+1]
		}
	}
	return ""
}

// Strings returns the category names.
func (s CategorySet) Strings() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = string(c)
	}
	return out
}
