package models

import (
	"strings"

	"gorm.io/datatypes"
)

// str dereferences an optional remote column, defaulting to "".
func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// optional stores "" as NULL so that str(optional(s)) == s for every s.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func techList(tech datatypes.JSONSlice[string]) []string {
	return append(make([]string, 0, len(tech)), tech...)
}

func techColumn(tech []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], 0, len(tech))
	return append(out, tech...)
}

// SplitTech turns the admin form's comma separated input into a tech list.
func SplitTech(input string) []string {
	tech := []string{}
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tech = append(tech, part)
		}
	}
	return tech
}

// JoinTech is the form representation of a tech list.
func JoinTech(tech []string) string {
	return strings.Join(tech, ", ")
}
