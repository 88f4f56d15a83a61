package presenter

import (
	"net/url"
	"strings"
)

// Links builds the two outbound links of a resolved entry.
type Links struct {
	PackageBase string // package listing, the name is appended as a path
	SearchBase  string // code search, the name is appended query-escaped
}

// DefaultLinks points at npmjs.com and GitHub search.
func DefaultLinks() Links {
	return Links{
		PackageBase: "https://www.npmjs.com/package/",
		SearchBase:  "https://github.com/search?q=",
	}
}

// Package returns the registry web page of name.
func (l Links) Package(name string) string {
	segments := strings.Split(name, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return l.PackageBase + strings.Join(segments, "/")
}

// Search returns a code search for name.
func (l Links) Search(name string) string {
	return l.SearchBase + url.QueryEscape(name)
}
