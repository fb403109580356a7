package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
)

// uriToPath gives the name a document is linted under. file:// URIs and
// bare paths become absolute paths. Unsaved buffers such as
// "untitled:Untitled-1" keep their opaque name; they have no directory, so
// only the startup config applies to them.
func uriToPath(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	switch parsed.Scheme {
	case "file", "":
		return cleanPath(parsed.Path)
	}
	name := parsed.Opaque
	if name == "" {
		name = strings.TrimPrefix(parsed.Path, "/")
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return name
}

func cleanPath(p string) string {
	p = filepath.FromSlash(p)
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return filepath.Clean(p)
}

func pathToURI(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// canonicalURI is the key a document is stored under. file:// URIs are
// normalised so that differently escaped forms of one file match; other
// schemes are kept as sent since the client matches them verbatim.
func canonicalURI(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	if parsed.Scheme == "file" || parsed.Scheme == "" {
		return pathToURI(uriToPath(uri))
	}
	return uri
}
