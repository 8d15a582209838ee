// Package articulation handles LLM output on its way back to the visitor.
//
// Atlas replies may carry inline navigation directives of the form
// [[Label|/path?param=value]]. The UI turns each into a button; this package
// pulls them out so the API can return them as structured data alongside the
// reply text.
package articulation

import (
	"net/url"
	"regexp"
	"strings"
	"sync"
)

// linkPattern matches [[Label|/path...]]. Labels cannot contain '|' or ']'.
var linkPattern = regexp.MustCompile(`\[\[([^\]|]+)\|(/[^\]\s]*)\]\]`)

// Link is one navigation directive found in a reply.
type Link struct {
	Label  string            `json:"label"`
	Path   string            `json:"path"`
	Route  string            `json:"route"`
	Params map[string]string `json:"params,omitempty"`
}

// KnownRoutes lists the site routes and the query params each accepts.
var KnownRoutes = map[string][]string{
	"/celestial-clocks":  {"planet", "sign", "cardinal", "view"},
	"/meteor-steel":      {"stage", "view"},
	"/fallen-starlight":  {"stage"},
	"/story-forge":       {"stage"},
	"/mythology-channel": {"episode"},
	"/games":             {"game"},
	"/mythic-earth":      {"site"},
	"/library":           {"shelf"},
	"/story-of-stories":  {"chapter"},
	"/store":             {"product"},
}

// ExtractLinks returns every link in reply, in order of appearance.
func ExtractLinks(reply string) []Link {
	matches := linkPattern.FindAllStringSubmatch(reply, -1)
	if len(matches) == 0 {
		return nil
	}

	links := make([]Link, 0, len(matches))
	for _, m := range matches {
		links = append(links, parseLink(m[1], m[2]))
	}
	return links
}

// StripLinks replaces each link with its label.
func StripLinks(reply string) string {
	return linkPattern.ReplaceAllStringFunc(reply, func(s string) string {
		m := linkPattern.FindStringSubmatch(s)
		return strings.TrimSpace(m[1])
	})
}

func parseLink(label, path string) Link {
	l := Link{Label: strings.TrimSpace(label), Path: path, Route: path}
	u, err := url.Parse(path)
	if err != nil {
		return l
	}
	l.Route = u.Path
	q := u.Query()
	if len(q) > 0 {
		l.Params = make(map[string]string, len(q))
		for k := range q {
			l.Params[k] = q.Get(k)
		}
	}
	return l
}

// Known reports whether the link targets a known route with known params.
func (l Link) Known() bool {
	allowed, ok := KnownRoutes[l.Route]
	if !ok {
		return false
	}
	for k := range l.Params {
		found := false
		for _, a := range allowed {
			if a == k {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// =============================================================================
// REPLY PROCESSOR
// =============================================================================

// ReplyProcessor turns a raw LLM reply into a Reply.
type ReplyProcessor struct {
	// DropUnknown removes links to routes the site does not have.
	DropUnknown bool

	// MaxLinks caps the links returned; 0 means no cap.
	MaxLinks int

	mu    sync.Mutex
	stats ProcessorStats
}

// ProcessorStats tracks link extraction for monitoring.
type ProcessorStats struct {
	TotalProcessed int `json:"total_processed"`
	LinksFound     int `json:"links_found"`
	UnknownLinks   int `json:"unknown_links"`
}

// Reply is the articulated form of one assistant message.
type Reply struct {
	// Text is the reply as the UI renders it, links intact
	Text string `json:"text"`

	// Plain is Text with every link replaced by its label
	Plain string `json:"plain"`

	Links    []Link   `json:"links,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewReplyProcessor creates a processor with default settings.
func NewReplyProcessor() *ReplyProcessor {
	return &ReplyProcessor{
		DropUnknown: true,
		MaxLinks:    3,
	}
}

// Process extracts links from raw.
func (rp *ReplyProcessor) Process(raw string) *Reply {
	text := strings.TrimSpace(raw)
	r := &Reply{Text: text, Plain: StripLinks(text)}

	found := ExtractLinks(text)
	unknown := 0
	for _, l := range found {
		if !l.Known() {
			unknown++
			r.Warnings = append(r.Warnings, "unknown link target: "+l.Path)
			if rp.DropUnknown {
				continue
			}
		}
		if rp.MaxLinks > 0 && len(r.Links) >= rp.MaxLinks {
			r.Warnings = append(r.Warnings, "link dropped over limit: "+l.Path)
			continue
		}
		r.Links = append(r.Links, l)
	}

	rp.mu.Lock()
	rp.stats.TotalProcessed++
	rp.stats.LinksFound += len(found)
	rp.stats.UnknownLinks += unknown
	rp.mu.Unlock()

	return r
}

// Stats returns a snapshot of the processor counters.
func (rp *ReplyProcessor) Stats() ProcessorStats {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	return rp.stats
}
