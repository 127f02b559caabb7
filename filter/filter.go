// Package filter compiles boolean expressions evaluated against torrents,
// used to narrow listings client-side beyond what the WebUI API can filter
// server-side.
//
// Expressions use the expr language, e.g.:
//
//	Ratio > 2.0 && State.IsSeeding()
//	HasTag("iso") && Size > 1024*1024*1024
//	Name contains "ubuntu"
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/qbitctl/qbittorrent"
)

// evalContext is the expression environment: every torrent field, plus a few
// helpers.
type evalContext struct {
	qbittorrent.TorrentInfo
}

// HasTag reports whether the torrent carries the given tag.
func (e evalContext) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the torrent carries at least one of the given tags.
func (e evalContext) HasAnyTag(tags ...string) bool {
	for _, tag := range tags {
		if e.HasTag(tag) {
			return true
		}
	}
	return false
}

// HasAllTags reports whether the torrent carries every one of the given tags.
func (e evalContext) HasAllTags(tags ...string) bool {
	for _, tag := range tags {
		if !e.HasTag(tag) {
			return false
		}
	}
	return len(tags) > 0
}

// IsCompleted reports whether the torrent has finished downloading.
func (e evalContext) IsCompleted() bool {
	return e.Progress >= 1.0
}

// Filter is a compiled torrent filter expression.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into a filter.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression, expr.Env(evalContext{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter expression %q: %w", expression, err)
	}

	return &Filter{
		expression: expression,
		program:    program,
	}, nil
}

// Match evaluates the filter against a single torrent.
func (f *Filter) Match(torrent qbittorrent.TorrentInfo) (bool, error) {
	result, err := expr.Run(f.program, evalContext{TorrentInfo: torrent})
	if err != nil {
		return false, fmt.Errorf("evaluate filter expression %q: %w", f.expression, err)
	}

	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression %q did not evaluate to a boolean", f.expression)
	}
	return matched, nil
}

// Apply returns the subset of torrents matching the filter.
func (f *Filter) Apply(torrents []qbittorrent.TorrentInfo) ([]qbittorrent.TorrentInfo, error) {
	var matched []qbittorrent.TorrentInfo
	for _, torrent := range torrents {
		ok, err := f.Match(torrent)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, torrent)
		}
	}
	return matched, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expression
}
