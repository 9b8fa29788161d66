package taggit

import (
	"fmt"
	"slices"

	"github.com/dlclark/regexp2"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Query selects entries for List. Empty fields match everything; set fields
// must all match.
type Query struct {
	// Name matches entries added under exactly this name.
	Name string
	// NamePattern is a regular expression matched against every name.
	NamePattern string
	// Tags must all be set on the entry.
	Tags []string
	// Expr is a boolean expression over Hash, Names and Tags, with the helpers
	// HasTag(tag) and HasName(name). Example: `HasTag("beach") and len(Names) > 1`.
	Expr string
}

// queryEnv is the environment Query.Expr is evaluated against.
type queryEnv struct {
	Hash  string
	Names []string
	Tags  []string
}

func (q queryEnv) HasTag(tag string) bool   { return slices.Contains(q.Tags, tag) }
func (q queryEnv) HasName(name string) bool { return slices.Contains(q.Names, name) }

type matcher struct {
	query   Query
	pattern *regexp2.Regexp
	program *vm.Program
}

func compileQuery(q Query) (*matcher, error) {
	m := &matcher{query: q}

	if q.NamePattern != "" {
		re, err := regexp2.Compile(q.NamePattern, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidQuery, q.NamePattern, err)
		}
		m.pattern = re
	}

	if q.Expr != "" {
		program, err := expr.Compile(q.Expr, expr.Env(queryEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("%w: expression %q: %v", ErrInvalidQuery, q.Expr, err)
		}
		m.program = program
	}

	return m, nil
}

func (m *matcher) match(e *Entry) (bool, error) {
	if m.query.Name != "" && !e.HasName(m.query.Name) {
		return false, nil
	}
	if !e.HasTags(m.query.Tags...) {
		return false, nil
	}

	if m.pattern != nil {
		found := false
		for _, name := range e.Names {
			ok, err := m.pattern.MatchString(name)
			if err != nil {
				return false, fmt.Errorf("match %q: %w", name, err)
			}
			if ok {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}

	if m.program != nil {
		out, err := expr.Run(m.program, queryEnv{Hash: e.Hash, Names: e.Names, Tags: e.Tags})
		if err != nil {
			return false, fmt.Errorf("evaluate %q on %s: %w", m.query.Expr, e.Hash, err)
		}
		ok, _ := out.(bool)
		return ok, nil
	}

	return true, nil
}

// List returns the entries matching q in archive order.
func (a *Archive) List(q Query) ([]*Entry, error) {
	m, err := compileQuery(q)
	if err != nil {
		return nil, err
	}

	var out []*Entry
	for _, e := range a.entries {
		ok, err := m.match(e)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, e)
		}
	}
	return out, nil
}
