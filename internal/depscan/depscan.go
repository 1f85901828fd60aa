// Package depscan recovers object dependencies that a catalog snapshot
// alone cannot express: which functions and relations a function body
// or view definition actually references. It replaces the teacher's
// regex-based functionCallRegex/viewDependsOnView scan with a real SQL
// parse, so a dotted identifier buried in a string literal or a
// comment no longer produces a false dependency edge.
package depscan

import (
	"fmt"
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"
)

// Reference is a possibly schema-qualified name found while walking a
// parsed statement. Schema is empty when the reference was unqualified
// in the source text; callers resolve that against whatever default
// schema applies.
type Reference struct {
	Schema string
	Name   string
}

func (r Reference) String() string {
	if r.Schema == "" {
		return r.Name
	}
	return r.Schema + "." + r.Name
}

// FunctionCalls parses sql -- one or more complete SQL statements,
// such as a SQL-language function body -- and returns every function
// call it references, deduplicated and in first-seen order. A bare
// expression (a CHECK constraint or column default on its own) does
// not parse; it has to be wrapped in a statement such as
// "SELECT 1 WHERE <expr>".
func FunctionCalls(sql string) ([]Reference, error) {
	tree, err := pg_query.Parse(sql)
	if err != nil {
		return nil, fmt.Errorf("depscan: parse: %w", err)
	}

	seen := make(map[string]bool)
	var out []Reference
	add := func(r Reference) {
		key := r.String()
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, r)
	}

	w := &walker{onFuncCall: add}
	for _, stmt := range tree.Stmts {
		w.walkNode(stmt.Stmt)
	}
	return out, nil
}

// TableReferences parses sql -- expected to be a single SELECT, such
// as a view's defining query -- and returns every base relation it
// reads from in a FROM or JOIN clause, deduplicated and in first-seen
// order. It does not resolve CTE names against real tables; callers
// should drop any reference that matches a WITH clause alias in the
// same statement.
func TableReferences(sql string) ([]Reference, error) {
	tree, err := pg_query.Parse(sql)
	if err != nil {
		return nil, fmt.Errorf("depscan: parse: %w", err)
	}

	seen := make(map[string]bool)
	var out []Reference
	add := func(r Reference) {
		key := r.String()
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, r)
	}

	w := &walker{onRangeVar: add}
	for _, stmt := range tree.Stmts {
		w.walkNode(stmt.Stmt)
	}
	return out, nil
}

// walker does a manual recursive descent over the handful of node
// kinds a function body or view query actually contains. Unhandled
// node kinds are silently skipped rather than erroring out, so any
// function call or relation inside them is not reported and yields no
// dependency edge.
type walker struct {
	onFuncCall func(Reference)
	onRangeVar func(Reference)
}

func (w *walker) emitFuncName(parts []*pg_query.Node) {
	if w.onFuncCall == nil {
		return
	}
	var names []string
	for _, p := range parts {
		if s := p.GetString_(); s != nil {
			names = append(names, s.Sval)
		}
	}
	switch len(names) {
	case 0:
		return
	case 1:
		w.onFuncCall(Reference{Name: names[0]})
	default:
		w.onFuncCall(Reference{Schema: strings.Join(names[:len(names)-1], "."), Name: names[len(names)-1]})
	}
}

func (w *walker) emitRangeVar(rv *pg_query.RangeVar) {
	if w.onRangeVar == nil || rv == nil {
		return
	}
	w.onRangeVar(Reference{Schema: rv.Schemaname, Name: rv.Relname})
}

func (w *walker) walkNode(n *pg_query.Node) {
	if n == nil {
		return
	}
	switch stmt := n.Node.(type) {
	case *pg_query.Node_SelectStmt:
		w.walkSelect(stmt.SelectStmt)
	case *pg_query.Node_CreateFunctionStmt:
		// the SQL-language function body, if any, is carried as an
		// OptionsList entry named "as"; it is not walked, so calls
		// inside a CREATE FUNCTION statement's body are not reported.
	case *pg_query.Node_RangeVar:
		w.emitRangeVar(stmt.RangeVar)
	case *pg_query.Node_RangeSubselect:
		w.walkNode(stmt.RangeSubselect.Subquery)
	case *pg_query.Node_JoinExpr:
		w.walkNode(stmt.JoinExpr.Larg)
		w.walkNode(stmt.JoinExpr.Rarg)
		w.walkNode(stmt.JoinExpr.Quals)
	case *pg_query.Node_FuncCall:
		w.emitFuncName(stmt.FuncCall.Funcname)
		for _, arg := range stmt.FuncCall.Args {
			w.walkNode(arg)
		}
	case *pg_query.Node_RangeFunction:
		for _, f := range stmt.RangeFunction.Functions {
			w.walkNode(f)
		}
	case *pg_query.Node_BoolExpr:
		for _, arg := range stmt.BoolExpr.Args {
			w.walkNode(arg)
		}
	case *pg_query.Node_AExpr:
		w.walkNode(stmt.AExpr.Lexpr)
		w.walkNode(stmt.AExpr.Rexpr)
	case *pg_query.Node_TypeCast:
		w.walkNode(stmt.TypeCast.Arg)
	case *pg_query.Node_CaseExpr:
		for _, when := range stmt.CaseExpr.Args {
			w.walkNode(when)
		}
		w.walkNode(stmt.CaseExpr.Defresult)
	case *pg_query.Node_CaseWhen:
		w.walkNode(stmt.CaseWhen.Expr)
		w.walkNode(stmt.CaseWhen.Result)
	case *pg_query.Node_SubLink:
		w.walkNode(stmt.SubLink.Subselect)
		w.walkNode(stmt.SubLink.Testexpr)
	case *pg_query.Node_ResTarget:
		w.walkNode(stmt.ResTarget.Val)
	case *pg_query.Node_CoalesceExpr:
		for _, arg := range stmt.CoalesceExpr.Args {
			w.walkNode(arg)
		}
	case *pg_query.Node_List:
		for _, item := range stmt.List.Items {
			w.walkNode(item)
		}
	case *pg_query.Node_WithClause:
		for _, cte := range stmt.WithClause.Ctes {
			w.walkNode(cte)
		}
	case *pg_query.Node_CommonTableExpr:
		w.walkNode(stmt.CommonTableExpr.Ctequery)
	}
}

func (w *walker) walkSelect(s *pg_query.SelectStmt) {
	if s == nil {
		return
	}
	if s.WithClause != nil {
		for _, cte := range s.WithClause.Ctes {
			w.walkNode(cte)
		}
	}
	for _, t := range s.TargetList {
		w.walkNode(t)
	}
	for _, f := range s.FromClause {
		w.walkNode(f)
	}
	w.walkNode(s.WhereClause)
	for _, g := range s.GroupClause {
		w.walkNode(g)
	}
	w.walkNode(s.HavingClause)
	if s.Larg != nil {
		w.walkSelect(s.Larg)
	}
	if s.Rarg != nil {
		w.walkSelect(s.Rarg)
	}
}
