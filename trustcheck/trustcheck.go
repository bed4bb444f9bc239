/*
Package trustcheck defines an Analyzer that reports trust-marked calls into
package unsafestorage whose invariant is not documented at the call site.

# Analyzer trustcheck

trustcheck: check that every Unsafe call of unsafestorage documents its invariant

Functions and methods of package unsafestorage whose names begin with Unsafe,
and its constructor NewUnsafe, cannot check the invariants their callers rely
on. The convention is to state that invariant next to every call:

	// invariant: n < len(buckets), enforced by the modulo above.
	b := unsafestorage.NewUnsafe(n)

Taking such a function as a value (f := unsafestorage.NewUnsafe[int], or
m := s.UnsafeMut) is checked like a call, since the value can be called
anywhere.

A use is accepted when a comment containing the marker (by default
"invariant:") sits on its own line directly above the statement holding the
use, sits on the same line as the use, or belongs to the doc comment of the
enclosing function. A comment trailing the previous statement documents that
statement only. Calls in generated files are accepted as well, since code
generators are the intended users of the package; pass -generated=false to
check generated files too.
*/
package trustcheck

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// PackagePath is the import path of the package whose calls are checked.
const PackagePath = "github.com/andrewgazelka/unsafe-storage"

const doc = `check that every Unsafe call of unsafestorage documents its invariant

Functions and methods of package unsafestorage whose names begin with Unsafe,
and its constructor NewUnsafe, cannot check the invariants their callers rely
on. Every call, and every use as a function value, is accepted when a comment
containing the marker sits on its own line directly above the statement holding
it, sits on the same line, or belongs to the doc comment of the enclosing
function.`

// Analyzer reports undocumented trust-marked calls.
var Analyzer = &analysis.Analyzer{
	Name:     "trustcheck",
	Doc:      doc,
	URL:      "https://pkg.go.dev/github.com/andrewgazelka/unsafe-storage/trustcheck",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var (
	marker    string // -marker
	generated bool   // -generated
)

func init() {
	Analyzer.Flags.StringVar(&marker, "marker", "invariant:", "text a comment must contain to document a trust-marked call")
	Analyzer.Flags.BoolVar(&generated, "generated", true, "accept trust-marked calls in generated files without a comment")
}

// IsTrustMarked reports whether a function or method of unsafestorage with the
// given name carries an unchecked obligation.
func IsTrustMarked(name string) bool {
	return name == "NewUnsafe" || strings.HasPrefix(name, "Unsafe")
}

func run(pass *analysis.Pass) (any, error) {
	// The package defining the trust-marked functions (and its internal tests) is
	// where the invariants of Storage itself live.
	if path := strings.TrimSuffix(pass.Pkg.Path(), "_test"); path == PackagePath {
		return nil, nil
	}

	files := make(map[*token.File]*ast.File, len(pass.Files))
	for _, f := range pass.Files {
		files[pass.Fset.File(f.Pos())] = f
	}

	// Every use of a trust-marked function is checked, whether it is called
	// directly or taken as a function value.
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	filter := []ast.Node{(*ast.Ident)(nil)}
	sources := make(map[*token.File][]byte)
	var err error
	inspect.WithStack(filter, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push || err != nil {
			return false
		}
		fn, ok := pass.TypesInfo.Uses[n.(*ast.Ident)].(*types.Func)
		if !ok || fn.Pkg() == nil || fn.Pkg().Path() != PackagePath || !IsTrustMarked(fn.Name()) {
			return true
		}

		tf := pass.Fset.File(n.Pos())
		file := files[tf]
		if file == nil {
			return true
		}
		if generated && ast.IsGenerated(file) {
			return true
		}
		src, ok := sources[tf]
		if !ok {
			src, err = pass.ReadFile(tf.Name())
			if err != nil {
				err = fmt.Errorf("read %s: %w", tf.Name(), err)
				return false
			}
			sources[tf] = src
		}

		use := callee(stack)
		if documented(pass.Fset, file, src, use, stack) {
			return true
		}

		pass.Reportf(use.Pos(), "%s is trust-marked; document the invariant it relies on with a %q comment", fn.Name(), "// "+strings.TrimSuffix(marker, ":"))
		return true
	})
	return nil, err
}

// callee returns the expression naming the trust-marked function, given the
// stack ending with its identifier: the identifier itself, or the selector,
// instantiation or parentheses around it.
func callee(stack []ast.Node) ast.Expr {
	use := stack[len(stack)-1].(ast.Expr)
	for i := len(stack) - 2; i >= 0; i-- {
		switch p := stack[i].(type) {
		case *ast.SelectorExpr:
			if p.Sel != use {
				return use
			}
		case *ast.IndexExpr:
			if p.X != use {
				return use
			}
		case *ast.IndexListExpr:
			if p.X != use {
				return use
			}
		case *ast.ParenExpr:
		default:
			return use
		}
		use = stack[i].(ast.Expr)
	}
	return use
}

// documented reports whether a marker comment documents the given use of a
// trust-marked function. The stack holds the use's ancestors, outermost first.
func documented(fset *token.FileSet, file *ast.File, src []byte, use ast.Expr, stack []ast.Node) bool {
	useLine := fset.Position(use.Pos()).Line

	// The statement (or declaration) holding the use anchors the comment above
	// it, so that a call on a continuation line is documented like the first.
	anchorLine := useLine
anchor:
	for i := len(stack) - 1; i >= 0; i-- {
		switch n := stack[i].(type) {
		case *ast.BlockStmt:
			continue
		case ast.Stmt, *ast.ValueSpec:
			anchorLine = fset.Position(n.Pos()).Line
			break anchor
		}
	}

	// A comment trailing the previous statement belongs to that statement.
	for _, group := range file.Comments {
		start := fset.Position(group.Pos()).Line
		end := fset.Position(group.End()).Line
		above := end == anchorLine-1 && ownLine(fset, src, group)
		if (start == useLine || end == useLine || above) && hasMarker(group) {
			return true
		}
	}

	for _, n := range stack {
		if decl, ok := n.(*ast.FuncDecl); ok && hasMarker(decl.Doc) {
			return true
		}
	}
	return false
}

// ownLine reports whether only whitespace precedes group on its first line.
func ownLine(fset *token.FileSet, src []byte, group *ast.CommentGroup) bool {
	tf := fset.File(group.Pos())
	lineStart := tf.Offset(tf.LineStart(tf.Line(group.Pos())))
	offset := tf.Offset(group.Pos())
	if offset > len(src) {
		return false
	}
	return len(bytes.TrimSpace(src[lineStart:offset])) == 0
}

func hasMarker(group *ast.CommentGroup) bool {
	if group == nil {
		return false
	}
	for _, c := range group.List {
		if strings.Contains(c.Text, marker) {
			return true
		}
	}
	return false
}
