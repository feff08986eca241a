package arch_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"
)

// TestExportedSymbolsHaveGoDoc verifies that every exported type, function,
// method, var, and const in internal packages has a GoDoc comment starting
// with the symbol name. Members of a documented const/var group, or with an
// inline comment, pass on the group's doc.
func TestExportedSymbolsHaveGoDoc(t *testing.T) {
	t.Parallel()

	for _, pkg := range internalPackages(t) {
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()
			for _, file := range goFilesIn(t, filepath.Join(internalDirPath(t), pkg)) {
				for _, miss := range undocumented(t, file) {
					t.Errorf("%s: %s has no GoDoc comment", relativeFilePath(file), miss)
				}
			}
		})
	}
}

// undocumented returns "kind Name" for each exported declaration in file
// lacking a GoDoc comment.
func undocumented(t *testing.T, file string) []string {
	t.Helper()

	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, file, nil, parser.ParseComments)
	if err != nil {
		t.Fatalf("parsing %s: %v", file, err)
	}

	var missing []string
	for _, decl := range node.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if !d.Name.IsExported() || (d.Recv != nil && !isExportedReceiver(d.Recv)) {
				continue
			}
			if !hasValidGoDoc(docText(d.Doc), d.Name.Name) {
				missing = append(missing, "func "+d.Name.Name)
			}
		case *ast.GenDecl:
			grouped := len(d.Specs) > 1 && d.Doc != nil
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					if s.Name.IsExported() && !hasValidGoDoc(docText(s.Doc, d.Doc), s.Name.Name) {
						missing = append(missing, "type "+s.Name.Name)
					}
				case *ast.ValueSpec:
					for _, name := range s.Names {
						if !name.IsExported() || grouped || s.Comment != nil {
							continue
						}
						if !hasValidGoDoc(docText(s.Doc, d.Doc), name.Name) {
							missing = append(missing, d.Tok.String()+" "+name.Name)
						}
					}
				}
			}
		}
	}
	return missing
}

// hasValidGoDoc reports whether doc starts with the symbol name.
func hasValidGoDoc(doc, symbolName string) bool {
	return strings.HasPrefix(strings.TrimSpace(doc), symbolName)
}

// isExportedReceiver reports whether the method's receiver type is exported.
func isExportedReceiver(recv *ast.FieldList) bool {
	if recv == nil || len(recv.List) == 0 {
		return false
	}
	expr := recv.List[0].Type
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.IsExported()
		default:
			return false
		}
	}
}

// relativeFilePath trims everything before internal/ for shorter messages.
func relativeFilePath(fullPath string) string {
	if idx := strings.Index(filepath.ToSlash(fullPath), "internal/"); idx >= 0 {
		return filepath.ToSlash(fullPath)[idx:]
	}
	return filepath.Base(fullPath)
}
