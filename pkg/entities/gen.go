//go:build ignore

// This program generates table.go from the WHATWG named character reference
// list as shipped in the Go distribution's html package.
package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
)

// Entries the html package leaves commented out because their replacement is
// longer than the name. We have no such restriction.
var missing = map[string]string{
	"nLt": "\u226A\u20D2",
	"nGt": "\u226B\u20D2",
}

func main() {
	path := filepath.Join(runtime.GOROOT(), "src", "html", "entity.go")
	file, err := parser.ParseFile(token.NewFileSet(), path, nil, 0)
	if err != nil {
		log.Fatalf("failed to parse %s: %v", path, err)
	}

	full := map[string]string{}
	legacy := map[string]bool{}
	ast.Inspect(file, func(n ast.Node) bool {
		kv, ok := n.(*ast.KeyValueExpr)
		if !ok {
			return true
		}
		key, ok := kv.Key.(*ast.BasicLit)
		if !ok || key.Kind != token.STRING {
			return true
		}
		name, err := strconv.Unquote(key.Value)
		if err != nil {
			log.Fatal(err)
		}
		value := runes(kv.Value)
		if strings.HasSuffix(name, ";") {
			full[strings.TrimSuffix(name, ";")] = value
		} else {
			legacy[name] = true
		}
		return false
	})
	for name, value := range missing {
		full[name] = value
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "// Code generated by gen.go; DO NOT EDIT.")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "package entities")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "// full maps every HTML5 character reference name, without its trailing")
	fmt.Fprintln(&buf, "// semicolon, to its replacement text.")
	fmt.Fprintln(&buf, "var full = map[string]string{")
	for _, name := range sortedKeys(full) {
		fmt.Fprintf(&buf, "\t%q: %s,\n", name, escape(full[name]))
	}
	fmt.Fprintln(&buf, "}")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "// legacy lists the names that are also recognised without a trailing semicolon.")
	fmt.Fprintln(&buf, "var legacy = []string{")
	for _, name := range sortedKeys(legacy) {
		if _, ok := full[name]; !ok {
			log.Fatalf("legacy entity %q has no terminated form", name)
		}
		fmt.Fprintf(&buf, "\t%q,\n", name)
	}
	fmt.Fprintln(&buf, "}")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile("table.go", src, 0o644); err != nil {
		log.Fatal(err)
	}
}

// runes reads a rune literal or a composite literal of rune literals.
func runes(expr ast.Expr) string {
	var sb strings.Builder
	switch v := expr.(type) {
	case *ast.BasicLit:
		r, _, _, err := strconv.UnquoteChar(strings.Trim(v.Value, "'"), '\'')
		if err != nil {
			log.Fatal(err)
		}
		sb.WriteRune(r)
	case *ast.CompositeLit:
		for _, elt := range v.Elts {
			sb.WriteString(runes(elt))
		}
	default:
		log.Fatalf("unexpected value %T", expr)
	}
	return sb.String()
}

func escape(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		if r <= 0xFFFF {
			fmt.Fprintf(&sb, `\u%04X`, r)
		} else {
			fmt.Fprintf(&sb, `\U%08X`, r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
