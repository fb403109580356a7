package typedjs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typedlint/internal/ast"
	"typedlint/internal/grammar"
	"typedlint/internal/parser"
	"typedlint/internal/source"
	"typedlint/internal/typedjs"
)

func newFile(src string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.ts", []byte(src)))
}

func typedGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g, err := typedjs.Grammar()
	require.NoError(t, err)
	return g
}

func parseTyped(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.New(typedGrammar(t)).Parse(newFile(src), parser.Options{})
	require.NoError(t, err, src)
	return prog
}

func declaratorID(t *testing.T, prog *ast.Program, i int) *ast.Identifier {
	t.Helper()
	decl, ok := prog.Body[i].(*ast.VariableDeclaration)
	require.True(t, ok, "statement %d is %s", i, prog.Body[i].Type())
	id, ok := decl.Declarations[0].ID.(*ast.Identifier)
	require.True(t, ok)
	return id
}

func annotationOf(t *testing.T, n ast.Annotatable) ast.Node {
	t.Helper()
	ann, ok := n.GetTypeAnnotation().(*typedjs.TSTypeAnnotation)
	require.True(t, ok, "no type annotation on %s", n.Type())
	return ann.TypeAnnotation
}

func TestAnnotatedDeclaration(t *testing.T) {
	prog := parseTyped(t, "let x: number = 1;")
	id := declaratorID(t, prog, 0)
	assert.Equal(t, "x", id.Name)
	assert.Equal(t, source.Span{Start: 4, End: 13}, id.Span())

	ann := id.GetTypeAnnotation().(*typedjs.TSTypeAnnotation)
	assert.Equal(t, uint32(5), ann.Span().Start)
	kw, ok := ann.TypeAnnotation.(*typedjs.TSKeyword)
	require.True(t, ok)
	assert.Equal(t, "TSNumberKeyword", kw.Type())
	assert.Equal(t, "number", kw.Keyword)
}

func TestBaseProgramsParseIdentically(t *testing.T) {
	programs := []string{
		"let x = 1;",
		"var type = 1; type = 2; type\nFoo;",
		"var interface_ = 1, as = 2; as + as;",
		"a ? (b) : c; a ? (b) : (c);",
		"switch (x) { case (y): break; default: }",
		"lbl: for (const a of b) { continue lbl; }",
		"f(a < b, c > (d));",
		"class A { x = 1; static y; m(a, b = 2) { return a; } }",
		"const o = { a: 1, b() {}, get c() { return 2; } };",
		"const f = (a, [b], {c}) => a + b + c;",
		"export function g({a}, ...rest) {}",
		"try { a(); } catch (e) { b(e); }",
		"x = y ? z : w;",
		"x = a ? (b) : c => d;",
		"x = a ? (b, c) : d => e;",
		"x = a ? async (b) : c => d;",
		"x = a ? (b) : c => { return d; };",
		"f(a ? (b) : c => d, e);",
	}
	base := parser.New(nil)
	typed := parser.New(typedGrammar(t))
	for _, src := range programs {
		file := newFile(src)
		p1, err := base.Parse(file, parser.Options{})
		require.NoError(t, err, src)
		p2, err := typed.Parse(file, parser.Options{})
		require.NoError(t, err, src)
		assert.Equal(t, ast.ToMap(p1, file), ast.ToMap(p2, file), src)
	}
}

func TestEachExtensionAloneKeepsBaseParsing(t *testing.T) {
	src := "let a = b ? (c) : d; function f(x, y) { return x; }"
	file := newFile(src)
	want, err := parser.New(nil).Parse(file, parser.Options{})
	require.NoError(t, err)

	sets := [][]*grammar.Extension{
		{typedjs.Types()},
		{typedjs.Types(), typedjs.Interfaces()},
		{typedjs.Types(), typedjs.Annotations()},
		typedjs.Extensions(),
	}
	for _, exts := range sets {
		g, err := grammar.Compose(nil, exts...)
		require.NoError(t, err)
		got, err := parser.New(g).Parse(file, parser.Options{})
		require.NoError(t, err, g.Extensions())
		assert.Equal(t, ast.ToMap(want, file), ast.ToMap(got, file), g.Extensions())
	}
}

func TestUnionAndIntersection(t *testing.T) {
	prog := parseTyped(t, "type A = string | number & boolean;")
	alias := prog.Body[0].(*typedjs.TSTypeAliasDeclaration)
	assert.Equal(t, "A", alias.ID.Name)
	u, ok := alias.TypeAnnotation.(*typedjs.TSUnionType)
	require.True(t, ok)
	require.Len(t, u.Types, 2)
	assert.Equal(t, "TSStringKeyword", u.Types[0].Type())
	inter, ok := u.Types[1].(*typedjs.TSIntersectionType)
	require.True(t, ok)
	assert.Equal(t, "TSNumberKeyword", inter.Types[0].Type())
	assert.Equal(t, "TSBooleanKeyword", inter.Types[1].Type())
}

func TestLeadingPipe(t *testing.T) {
	prog := parseTyped(t, "type A =\n  | 'a'\n  | 'b';")
	u := prog.Body[0].(*typedjs.TSTypeAliasDeclaration).TypeAnnotation.(*typedjs.TSUnionType)
	require.Len(t, u.Types, 2)
	lit := u.Types[0].(*typedjs.TSLiteralType).Literal.(*ast.Literal)
	assert.Equal(t, "a", lit.Value)
}

func TestTypeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"empty union", "type A = |;", "Type expected"},
		{"missing annotation type", "let x: = 1;", "Type expected"},
		{"unclosed type arguments", "let x: Array<number;", "'>' expected"},
		{"interface without body", "interface A extends B;", "Unexpected token"},
	}
	p := parser.New(typedGrammar(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(newFile(tt.src), parser.Options{})
			var se *parser.SyntaxError
			require.True(t, errors.As(err, &se), "err = %v", err)
			assert.Contains(t, se.Msg, tt.msg)
		})
	}
}

func TestEmptyUnionPosition(t *testing.T) {
	_, err := parser.New(typedGrammar(t)).Parse(newFile("type A = |;"), parser.Options{})
	var se *parser.SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, uint32(10), se.Span.Start)
}

func TestInterface(t *testing.T) {
	src := `interface Point<T extends object = {}> extends Base, ns.Other<T> {
  x: number;
  y?: string,
  readonly z: T[]
  move(dx: number, dy?: number): void;
  [key: string]: unknown;
}`
	prog := parseTyped(t, src)
	decl, ok := prog.Body[0].(*typedjs.TSInterfaceDeclaration)
	require.True(t, ok)
	assert.Equal(t, "Point", decl.ID.Name)
	require.NotNil(t, decl.TypeParameters)
	tp := decl.TypeParameters.Params[0]
	assert.Equal(t, "T", tp.Name.Name)
	assert.Equal(t, "TSObjectKeyword", tp.Constraint.Type())
	assert.Equal(t, "TSTypeLiteral", tp.Default.Type())

	require.Len(t, decl.Extends, 2)
	assert.Equal(t, "Identifier", decl.Extends[0].Expression.Type())
	assert.Equal(t, "MemberExpression", decl.Extends[1].Expression.Type())
	require.NotNil(t, decl.Extends[1].TypeArguments)

	members := decl.Body.Body
	require.Len(t, members, 5)
	assert.Equal(t, "TSPropertySignature", members[0].Type())
	assert.True(t, members[1].(*typedjs.TSPropertySignature).Optional)
	z := members[2].(*typedjs.TSPropertySignature)
	assert.True(t, z.Readonly)
	assert.Equal(t, "TSArrayType", z.TypeAnnotation.TypeAnnotation.Type())
	m := members[3].(*typedjs.TSMethodSignature)
	require.Len(t, m.Params, 2)
	assert.True(t, m.Params[1].(*ast.Identifier).Optional)
	assert.Equal(t, "TSVoidKeyword", m.ReturnType.TypeAnnotation.Type())
	assert.Equal(t, "TSIndexSignature", members[4].Type())

	// an interface is a statement and a type-only node
	var _ ast.Stmt = decl
	_, isType := prog.Body[0].(ast.TypeNode)
	assert.True(t, isType)
}

func TestExportedInterface(t *testing.T) {
	prog := parseTyped(t, "export interface A { a: string }\nexport type B = A;")
	exp := prog.Body[0].(*ast.ExportNamedDeclaration)
	assert.Equal(t, "TSInterfaceDeclaration", exp.Declaration.Type())
	assert.Equal(t, "TSTypeAliasDeclaration", prog.Body[1].(*ast.ExportNamedDeclaration).Declaration.Type())
}

func TestFunctionAnnotations(t *testing.T) {
	prog := parseTyped(t, "function f(a: number, b?: string, {c}: Opts, ...rest: any[]): boolean { return true; }")
	fn := prog.Body[0].(*ast.FunctionDeclaration)
	require.Len(t, fn.Params, 4)

	a := fn.Params[0].(*ast.Identifier)
	assert.Equal(t, "TSNumberKeyword", annotationOf(t, a).Type())
	b := fn.Params[1].(*ast.Identifier)
	assert.True(t, b.Optional)
	obj := fn.Params[2].(*ast.ObjectPattern)
	assert.Equal(t, "TSTypeReference", annotationOf(t, obj).Type())
	rest := fn.Params[3].(*ast.RestElement)
	assert.Equal(t, "TSArrayType", annotationOf(t, rest).Type())

	ret, ok := fn.ReturnType.(*typedjs.TSTypeAnnotation)
	require.True(t, ok)
	assert.Equal(t, "TSBooleanKeyword", ret.TypeAnnotation.Type())
}

func TestArrowAnnotations(t *testing.T) {
	prog := parseTyped(t, "const f = (x: number, y = 2): string => String(x);")
	arrow := prog.Body[0].(*ast.VariableDeclaration).Declarations[0].Init.(*ast.ArrowFunctionExpression)
	require.Len(t, arrow.Params, 2)
	assert.Equal(t, "AssignmentPattern", arrow.Params[1].Type())
	require.NotNil(t, arrow.ReturnType)
	assert.True(t, arrow.Expression)
}

func TestArrowReturnTypeInConsequent(t *testing.T) {
	prog := parseTyped(t, "x = a ? (b): T => c : d;")
	assign := prog.Body[0].(*ast.ExpressionStatement).Expression.(*ast.AssignmentExpression)
	cond := assign.Right.(*ast.ConditionalExpression)
	arrow, ok := cond.Consequent.(*ast.ArrowFunctionExpression)
	require.True(t, ok, "consequent is %s", cond.Consequent.Type())
	require.NotNil(t, arrow.ReturnType)
	assert.Equal(t, "Identifier", cond.Alternate.Type())

	// без второго двоеточия `(b)` остаётся консеквентом
	prog = parseTyped(t, "x = a ? (b) : c => d;")
	cond = prog.Body[0].(*ast.ExpressionStatement).Expression.(*ast.AssignmentExpression).Right.(*ast.ConditionalExpression)
	assert.Equal(t, "Identifier", cond.Consequent.Type())
	assert.Equal(t, "ArrowFunctionExpression", cond.Alternate.Type())
}

func TestNestedTypeArguments(t *testing.T) {
	prog := parseTyped(t, "let m: Map<string, Array<number>> = new Map();\nlet n: Array<Array<number>>= m;")
	for i := range 2 {
		ref := annotationOf(t, declaratorID(t, prog, i)).(*typedjs.TSTypeReference)
		require.NotNil(t, ref.TypeArguments)
		last := ref.TypeArguments.Params[len(ref.TypeArguments.Params)-1].(*typedjs.TSTypeReference)
		require.NotNil(t, last.TypeArguments)
	}
	assert.NotNil(t, prog.Body[1].(*ast.VariableDeclaration).Declarations[0].Init)
}

func TestAsExpression(t *testing.T) {
	prog := parseTyped(t, "const v = x as unknown as string;\nconst c = [1] as const;\nconst s = a + b as T;")
	outer := prog.Body[0].(*ast.VariableDeclaration).Declarations[0].Init.(*typedjs.TSAsExpression)
	assert.Equal(t, "TSStringKeyword", outer.TypeAnnotation.Type())
	inner := outer.Expression.(*typedjs.TSAsExpression)
	assert.Equal(t, "TSUnknownKeyword", inner.TypeAnnotation.Type())

	c := prog.Body[1].(*ast.VariableDeclaration).Declarations[0].Init.(*typedjs.TSAsExpression)
	ref := c.TypeAnnotation.(*typedjs.TSTypeReference)
	assert.Equal(t, "const", ref.TypeName.(*ast.Identifier).Name)

	s := prog.Body[2].(*ast.VariableDeclaration).Declarations[0].Init.(*typedjs.TSAsExpression)
	assert.Equal(t, "BinaryExpression", s.Expression.Type())
}

func TestTypeForms(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"let a: (err: Error, data?: string) => void;", "TSFunctionType"},
		{"let a: { a: number, b(): void };", "TSTypeLiteral"},
		{"let a: [string, number];", "TSTupleType"},
		{"let a: typeof b;", "TSTypeQuery"},
		{"let a: keyof T;", "TSTypeOperator"},
		{"let a: ns.Type<string>;", "TSTypeReference"},
		{"let a: -1;", "TSLiteralType"},
		{"let a: (string);", "TSStringKeyword"},
		{"let a: null | undefined;", "TSUnionType"},
		{"let a: string[][];", "TSArrayType"},
	}
	for _, tt := range tests {
		prog := parseTyped(t, tt.src)
		assert.Equal(t, tt.want, annotationOf(t, declaratorID(t, prog, 0)).Type(), tt.src)
	}
}

func TestClassAndCatchAnnotations(t *testing.T) {
	prog := parseTyped(t, "class A { x: number = 1; static y: string; m(): void {} }\ntry {} catch (e: unknown) {}")
	body := prog.Body[0].(*ast.ClassDeclaration).Body.Body
	x := body[0].(*ast.PropertyDefinition)
	assert.Equal(t, "TSNumberKeyword", annotationOf(t, x).Type())
	assert.NotNil(t, x.Value)
	assert.True(t, body[1].(*ast.PropertyDefinition).Static)
	assert.NotNil(t, body[2].(*ast.MethodDefinition).Value.ReturnType)

	catch := prog.Body[1].(*ast.TryStatement).Handler
	assert.Equal(t, "TSUnknownKeyword", annotationOf(t, catch.Param.(*ast.Identifier)).Type())
}

func TestVisitorKeysAndWalk(t *testing.T) {
	g := typedGrammar(t)
	keys := g.VisitorKeys()
	assert.Equal(t, []string{"typeAnnotation"}, keys["Identifier"])
	assert.Equal(t, []string{"id", "params", "returnType", "body"}, keys["FunctionDeclaration"])
	assert.Equal(t, []string{"key", "typeAnnotation", "value"}, keys["PropertyDefinition"])
	assert.Equal(t, []string{"id", "typeParameters", "extends", "body"}, keys["TSInterfaceDeclaration"])
	assert.Contains(t, keys, "TSNumberKeyword")

	prog := parseTyped(t, "function f(a: number): string { return ''; }")
	var types []string
	err := ast.Inspect(prog, keys, func(n ast.Node) bool {
		types = append(types, n.Type())
		return true
	})
	require.NoError(t, err)
	assert.Contains(t, types, "TSNumberKeyword")
	assert.Contains(t, types, "TSStringKeyword")
}

func TestWalkFollowsSourceOrder(t *testing.T) {
	src := "class A { x: number = 1; }\n" +
		"function f(a: T, b?: U, ...c: V[]): R { return a; }\n" +
		"const g = (d: T): R => d;\n" +
		"const h = function (e: T): R { return e; };"
	g := typedGrammar(t)
	prog := parseTyped(t, src)
	var last uint32
	err := ast.Walk(prog, g.VisitorKeys(), ast.VisitorFuncs{EnterFn: func(n, _ ast.Node) error {
		start := n.Span().Start
		if start < last {
			t.Errorf("%s at %d entered after offset %d", n.Type(), start, last)
		}
		last = start
		return nil
	}})
	require.NoError(t, err)
}

func TestComposeTwiceIsIdempotent(t *testing.T) {
	once, err := grammar.Compose(nil, typedjs.Extensions()...)
	require.NoError(t, err)
	twice, err := grammar.Compose(once, typedjs.Extensions()...)
	require.NoError(t, err)
	assert.Equal(t, once.Extensions(), twice.Extensions())
	assert.Equal(t, once.VisitorKeys(), twice.VisitorKeys())

	src := "interface I { a: string }\nconst v: I = { a: '' } as I;"
	file := newFile(src)
	p1, err := parser.New(once).Parse(file, parser.Options{})
	require.NoError(t, err)
	p2, err := parser.New(twice).Parse(file, parser.Options{})
	require.NoError(t, err)
	assert.Equal(t, ast.ToMap(p1, file), ast.ToMap(p2, file))
}

func TestAnnotationsRequireTypes(t *testing.T) {
	_, err := grammar.Compose(nil, typedjs.Annotations())
	var ce *grammar.CompositionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, typedjs.AnnotationsName, ce.Extension)
}
