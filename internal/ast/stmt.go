package ast

type ExpressionStatement struct {
	StmtBase
	Expression Expr `json:"expression"`
	// Directive is set for prologue strings such as "use strict".
	Directive string `json:"directive,omitempty"`
}

type BlockStatement struct {
	StmtBase
	Body []Stmt `json:"body"`
}

type EmptyStatement struct{ StmtBase }

type DebuggerStatement struct{ StmtBase }

type ReturnStatement struct {
	StmtBase
	Argument Expr `json:"argument"`
}

type LabeledStatement struct {
	StmtBase
	Label *Identifier `json:"label"`
	Body  Stmt        `json:"body"`
}

type BreakStatement struct {
	StmtBase
	Label *Identifier `json:"label"`
}

type ContinueStatement struct {
	StmtBase
	Label *Identifier `json:"label"`
}

type IfStatement struct {
	StmtBase
	Test       Expr `json:"test"`
	Consequent Stmt `json:"consequent"`
	Alternate  Stmt `json:"alternate"`
}

type SwitchStatement struct {
	StmtBase
	Discriminant Expr          `json:"discriminant"`
	Cases        []*SwitchCase `json:"cases"`
}

// SwitchCase has a nil Test for `default:`.
type SwitchCase struct {
	Base
	Test       Expr   `json:"test"`
	Consequent []Stmt `json:"consequent"`
}

type ThrowStatement struct {
	StmtBase
	Argument Expr `json:"argument"`
}

type TryStatement struct {
	StmtBase
	Block     *BlockStatement `json:"block"`
	Handler   *CatchClause    `json:"handler"`
	Finalizer *BlockStatement `json:"finalizer"`
}

type CatchClause struct {
	Base
	Param Pattern         `json:"param"`
	Body  *BlockStatement `json:"body"`
}

type WhileStatement struct {
	StmtBase
	Test Expr `json:"test"`
	Body Stmt `json:"body"`
}

type DoWhileStatement struct {
	StmtBase
	Body Stmt `json:"body"`
	Test Expr `json:"test"`
}

type WithStatement struct {
	StmtBase
	Object Expr `json:"object"`
	Body   Stmt `json:"body"`
}

// ForStatement.Init is a *VariableDeclaration, an Expr or nil.
type ForStatement struct {
	StmtBase
	Init   Node `json:"init"`
	Test   Expr `json:"test"`
	Update Expr `json:"update"`
	Body   Stmt `json:"body"`
}

// ForInStatement.Left is a *VariableDeclaration or a Pattern.
type ForInStatement struct {
	StmtBase
	Left  Node `json:"left"`
	Right Expr `json:"right"`
	Body  Stmt `json:"body"`
}

type ForOfStatement struct {
	StmtBase
	Left  Node `json:"left"`
	Right Expr `json:"right"`
	Body  Stmt `json:"body"`
	Await bool `json:"await"`
}

type VariableDeclaration struct {
	StmtBase
	Declarations []*VariableDeclarator `json:"declarations"`
	Kind         string                `json:"kind"` // var | let | const
}

type VariableDeclarator struct {
	Base
	ID   Pattern `json:"id"`
	Init Expr    `json:"init"`
}

// function is shared by declarations, expressions and arrows.
type function struct {
	ID         *Identifier `json:"id"`
	Params     []Pattern   `json:"params"`
	Generator  bool        `json:"generator"`
	Async      bool        `json:"async"`
	ReturnType Node        `json:"returnType"`
}

func (f *function) FunctionParams() []Pattern { return f.Params }
func (f *function) SetReturnType(ann Node)   { f.ReturnType = ann }
func (f *function) GetReturnType() Node      { return f.ReturnType }

type FunctionDeclaration struct {
	StmtBase
	function
	Body *BlockStatement `json:"body"`
}

type ClassDeclaration struct {
	StmtBase
	class
}

type class struct {
	ID         *Identifier `json:"id"`
	SuperClass Expr        `json:"superClass"`
	Body       *ClassBody  `json:"body"`
}

// ClassBody holds *MethodDefinition, *PropertyDefinition and *StaticBlock.
type ClassBody struct {
	Base
	Body []Node `json:"body"`
}

type MethodDefinition struct {
	Base
	Key      Expr                `json:"key"`
	Value    *FunctionExpression `json:"value"`
	Kind     string              `json:"kind"` // constructor | method | get | set
	Computed bool                `json:"computed"`
	Static   bool                `json:"static"`
}

type PropertyDefinition struct {
	Base
	annotation
	Key      Expr `json:"key"`
	Value    Expr `json:"value"`
	Computed bool `json:"computed"`
	Static   bool `json:"static"`
}

type StaticBlock struct {
	Base
	Body []Stmt `json:"body"`
}

func (*ExpressionStatement) Type() string { return "ExpressionStatement" }
func (*BlockStatement) Type() string      { return "BlockStatement" }
func (*EmptyStatement) Type() string      { return "EmptyStatement" }
func (*DebuggerStatement) Type() string   { return "DebuggerStatement" }
func (*ReturnStatement) Type() string     { return "ReturnStatement" }
func (*LabeledStatement) Type() string    { return "LabeledStatement" }
func (*BreakStatement) Type() string      { return "BreakStatement" }
func (*ContinueStatement) Type() string   { return "ContinueStatement" }
func (*IfStatement) Type() string         { return "IfStatement" }
func (*SwitchStatement) Type() string     { return "SwitchStatement" }
func (*SwitchCase) Type() string          { return "SwitchCase" }
func (*ThrowStatement) Type() string      { return "ThrowStatement" }
func (*TryStatement) Type() string        { return "TryStatement" }
func (*CatchClause) Type() string         { return "CatchClause" }
func (*WhileStatement) Type() string      { return "WhileStatement" }
func (*DoWhileStatement) Type() string    { return "DoWhileStatement" }
func (*WithStatement) Type() string       { return "WithStatement" }
func (*ForStatement) Type() string        { return "ForStatement" }
func (*ForInStatement) Type() string      { return "ForInStatement" }
func (*ForOfStatement) Type() string      { return "ForOfStatement" }
func (*VariableDeclaration) Type() string { return "VariableDeclaration" }
func (*VariableDeclarator) Type() string  { return "VariableDeclarator" }
func (*FunctionDeclaration) Type() string { return "FunctionDeclaration" }
func (*ClassDeclaration) Type() string    { return "ClassDeclaration" }
func (*ClassBody) Type() string           { return "ClassBody" }
func (*MethodDefinition) Type() string    { return "MethodDefinition" }
func (*PropertyDefinition) Type() string  { return "PropertyDefinition" }
func (*StaticBlock) Type() string         { return "StaticBlock" }
