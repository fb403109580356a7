package ast

// Identifier is both an expression and a binding pattern. TypeAnnotation and
// Optional are filled only by grammar extensions.
type Identifier struct {
	ExprBase
	annotation
	Name     string `json:"name"`
	Optional bool   `json:"optional,omitempty"`
}

func (*Identifier) patternNode()         {}
func (i *Identifier) SetOptional(v bool) { i.Optional = v }

type PrivateIdentifier struct {
	ExprBase
	Name string `json:"name"`
}

// RegExp describes a regular expression literal.
type RegExp struct {
	Pattern string `json:"pattern"`
	Flags   string `json:"flags"`
}

// Literal holds string, number, boolean, null, regexp and bigint literals.
// Value is string, float64, bool or nil.
type Literal struct {
	ExprBase
	Value  any     `json:"value"`
	Raw    string  `json:"raw"`
	Regex  *RegExp `json:"regex,omitempty"`
	Bigint string  `json:"bigint,omitempty"`
}

type ThisExpression struct{ ExprBase }

type Super struct{ ExprBase }

// ArrayExpression.Elements contains nil for holes.
type ArrayExpression struct {
	ExprBase
	Elements []Expr `json:"elements"`
}

// ObjectExpression.Properties holds *Property and *SpreadElement.
type ObjectExpression struct {
	ExprBase
	Properties []Node `json:"properties"`
}

// Property is used by object literals and object patterns; in patterns Value is a Pattern.
type Property struct {
	Base
	Key       Expr   `json:"key"`
	Value     Node   `json:"value"`
	Kind      string `json:"kind"` // init | get | set
	Method    bool   `json:"method"`
	Shorthand bool   `json:"shorthand"`
	Computed  bool   `json:"computed"`
}

type FunctionExpression struct {
	ExprBase
	function
	Body *BlockStatement `json:"body"`
}

// ArrowFunctionExpression.Body is a *BlockStatement or an Expr (then Expression is true).
type ArrowFunctionExpression struct {
	ExprBase
	function
	Body       Node `json:"body"`
	Expression bool `json:"expression"`
}

type ClassExpression struct {
	ExprBase
	class
}

type TemplateValue struct {
	Raw    string `json:"raw"`
	Cooked string `json:"cooked"`
}

type TemplateElement struct {
	Base
	Value TemplateValue `json:"value"`
	Tail  bool          `json:"tail"`
}

type TemplateLiteral struct {
	ExprBase
	Quasis      []*TemplateElement `json:"quasis"`
	Expressions []Expr             `json:"expressions"`
}

type TaggedTemplateExpression struct {
	ExprBase
	Tag   Expr             `json:"tag"`
	Quasi *TemplateLiteral `json:"quasi"`
}

type MemberExpression struct {
	ExprBase
	Object   Expr `json:"object"`
	Property Expr `json:"property"`
	Computed bool `json:"computed"`
	Optional bool `json:"optional"`
}

func (*MemberExpression) patternNode() {}

// ChainExpression wraps an optional chain such as a?.b.c.
type ChainExpression struct {
	ExprBase
	Expression Expr `json:"expression"`
}

type CallExpression struct {
	ExprBase
	Callee    Expr   `json:"callee"`
	Arguments []Expr `json:"arguments"`
	Optional  bool   `json:"optional"`
}

type NewExpression struct {
	ExprBase
	Callee    Expr   `json:"callee"`
	Arguments []Expr `json:"arguments"`
}

type ImportExpression struct {
	ExprBase
	Source Expr `json:"source"`
}

// MetaProperty is new.target or import.meta.
type MetaProperty struct {
	ExprBase
	Meta     *Identifier `json:"meta"`
	Property *Identifier `json:"property"`
}

type SpreadElement struct {
	ExprBase
	Argument Expr `json:"argument"`
}

type UnaryExpression struct {
	ExprBase
	Operator string `json:"operator"`
	Prefix   bool   `json:"prefix"`
	Argument Expr   `json:"argument"`
}

type UpdateExpression struct {
	ExprBase
	Operator string `json:"operator"`
	Prefix   bool   `json:"prefix"`
	Argument Expr   `json:"argument"`
}

type BinaryExpression struct {
	ExprBase
	Operator string `json:"operator"`
	Left     Expr   `json:"left"`
	Right    Expr   `json:"right"`
}

type LogicalExpression struct {
	ExprBase
	Operator string `json:"operator"`
	Left     Expr   `json:"left"`
	Right    Expr   `json:"right"`
}

// AssignmentExpression.Left is a Pattern.
type AssignmentExpression struct {
	ExprBase
	Operator string  `json:"operator"`
	Left     Pattern `json:"left"`
	Right    Expr    `json:"right"`
}

type ConditionalExpression struct {
	ExprBase
	Test       Expr `json:"test"`
	Consequent Expr `json:"consequent"`
	Alternate  Expr `json:"alternate"`
}

type SequenceExpression struct {
	ExprBase
	Expressions []Expr `json:"expressions"`
}

type YieldExpression struct {
	ExprBase
	Argument Expr `json:"argument"`
	Delegate bool `json:"delegate"`
}

type AwaitExpression struct {
	ExprBase
	Argument Expr `json:"argument"`
}

func (*Identifier) Type() string               { return "Identifier" }
func (*PrivateIdentifier) Type() string        { return "PrivateIdentifier" }
func (*Literal) Type() string                  { return "Literal" }
func (*ThisExpression) Type() string           { return "ThisExpression" }
func (*Super) Type() string                    { return "Super" }
func (*ArrayExpression) Type() string          { return "ArrayExpression" }
func (*ObjectExpression) Type() string         { return "ObjectExpression" }
func (*Property) Type() string                 { return "Property" }
func (*FunctionExpression) Type() string       { return "FunctionExpression" }
func (*ArrowFunctionExpression) Type() string  { return "ArrowFunctionExpression" }
func (*ClassExpression) Type() string          { return "ClassExpression" }
func (*TemplateElement) Type() string          { return "TemplateElement" }
func (*TemplateLiteral) Type() string          { return "TemplateLiteral" }
func (*TaggedTemplateExpression) Type() string { return "TaggedTemplateExpression" }
func (*MemberExpression) Type() string         { return "MemberExpression" }
func (*ChainExpression) Type() string          { return "ChainExpression" }
func (*CallExpression) Type() string           { return "CallExpression" }
func (*NewExpression) Type() string            { return "NewExpression" }
func (*ImportExpression) Type() string         { return "ImportExpression" }
func (*MetaProperty) Type() string             { return "MetaProperty" }
func (*SpreadElement) Type() string            { return "SpreadElement" }
func (*UnaryExpression) Type() string          { return "UnaryExpression" }
func (*UpdateExpression) Type() string         { return "UpdateExpression" }
func (*BinaryExpression) Type() string         { return "BinaryExpression" }
func (*LogicalExpression) Type() string        { return "LogicalExpression" }
func (*AssignmentExpression) Type() string     { return "AssignmentExpression" }
func (*ConditionalExpression) Type() string    { return "ConditionalExpression" }
func (*SequenceExpression) Type() string       { return "SequenceExpression" }
func (*YieldExpression) Type() string          { return "YieldExpression" }
func (*AwaitExpression) Type() string          { return "AwaitExpression" }
