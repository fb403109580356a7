package ast

// ObjectPattern.Properties holds *Property (Value is a Pattern) and *RestElement.
type ObjectPattern struct {
	PatternBase
	annotation
	Properties []Node `json:"properties"`
}

// ArrayPattern.Elements contains nil for holes.
type ArrayPattern struct {
	PatternBase
	annotation
	Elements []Pattern `json:"elements"`
}

type RestElement struct {
	PatternBase
	annotation
	Argument Pattern `json:"argument"`
}

type AssignmentPattern struct {
	PatternBase
	Left  Pattern `json:"left"`
	Right Expr    `json:"right"`
}

func (*ObjectPattern) Type() string     { return "ObjectPattern" }
func (*ArrayPattern) Type() string      { return "ArrayPattern" }
func (*RestElement) Type() string       { return "RestElement" }
func (*AssignmentPattern) Type() string { return "AssignmentPattern" }
