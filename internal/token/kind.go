package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	PrivateName // #name

	NumberLit
	BigIntLit
	StringLit
	RegExpLit
	TemplateNoSub  // `text`
	TemplateHead   // `text${
	TemplateMiddle // }text${
	TemplateTail   // }text`

	KwBreak
	KwCase
	KwCatch
	KwClass
	KwConst
	KwContinue
	KwDebugger
	KwDefault
	KwDelete
	KwDo
	KwElse
	KwExport
	KwExtends
	KwFinally
	KwFor
	KwFunction
	KwIf
	KwImport
	KwIn
	KwInstanceof
	KwNew
	KwReturn
	KwSuper
	KwSwitch
	KwThis
	KwThrow
	KwTry
	KwTypeof
	KwVar
	KwVoid
	KwWhile
	KwWith
	KwNull
	KwTrue
	KwFalse

	LBrace    // {
	RBrace    // }
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	Dot       // .
	DotDotDot // ...
	Semicolon // ;
	Comma     // ,
	Colon     // :
	Question  // ?
	QuestionDot
	QuestionQuestion
	FatArrow // =>
	At       // @

	Lt    // <
	Gt    // >
	LtEq  // <=
	GtEq  // >=
	EqEq  // ==
	BangEq
	EqEqEq  // ===
	BangEqEq
	Plus
	Minus
	Star
	StarStar
	Slash
	Percent
	PlusPlus
	MinusMinus
	Shl  // <<
	Shr  // >>
	UShr // >>>
	Amp
	Pipe
	Caret
	Bang
	Tilde
	AndAnd
	OrOr

	Assign
	PlusAssign
	MinusAssign
	StarAssign
	StarStarAssign
	SlashAssign
	PercentAssign
	ShlAssign
	ShrAssign
	UShrAssign
	AmpAssign
	PipeAssign
	CaretAssign
	AndAndAssign
	OrOrAssign
	QuestionQuestionAssign

	kindCount
)

var kindNames = [...]string{
	Invalid: "invalid", EOF: "end of input",
	Ident: "identifier", PrivateName: "private name",
	NumberLit: "number", BigIntLit: "bigint", StringLit: "string", RegExpLit: "regular expression",
	TemplateNoSub: "template", TemplateHead: "template", TemplateMiddle: "template", TemplateTail: "template",

	KwBreak: "break", KwCase: "case", KwCatch: "catch", KwClass: "class", KwConst: "const",
	KwContinue: "continue", KwDebugger: "debugger", KwDefault: "default", KwDelete: "delete",
	KwDo: "do", KwElse: "else", KwExport: "export", KwExtends: "extends", KwFinally: "finally",
	KwFor: "for", KwFunction: "function", KwIf: "if", KwImport: "import", KwIn: "in",
	KwInstanceof: "instanceof", KwNew: "new", KwReturn: "return", KwSuper: "super",
	KwSwitch: "switch", KwThis: "this", KwThrow: "throw", KwTry: "try", KwTypeof: "typeof",
	KwVar: "var", KwVoid: "void", KwWhile: "while", KwWith: "with",
	KwNull: "null", KwTrue: "true", KwFalse: "false",

	LBrace: "{", RBrace: "}", LParen: "(", RParen: ")", LBracket: "[", RBracket: "]",
	Dot: ".", DotDotDot: "...", Semicolon: ";", Comma: ",", Colon: ":", Question: "?",
	QuestionDot: "?.", QuestionQuestion: "??", FatArrow: "=>", At: "@",
	Lt: "<", Gt: ">", LtEq: "<=", GtEq: ">=", EqEq: "==", BangEq: "!=", EqEqEq: "===",
	BangEqEq: "!==", Plus: "+", Minus: "-", Star: "*", StarStar: "**", Slash: "/",
	Percent: "%", PlusPlus: "++", MinusMinus: "--", Shl: "<<", Shr: ">>", UShr: ">>>",
	Amp: "&", Pipe: "|", Caret: "^", Bang: "!", Tilde: "~", AndAnd: "&&", OrOr: "||",

	Assign: "=", PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", StarStarAssign: "**=",
	SlashAssign: "/=", PercentAssign: "%=", ShlAssign: "<<=", ShrAssign: ">>=",
	UShrAssign: ">>>=", AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=",
	AndAndAssign: "&&=", OrOrAssign: "||=", QuestionQuestionAssign: "??=",
}

// String returns the lexeme for fixed tokens and a category name otherwise.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "invalid"
}

// IsAssign reports whether k is `=` or a compound assignment operator.
func (k Kind) IsAssign() bool {
	return k >= Assign && k <= QuestionQuestionAssign
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwBreak && k <= KwFalse
}
