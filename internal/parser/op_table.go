package parser

import "typedlint/internal/token"

// Приоритеты бинарных операторов, от слабого к сильному.
const (
	precNone       = 0
	precNullish    = 1 // ??
	precLogicalOr  = 1 // ||
	precLogicalAnd = 2 // &&
	precBitOr      = 3 // |
	precBitXor     = 4 // ^
	precBitAnd     = 5 // &
	precEquality   = 6 // == != === !==
	precRelational = 7 // < > <= >= instanceof in
	precShift      = 8 // << >> >>>
	precAdditive   = 9 // + -
	precMultiply   = 10
	precExponent   = 11 // **, правоассоциативный
)

// getBinaryOperatorPrec returns the precedence of tok as a binary operator, or precNone.
func (s *state) getBinaryOperatorPrec(tok token.Token) int {
	switch tok.Kind {
	case token.QuestionQuestion:
		if !s.ecma(2020) {
			return precNone
		}
		return precNullish
	case token.OrOr:
		return precLogicalOr
	case token.AndAnd:
		return precLogicalAnd
	case token.Pipe:
		return precBitOr
	case token.Caret:
		return precBitXor
	case token.Amp:
		return precBitAnd
	case token.EqEq, token.BangEq, token.EqEqEq, token.BangEqEq:
		return precEquality
	case token.Lt, token.Gt, token.LtEq, token.GtEq, token.KwInstanceof:
		return precRelational
	case token.KwIn:
		if s.noIn {
			return precNone
		}
		return precRelational
	case token.Shl, token.Shr, token.UShr:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiply
	case token.StarStar:
		if !s.ecma(2016) {
			return precNone
		}
		return precExponent
	default:
		return precNone
	}
}

func isLogical(k token.Kind) bool {
	return k == token.AndAnd || k == token.OrOr || k == token.QuestionQuestion
}

// assignable operators gated by edition.
func (s *state) isAssignOp(k token.Kind) bool {
	switch k {
	case token.StarStarAssign:
		return s.ecma(2016)
	case token.AndAndAssign, token.OrOrAssign, token.QuestionQuestionAssign:
		return s.ecma(2021)
	default:
		return k.IsAssign()
	}
}
