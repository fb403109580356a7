package config

import "maps"

var es5Globals = []string{
	"Array", "Boolean", "Date", "decodeURI", "decodeURIComponent", "encodeURI",
	"encodeURIComponent", "Error", "escape", "eval", "EvalError", "Function",
	"hasOwnProperty", "Infinity", "isFinite", "isNaN", "isPrototypeOf", "JSON",
	"Math", "NaN", "Number", "Object", "parseFloat", "parseInt",
	"propertyIsEnumerable", "RangeError", "ReferenceError", "RegExp", "String",
	"SyntaxError", "toLocaleString", "toString", "TypeError", "undefined",
	"unescape", "URIError", "valueOf",
}

// builtins added per edition year.
var esGlobalsByYear = map[int][]string{
	2015: {
		"ArrayBuffer", "DataView", "Float32Array", "Float64Array", "Int16Array",
		"Int32Array", "Int8Array", "Map", "Promise", "Proxy", "Reflect", "Set",
		"Symbol", "Uint16Array", "Uint32Array", "Uint8Array", "Uint8ClampedArray",
		"WeakMap", "WeakSet",
	},
	2017: {"Atomics", "SharedArrayBuffer"},
	2020: {"BigInt", "BigInt64Array", "BigUint64Array", "globalThis"},
	2021: {"AggregateError", "FinalizationRegistry", "WeakRef"},
}

// BuiltinGlobals returns the read-only standard globals of an ECMAScript
// year, e.g. Object, Promise (2015) or globalThis (2020).
func BuiltinGlobals(ecmaVersion int) map[string]bool {
	out := make(map[string]bool, 64)
	for _, name := range es5Globals {
		out[name] = false
	}
	for year, names := range esGlobalsByYear {
		if year > ecmaVersion {
			continue
		}
		for _, name := range names {
			out[name] = false
		}
	}
	return out
}

// ResolvedGlobals merges the builtins for the configured year with the
// configured globals; configured entries win.
func (e *Effective) ResolvedGlobals() map[string]bool {
	out := BuiltinGlobals(e.LanguageOptions.EcmaVersion)
	maps.Copy(out, e.LanguageOptions.Globals)
	return out
}
