// Package grammar is the extension layer of the parser.
//
// A Grammar is the base ECMAScript grammar plus an ordered list of
// Extensions. An extension contributes Productions bound to named Hooks and
// may introduce node types or add child keys to existing ones. The parser
// consults the hooks at fixed points (statement start, after a binding name,
// after a parameter, after a parameter list, when a type is expected, after
// an operand) and falls back to the base grammar when no production applies.
//
// Composition is deterministic:
//   - extensions are deduplicated by name; a repeated name replaces the
//     earlier registration and takes the later position;
//   - productions are tried latest-registered first, and a production with
//     the same hook and name as an earlier one replaces it;
//   - a node type introduced twice gets the later key order followed by any
//     earlier keys the later one omits.
//
// Malformed extensions are rejected by Compose with a *CompositionError that
// names the extension.
package grammar
