// Package typedjs provides the grammar extensions for TypedJS: type
// annotations on bindings, parameters and return positions, `as`
// assertions, interfaces and type aliases.
//
// Node shapes follow the typescript-estree conventions (TSTypeAnnotation,
// TSTypeReference, TSInterfaceDeclaration ...) so that rules written against
// that vocabulary keep working. Every type node embeds ast.TypeBase and is
// skipped by value-level analyses.
package typedjs
