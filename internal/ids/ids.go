// Package ids defines the opaque integer handles shared by every stage of
// the compiler: modules, bodies, locals, newtypes and type variables.
//
// Handles are copyable, equatable and hashable; equality is index equality.
// Phantom suffixes in the type names (UID vs TID) keep "body id for the
// untyped IR" from being mixed up with "body id for the typed IR" at
// compile time even though both wrap a plain int under the hood.
package ids

// ModuleID identifies a module in the module tree.
type ModuleID int

// TypeID identifies a registered newtype (record, union or alias).
type TypeID int

// VarID identifies an inference variable, allocated monotonically and
// never freed.
type VarID int

// UBodyID identifies a body (function, variant constructor, extern or
// lambda) in the untyped IR produced by Lowering.
type UBodyID int

// ULocalID identifies a local slot within exactly one untyped body.
type ULocalID int

// TBodyID identifies a body in the typed IR produced by Specialization.
type TBodyID int

// TLocalID identifies a local slot within exactly one typed body.
type TLocalID int

// TTypeID identifies a specialized (ground) newtype instantiation in the
// typed IR.
type TTypeID int

const InvalidModule ModuleID = -1
const InvalidType TypeID = -1
const InvalidVar VarID = -1
const InvalidUBody UBodyID = -1
const InvalidULocal ULocalID = -1
const InvalidTBody TBodyID = -1
const InvalidTLocal TLocalID = -1
const InvalidTType TTypeID = -1
