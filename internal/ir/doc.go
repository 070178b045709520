package ir

// This file records where the IR catalog's invariants (spec.md §3) are
// enforced, since no single method of this package can check them all in
// isolation.
//
//   I1  index == "" || scope.Manager.Get(index) finds this node (or an
//       alias of it, or nothing) -- enforced by internal/scope.Manager.Add
//       only ever being called with nodes this package produced, and by
//       internal/engine never mutating IndexValue after construction
//       except through SetNamespace/setIdentity.
//   I2  Function.Signature has every element's Namespace() == "" --
//       enforced in internal/engine/functions.go's signature-copy step.
//   I3  Class.New is non-nil (declared or synthesized empty) and
//       New.Name's type equals the class's index -- enforced in
//       internal/engine/classes.go's first pass.
//   I4  Array/Map: once Type().Known, element/key/value types are also
//       Known or explicitly unknown -- enforced by ArrayOf/MapOf's
//       construction rule in type.go and by internal/engine/types.go's
//       inference never setting Known without a definite element type.
//   I5  For loop variables live in a fresh local scope with types derived
//       from the iterable -- enforced in internal/engine/control.go.
//   I6  Lookup order innermost-local -> outer-locals -> global --
//       enforced in internal/scope.Manager.Get.
//   I7  A module is installed exactly once per canonical filename --
//       enforced in internal/modcache.Cache plus internal/engine/loader.go.
