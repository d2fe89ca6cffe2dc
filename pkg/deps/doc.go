// Package deps computes the dependency closure of installed or repository
// packages and classifies every member of it.
//
// # Overview
//
// Given one or more requested packages (the roots), [Build] walks their
// dependencies through a [Source] and [Closure.Settle] assigns each
// dependency one [Classification]:
//
//   - Exclusive: only needed by the roots, removed along with them
//   - Shared: also needed by an installed package outside the closure
//   - Optional: an optional dependency of a root
//
// With [Options.Explicit] set, explicitly installed dependencies are kept in
// the closure and reported through the *Explicit variants instead of being
// skipped.
//
// # Usage
//
//	c, err := deps.Build(db, []string{"gimp"}, deps.Options{ShowOptional: 1})
//	if err != nil {
//	    return err
//	}
//	c.Settle()
//	fmt.Println(c.Group(deps.Exclusive).TotalSize)
//
// # Required-by Mode
//
// With [Options.Reverse] set the closure follows required-by edges instead:
// level 1 keeps direct requirers, level 2 all transitive requirers plus the
// packages listing a root as optional dependency, and level 3 extends the
// optional scan to every requirer found.
//
// # Groups
//
// Each classification has a [Group] holding the total and local installed
// size of its members, their count and, when requested through
// [Options.List], the sorted member list. Roots are never part of a group;
// their size is reported by [Closure.RootSize].
//
// # Sources
//
// [Source] abstracts the package databases. The pacman backend
// ([github.com/jjk-jacky/pacdep/pkg/pacman]) reads the local and sync
// databases of a pacman installation.
package deps
