// Package pacman reads the package databases of a pacman installation and
// exposes them as a [deps.Source].
//
// [Open] parses pacman.conf ([ParseConfig]) to locate the databases, reads
// the local database (one directory per installed package) and every
// enabled sync database (a compressed tar archive per repository):
//
//	db, err := pacman.Open(ctx, pacman.OpenOptions{ConfigPath: "/etc/pacman.conf"})
//	if err != nil {
//	    return err
//	}
//	c, err := deps.Build(db, []string{"gimp"}, deps.Options{})
//
// Lookups follow pacman's satisfier rules without version checks: the
// installed packages come first, and a package named like the dependency
// wins over packages merely providing it. [DB.RequiredBy] is computed from
// a reverse index built lazily for each side (installed or repositories).
//
// Parsed sync databases can be cached through [cache.Cache]; the cache key
// covers the archive's path, size and modification time, so a refreshed
// database is always parsed again.
package pacman
