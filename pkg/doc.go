// Package pkg holds the libraries behind the pacdep command.
//
// # Overview
//
// pacdep answers "what does this package really cost?" for a pacman-based
// system. It walks the dependencies of the requested packages and splits
// them into exclusive ones (removed along with the package), shared ones
// (still needed by something else) and optional ones, or in reverse mode
// lists what requires the package.
//
// # Architecture
//
// The data flows through the packages in this order:
//
//	pacman.conf + local/sync databases
//	         ↓
//	    [pacman] package (parse databases, satisfy dependencies)
//	         ↓
//	    [deps] package (build the closure, classify members)
//	         ↓
//	    [report] package (totals, groups, sizes)
//	         ↓
//	    text / JSON / YAML report, or DOT / SVG / JSON graph
//
// [pipeline] ties the stages together for the command-line tool, with
// parsed sync databases kept in a [cache].
//
// # Quick Start
//
//	db, err := pacman.Open(ctx, pacman.OpenOptions{ConfigPath: pacman.DefaultConfigPath})
//	if err != nil {
//	    return err
//	}
//	c, err := deps.Build(db, []string{"gimp"}, deps.Options{ShowOptional: 1})
//	if err != nil {
//	    return err
//	}
//	c.Settle()
//	r := report.New(c)
//	fmt.Println(report.FormatSize(r.Totals.Impact))
//
// # Packages
//
//   - [pacman]: pacman.conf, local and sync database readers
//   - [deps]: closures, classification, required-by mode
//   - [report]: serializable reports and size formatting
//   - [dag]: the graph a closure exports to
//   - [io]: JSON import and export of graphs
//   - [render/dot]: Graphviz DOT and SVG output
//   - [pipeline]: open, analyze and combine requests
//   - [cache]: zstd-compressed file cache of parsed sync databases
//   - [errors]: error codes and exit statuses
//   - [observability]: hooks for pipeline and cache events
//   - [buildinfo]: version information
package pkg
