// Package versions loads version definitions and resolves which of them
// describe a directory.
//
// A definition names a project kind ("Rust", "Node + TypeScript", ...) and
// lists the files and directories a project of that kind must contain. The
// catalog is the ordered union of the local definitions directory and every
// external mirror, loaded fresh on each call. Resolve filters the catalog down
// to the definitions a directory satisfies and ranks them by specificity,
// keeping catalog order for ties. It never returns an empty result: when
// nothing matches, the Unknown sentinel is returned instead.
package versions
