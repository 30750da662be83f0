// Package vfs implements an in-memory, hierarchical virtual filesystem.
//
// Everything the package touches — directories, regular files, symbolic
// links, their bytes and their attributes — lives in process memory. It is
// meant to stand in for a real filesystem in tests, sandboxes and ephemeral
// computation: code written against a generic path/file API can run against
// a Filesystem instead of touching disk.
//
// # Scope
//
// This package is the engine: the directory/file object graph, path
// resolution with symbolic links, block-based regular-file storage, the
// attribute provider framework, the file operations layer (create, copy,
// move, delete, link, list, stat, and the Handle returned by the stream-
// opening verbs), and the locking discipline that makes all of it safe
// under concurrent mutation. It does not include a CLI, a generic
// path-string parser, a richer io.Reader/io.Writer adapter stack, a watch
// service, or globbing — those are expected to be built as separate
// collaborators on top of the operations this package exposes.
//
// # Design decisions
//
//   - Durability, cross-process sharing, memory-mapped semantics and
//     kernel-level extended attributes are out of scope. A Filesystem is
//     volatile and process-local.
//   - A single read/write lock serializes directory-graph mutations; each
//     RegularFile carries its own lock for its byte range. See Filesystem
//     and RegularFile for the details.
package vfs
