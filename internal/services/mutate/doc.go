// Package mutate applies create, merge, update and delete operations to
// identity cache files. Every operation works whole-file: read, mutate in
// memory, rewrite atomically. A multi-file update (set) touches each file
// independently; a multi-file delete (rm) demands explicit disambiguation
// first.
package mutate
