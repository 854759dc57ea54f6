// Package dataset reads and writes family datasets.
//
// A dataset is a flat list of person records. Each record names the person
// and, optionally, their father and mother by ID:
//
//	[
//	  {"id": "33333333C", "name": "Abraham", "surname": "Simpson"},
//	  {"id": "11111111A", "name": "Homer", "surname": "Simpson",
//	   "birth_date": "1956-05-12", "photo": "photos/homer.png",
//	   "father_id": "33333333C", "mother_id": null}
//	]
//
// The same records can be written as YAML:
//
//	- id: 33333333C
//	  name: Abraham
//	  surname: Simpson
//
// # Loading
//
// [Read] decodes records, validates each one and builds a [family.Tree] in
// two passes: first every person, then the parent edges (father before
// mother, in record order). Records may therefore reference parents that
// appear later in the file. After both passes the tree is checked for
// cycles.
//
// [Import] does the same for a file, picks the format from its extension and
// resolves photo paths relative to the file's directory.
//
// Errors carry [errors.Code] values so callers can tell a malformed file
// (INVALID_FORMAT) from a bad record (INVALID_RECORD), a repeated ID
// (DUPLICATE_PERSON), a dangling parent reference (UNKNOWN_PARENT) or a
// loop in the ancestry (CYCLE).
//
// # Writing
//
// [Write] and [Export] emit the tree in the same record form. Reading the
// output back gives an identical tree, which also makes [Hash] a stable key
// for caching rendered diagrams.
package dataset
