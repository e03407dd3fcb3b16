// Package cli implements the newtype-generator command line.
//
// Commands:
//   - gen: load a spec file, check it against the target package and write
//     one <name>_newtype.go file per newtype
//   - check: run the same checks and report diagnostics without writing
//   - version: print the build version
//
// Every flag can also be set through a NEWTYPEGEN_<FLAG> environment
// variable or a tool config file passed with --config-file.
package cli
