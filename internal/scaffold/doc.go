// Package scaffold generates a new kit skeleton from embedded templates.
// It powers the "capkit create" command, producing a KIT.md with a valid
// metadata header and a starter resource file.
package scaffold
