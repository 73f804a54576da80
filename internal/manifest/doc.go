// Package manifest reads and validates KIT.md manifests. The reader side
// extracts the two-field metadata header leniently, the way the sync engine
// wants it; the validator side holds kit authors to the publishing schema
// embedded in this package.
package manifest
