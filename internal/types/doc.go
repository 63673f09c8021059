/*
Package types defines the data structures shared by the store, the CLI and the viewer.

# Gist

A Gist is the unit of storage: free text content, a comma-joined tag string
and a creation timestamp. The id and timestamp are assigned by the store and
never change afterwards.

# Export

ExportFile is the versioned envelope used by export and import. Both JSON
and YAML encodings use the same field names.

# Theme

Theme selects one of the viewer palettes. System keeps the terminal's
adaptive light/dark detection.
*/
package types
