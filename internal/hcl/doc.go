// Package hcl implements the HCL-specific build definition loader. It parses
// .hcl files, decodes them into the schema package's structures, and
// translates those into the format-agnostic config model.
package hcl
