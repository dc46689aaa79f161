// Package workspace performs the file-system side of scaffolding: existence
// checks, template-backed file creation, anchor-relative text insertion, and
// structured barrel merges. All paths are slash-separated and relative to
// the project root. A dry-run workspace layers an in-memory copy-on-write
// file system over the real tree so a run can be previewed and diffed.
package workspace
