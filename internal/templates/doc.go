// Package templates holds the TypeScript templates rendered by the scaffold
// planner. Defaults are embedded in the binary; a project may shadow any of
// them by placing a file with the same logical name under its templates
// directory ("schemagen templates eject" writes the defaults there).
package templates
