// Package template defines the template rendering seam used by the page and
// print renderers. The gotemplate subpackage provides the pongo2 engine.
package template
