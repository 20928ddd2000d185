// Package catalog loads the showcase templates.
//
// Templates are JSON or YAML documents holding either a graphic (an element
// tree with its data-bag and theme) or a card. A set of templates is
// embedded in the binary; a user directory can add more or replace the
// bundled ones by name. Recents keeps the last previewed template names in
// a lock-guarded file under the user cache directory, and Lint reports the
// parts of a template that would render as fallbacks.
package catalog
