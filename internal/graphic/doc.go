// Package graphic defines the declarative document model rendered by vista.
//
// A Graphic holds a tree of Elements, a data-bag used for text
// interpolation, and a Theme applied to every native node. Card is the flat
// tagged union rendered by the card dispatcher. Both JSON (encoding/json)
// and YAML (gopkg.in/yaml.v3) documents decode through the same generic
// conversion so the two formats behave identically.
package graphic
