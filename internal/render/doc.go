// Package render turns declarative element trees into visual trees.
//
// RenderGraphic validates a document and wraps the walked layout in a sizing
// container; Renderer.RenderElement is the recursive walker. Tags found in
// the widget Registry are delegated to composite widgets, every other tag
// is a native primitive whose props, class and style are resolved against
// the data-bag and theme. Rendering is pure: identical input produces
// identical trees and nothing is retained between calls.
package render
