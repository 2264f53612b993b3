// Package document composes element trees into complete HTML documents.
//
// DefaultHead, Assemble and Wrap are the basic helpers. Page collects a
// title, extra meta and link tags and a body, and renders them through
// the same helpers.
package document
