// Package cdpdocs answers questions about Customer Data Platform products by
// retrieving passages from each vendor's public documentation. It crawls the
// documentation into a text corpus, embeds corpus sentences, builds a
// nearest-neighbor index over them, and ranks the closest sentences for a
// question.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package cdpdocs
