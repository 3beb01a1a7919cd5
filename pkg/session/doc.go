// Package session describes the session state document the installed slash
// commands read and write (.claude/handoffs/_active.md).
//
// The installer treats the document as opaque: it only creates the empty
// template when none exists. Parsing here is limited to splitting on "## "
// headings so the show command can summarize or render it.
package session
