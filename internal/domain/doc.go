// Package domain holds the board model mdkanban derives from a markdown file:
// boards rooted at headers, columns below them and checkbox tasks inside those.
//
// Every Task and real Column keeps the line number and raw text it was read
// from. Edits are planned against those values and verified against the live
// document before they are applied, so a Snapshot is only ever replaced, never
// patched.
package domain
