// Package official holds the CMS-published reward factor thresholds and
// compares locally computed thresholds against them.
//
// Each rating year is a literal table of scenario rows keyed by whether
// improvement measures and new measures are included. Adding a year means
// adding a table in its own file and registering it in registry; no logic
// changes.
package official
