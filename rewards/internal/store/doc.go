// Package store holds the most recent reward factor result for each
// contract, so that successive evaluations can be diffed: on every file
// change in watch mode, and against a baseline exposition from an earlier run.
package store
