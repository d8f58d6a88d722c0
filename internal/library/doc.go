package library

// Package library assembles the catalog, session and transfer services over a
// single store and hydrates them on open.
