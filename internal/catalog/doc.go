package catalog

// Package catalog owns the History and Favorites lists. Every mutation
// updates the in-memory list first and then writes the whole list through a
// typed store.Repository; write failures are logged and never undo the
// in-memory change.
