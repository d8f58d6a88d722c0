package codec

// Package codec converts catalog and session records to and from the JSON
// strings kept in the key-value store. Field names are stable so data written
// by earlier versions keeps decoding.
