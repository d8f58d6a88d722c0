// Package store provides the string-keyed blob persistence used by the
// catalog and session. Backends range from the platform preference API to
// embedded databases and Redis; all of them satisfy Store.
// library.OpenStore picks one from configuration.
package store
