// Package store persists the generated registry artifact.
//
// The builder writes one artifact per run and the service reads it once at
// startup. Both sides address the artifact by a location string:
//
//	registry/__generated__/registry.ts          // file (default)
//	file:///srv/registry.ts                     // file
//	redis://localhost:6379/0?key=uiregistry     // Redis string key
//	mongodb://localhost:27017/uiregistry?collection=artifacts&id=registry
//
// Every [Store] replaces the previous artifact in full on [Store.Save]. The
// file backend writes to a temporary file and renames it into place, so a
// failed save never leaves a truncated artifact behind.
package store
