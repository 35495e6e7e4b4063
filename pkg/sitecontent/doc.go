// Package sitecontent provides the domain layer for the Soundzy site
// backend: keyed content collections with realtime change notifications,
// the admin entities (leads, products, announcements, DJ tapes, blog posts,
// orders, chat sessions), and derived display helpers for the console.
//
// The package is storage-agnostic. Persistence goes through the Repository
// interface (see repo/memory and repo/postgres), media through BlobStore
// (see storage/*), and change fan-out through EventFeed (see feed).
package sitecontent
