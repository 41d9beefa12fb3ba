// Package kvstore implements native.API on top of badger, so the key layer
// behaves the same on every platform and can be tested without a Windows
// registry.
//
// # Layout
//
// Each host is one badger database. Keys form a tree of numbered nodes:
//
//	n|<id>                  node record {ID, Parent, Name, Depth, LastWrite}
//	c|<parent>|<lower name> child index {ID, Name}
//	v|<id>|<lower name>     value record {Name, Type, Data}
//
// Ids are 8-byte big-endian integers, records are msgpack. Names are stored
// with their original case and indexed case-folded, so lookups ignore case
// and enumeration runs in case-folded name order. The predefined roots have
// fixed ids and exist implicitly.
//
// Renames only touch the child index and the node record, so open handles
// below a renamed key keep working. Handles to deleted keys report
// StatusKeyDeleted.
package kvstore
