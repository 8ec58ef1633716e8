// Package persistence implements the binary model format and the save/load
// manager of the embedding store. The wire format is the compatibility
// contract shared with other tooling and must not change shape:
//
//	int32   entryCount
//	int32   dims
//	repeat entryCount times:
//	  string  key            (int32 length prefix + bytes)
//	  int32   count
//	  double  location[dims]
//	  double  context[dims]
//
// All integers and doubles are little-endian. Entries are written in the
// store's current iteration order, which is not stable across runs;
// consumers must compare content, not bytes.
package persistence
