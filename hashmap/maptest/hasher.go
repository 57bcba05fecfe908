package maptest

import "github.com/elliottback/flatmap/anyhash"

// Hasher is the key hasher for StringMap.
type Hasher = anyhash.PtrHasher[string, anyhash.StringHasher]

var srcHasher Hasher
