package memory

import "github.com/tinoosan/finboard/internal/storage"

// Compile-time interface assertion documenting which interface Store satisfies.
var _ storage.Slots = (*Store)(nil)
