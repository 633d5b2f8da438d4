package v1

import (
    "github.com/tinoosan/finboard/internal/service/finance"
    "github.com/tinoosan/finboard/internal/service/prefs"
    "github.com/tinoosan/finboard/internal/storage/mongodb"
    "github.com/tinoosan/finboard/internal/storage/postgres"
)

// Compile-time interface assertions for the services and slot backends used by the API.
var (
    _ Ledger       = (*finance.Store)(nil)
    _ Preferences  = (*prefs.Service)(nil)
    _ ReadyChecker = (*postgres.Store)(nil)
    _ ReadyChecker = (*mongodb.Store)(nil)
)
