package server

import "errors"

// errNoAddressConfigured is returned by NewServer when the configuration
// carries no listen address. This is treated as a fatal misconfiguration
// and causes the application to fail at startup.
var errNoAddressConfigured = errors.New("no listen address configured")
