package calinea

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/aretw0/calinea.Version=...".
var Version = "dev"
