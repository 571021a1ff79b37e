package animgraph

// Version is the release version, set at build time with
// -ldflags "-X github.com/aretw0/animgraph.Version=...".
var Version = "dev"
