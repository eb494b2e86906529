// Package cli wires the cobra command surface: login, refresh, list,
// download, install, info, uninstall, launch, config, version. Each
// lifecycle command refreshes the catalog mirror and reconciles install
// state once up front, then performs its single transition to completion.
package cli
