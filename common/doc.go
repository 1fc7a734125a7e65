// Package common provides shared constants, types, utilities, and interfaces
// used throughout the RedWARP application.
//
// This package serves as the foundation for cross-cutting concerns:
//
//   - Constants: Application-wide names, wgcf file names, and form defaults
//   - Errors: Sentinel errors, one per generation failure kind
//   - Interfaces: Abstractions for process execution, notifications, and logging
//   - Logger: Leveled logging with console and rotating file output
//   - Utils: Path helpers and idempotent file removal
//
// # Usage
//
//	import "github.com/yllada/redwarp/common"
//
//	common.LogInfo("Writing %s", common.OutputFileName)
//
//	if errors.Is(err, common.ErrMissingBinary) {
//	    // Point the user at the wgcf path setting
//	}
package common
