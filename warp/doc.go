// Package warp turns a profile generated by wgcf into the final RedWARP
// configuration.
//
// The package is organized leaf first:
//
//   - Options: the immutable set of user choices for one run
//   - ObfuscationParams: AmneziaWG junk and header values, fixed or random
//   - TransformLine / Transform: the section-aware line rewrite rules
//   - Driver: cleanup, wgcf invocation, rewrite, rename and verification
//
// # Generation Flow
//
//  1. Stale output and account files are removed
//  2. wgcf is located, then run with "register --accept-tos" and "generate"
//  3. wgcf-profile.conf is streamed through Transform into a temporary file
//  4. The temporary file replaces the template, which is renamed to the output
//  5. The output is read back and checked for the substituted values
//
// Every failure is terminal and reported as an *Error carrying one of the
// sentinel kinds from the common package.
//
// # Thread Safety
//
// A Driver runs one generation at a time and holds no state between runs.
// Front-ends must not start a second run before the first returns.
package warp
