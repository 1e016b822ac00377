// Package launcher sequences one optimization run: unpack the input APK
// into a workspace, hand the unpacked tree to the optimizer, then repack
// and optionally sign the result.
//
// Unpack is the part every run shares. Unpack-only and debug runs stop
// after it (and after preparing the optimizer command line) and keep their
// workspaces on disk.
package launcher
