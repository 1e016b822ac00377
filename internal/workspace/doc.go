// Package workspace manages ephemeral directories that hold an unpacked APK
// for the duration of one run.
//
// Each workspace gets a unique name from os.MkdirTemp, so concurrent runs
// with the same pattern never collide. Non-debug workspaces are removed
// exactly once: either by an explicit Release, by the Close handle the
// caller defers, or by Manager.Cleanup when the process winds down. Debug
// workspaces are left on disk for inspection unless released explicitly.
//
// A process killed with SIGKILL skips all of this and leaves its workspace
// behind.
package workspace
