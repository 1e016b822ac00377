// Package optimizer builds and runs the external commands the launcher
// hands an unpacked APK to: the redex optimizer and, optionally, jarsigner.
// What those tools do with their inputs is opaque to apkopt.
package optimizer
