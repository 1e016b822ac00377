// Package archive unpacks APKs into a workspace and packs them back.
//
// Extract returns a CompressionIndex mapping every file entry to the
// compression method it was stored with. Repack consults the index so that
// entries Android expects uncompressed (resources.arsc, native libraries,
// raw assets) stay that way in the rebuilt APK instead of being deflated.
//
// Directory entries are not recorded in the index; a later Repack recreates
// directories implicitly from the files inside them.
package archive
