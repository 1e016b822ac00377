package optimizer

import (
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"git.home.luguber.info/inful/apkopt/internal/config"
)

// Command is an external program invocation.
type Command struct {
	Path string
	Args []string
	// Dir is the working directory; empty means the caller's.
	Dir string
}

// String renders the command as a line that can be pasted into bash.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quote(c.Path))
	for _, a := range c.Args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return strconv.Quote(s)
	}
	return q
}

// BuildCommand assembles the optimizer invocation for an unpacked APK in
// apkDir whose dex files were moved to dexFiles; optimized dex files are
// written to dexDir.
func BuildCommand(cfg *config.Config, apkDir, dexDir string, dexFiles []string) Command {
	args := []string{"--apkdir", apkDir, "--outdir", dexDir}

	if cfg.RedexConfig != "" {
		args = append(args, "--config", cfg.RedexConfig)
	}
	if cfg.ProguardConfig != "" {
		args = append(args, "--proguard-config", cfg.ProguardConfig)
	}
	if cfg.KeepFile != "" {
		args = append(args, "--seeds", cfg.KeepFile)
	}
	if cfg.JarPath != "" {
		args = append(args, "--jarpath", cfg.JarPath)
	}
	if cfg.Warn != "" {
		args = append(args, "--warn", cfg.Warn)
	}
	if cfg.ProguardMap != "" {
		args = append(args, "-Sproguard_map="+cfg.ProguardMap)
	}
	for _, kv := range cfg.Passthru {
		args = append(args, "-S"+kv)
	}
	for _, kv := range cfg.PassthruJSON {
		args = append(args, "-J"+kv)
	}
	args = append(args, dexFiles...)

	return Command{Path: cfg.RedexBinary, Args: args}
}

// SignCommand signs apk in place with jarsigner using ks.
func SignCommand(ks config.Keystore, apk string) Command {
	return Command{
		Path: "jarsigner",
		Args: []string{
			"-sigalg", "SHA1withRSA",
			"-digestalg", "SHA1",
			"-keystore", ks.Path,
			"-storepass", ks.Password,
			apk,
			ks.Alias,
		},
	}
}
