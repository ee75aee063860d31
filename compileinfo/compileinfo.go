// Package compileinfo describes the build that produced the running binary.
package compileinfo

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
)

type CompileInfo struct {
	Package    string
	Module     string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	if c.GoVersion == "" {
		return "featureclust: no build information is embedded in this binary."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "This %s binary", c.Package)
	if c.Version != "" && c.Version != "(devel)" {
		fmt.Fprintf(&b, " (%s %s)", c.Module, c.Version)
	}
	fmt.Fprintf(&b, " was built with %s", c.GoVersion)
	if c.Commit != "" {
		fmt.Fprintf(&b, " at commit %s (%s)", c.Commit, c.CommitTime)
	}
	b.WriteString(".")
	if c.Modified {
		b.WriteString(" Files in the repo were modified after that commit.")
	}

	return b.String()
}

func Get() CompileInfo {
	z, ok := debug.ReadBuildInfo()
	if !ok {
		return CompileInfo{}
	}

	return FromBuildInfo(z)
}

// FromBuildInfo extracts the fields of CompileInfo from z.
func FromBuildInfo(z *debug.BuildInfo) CompileInfo {
	out := CompileInfo{
		GoVersion: z.GoVersion,
		Package:   z.Path,
		Module:    z.Main.Path,
		Version:   z.Main.Version,
	}

	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func Fprint(w io.Writer) {
	fmt.Fprintln(w, Get())
}

func PrintToStdErr() {
	Fprint(os.Stderr)
}
