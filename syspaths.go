package mibprofile

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

type pathOp int

const (
	pathReplace pathOp = iota
	pathAppend
	pathPrepend
)

// pathEdit is one change to a search path list, read from a config line or
// an environment variable.
type pathEdit struct {
	op   pathOp
	dirs []string
}

func (e pathEdit) apply(current []string) []string {
	switch e.op {
	case pathAppend:
		return append(current, e.dirs...)
	case pathPrepend:
		return append(slices.Clone(e.dirs), current...)
	default:
		return e.dirs
	}
}

// pathFamily describes where one MIB toolkit keeps its search path.
type pathFamily struct {
	name        string
	defaults    func() []string
	configFiles func() []string
	env         string
	parseLine   func(string) (pathEdit, bool)
	parseEnv    func(string) pathEdit
}

var netSNMPFamily = pathFamily{
	name: "net-snmp",
	defaults: func() []string {
		var paths []string
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, ".snmp", "mibs"))
		}
		return append(paths,
			"/usr/share/snmp/mibs",
			"/usr/share/snmp/mibs/iana",
			"/usr/share/snmp/mibs/ietf",
			"/usr/local/share/snmp/mibs",
		)
	},
	configFiles: func() []string {
		return homeFiles([]string{"/etc/snmp/snmp.conf"}, ".snmp", "snmp.conf")
	},
	env:       "MIBDIRS",
	parseLine: parseNetSNMPLine,
	parseEnv:  signedEdit,
}

var libSMIFamily = pathFamily{
	name: "libsmi",
	defaults: func() []string {
		var paths []string
		for _, prefix := range []string{"/usr/share/mibs", "/usr/local/share/mibs"} {
			for _, sub := range []string{"ietf", "iana", "irtf", "site"} {
				paths = append(paths, prefix+"/"+sub)
			}
		}
		return paths
	},
	configFiles: func() []string {
		return homeFiles([]string{"/etc/smi.conf"}, ".smirc")
	},
	env:       "SMIPATH",
	parseLine: parseLibSMILine,
	parseEnv:  colonEdit,
}

func homeFiles(files []string, rel ...string) []string {
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(append([]string{home}, rel...)...))
	}
	return files
}

// SystemPaths returns the MIB directories configured for net-snmp and
// libsmi on this host: their defaults, config files and MIBDIRS/SMIPATH.
// Only existing directories are returned, without duplicates.
func SystemPaths(logger *slog.Logger) []string {
	var all []string
	for _, fam := range []pathFamily{netSNMPFamily, libSMIFamily} {
		all = append(all, fam.discover(logger)...)
	}

	var dirs []string
	for _, p := range all {
		if slices.Contains(dirs, p) {
			continue
		}
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			dirs = append(dirs, p)
		}
	}
	if logEnabled(logger, slog.LevelDebug) {
		logger.LogAttrs(context.Background(), slog.LevelDebug, "system MIB paths",
			slog.Any("paths", dirs))
	}
	return dirs
}

// SystemSources returns a Source per directory of SystemPaths.
func SystemSources(logger *slog.Logger, opts ...SourceOption) []Source {
	var sources []Source
	for _, d := range SystemPaths(logger) {
		if src, err := Dir(d, opts...); err == nil {
			sources = append(sources, src)
		}
	}
	return sources
}

func (fam pathFamily) discover(logger *slog.Logger) []string {
	paths := fam.defaults()
	for _, cf := range fam.configFiles() {
		paths = fam.readConfig(cf, paths, logger)
	}
	if v := os.Getenv(fam.env); v != "" {
		paths = fam.parseEnv(v).apply(paths)
	}
	return paths
}

func (fam pathFamily) readConfig(path string, current []string, logger *slog.Logger) []string {
	f, err := os.Open(path)
	if err != nil {
		return current
	}
	defer f.Close() //nolint:errcheck // read-only

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if edit, ok := fam.parseLine(scanner.Text()); ok {
			current = edit.apply(current)
		}
	}
	if err := scanner.Err(); err != nil && logEnabled(logger, slog.LevelDebug) {
		logger.LogAttrs(context.Background(), slog.LevelDebug, "reading MIB path config",
			slog.String("family", fam.name),
			slog.String("path", path),
			slog.Any("error", err))
	}
	return current
}

// parseNetSNMPLine reads a mibdirs directive from snmp.conf. The +/- prefix
// may sit on the value ("mibdirs +/path") or the directive ("+mibdirs /path").
func parseNetSNMPLine(line string) (pathEdit, bool) {
	fields := directiveFields(line)
	if fields == nil {
		return pathEdit{}, false
	}
	switch fields[0] {
	case "mibdirs":
		return signedEdit(fields[1]), true
	case "+mibdirs":
		return pathEdit{op: pathAppend, dirs: splitPaths(fields[1])}, true
	case "-mibdirs":
		return pathEdit{op: pathPrepend, dirs: splitPaths(fields[1])}, true
	}
	return pathEdit{}, false
}

// parseLibSMILine reads an untagged path directive from smi.conf.
// Tagged lines such as "smilint: path ..." apply to other tools.
func parseLibSMILine(line string) (pathEdit, bool) {
	fields := directiveFields(line)
	if fields == nil || fields[0] != "path" {
		return pathEdit{}, false
	}
	return colonEdit(fields[1]), true
}

func directiveFields(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return nil
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil
	}
	return fields
}

// signedEdit: leading + appends, leading - prepends, otherwise replace.
func signedEdit(value string) pathEdit {
	switch {
	case strings.HasPrefix(value, "+"):
		return pathEdit{op: pathAppend, dirs: splitPaths(value[1:])}
	case strings.HasPrefix(value, "-"):
		return pathEdit{op: pathPrepend, dirs: splitPaths(value[1:])}
	}
	return pathEdit{op: pathReplace, dirs: splitPaths(value)}
}

// colonEdit: leading colon appends, trailing colon prepends, otherwise replace.
func colonEdit(value string) pathEdit {
	switch {
	case strings.HasPrefix(value, ":"):
		return pathEdit{op: pathAppend, dirs: splitPaths(value[1:])}
	case strings.HasSuffix(value, ":"):
		return pathEdit{op: pathPrepend, dirs: splitPaths(strings.TrimSuffix(value, ":"))}
	}
	return pathEdit{op: pathReplace, dirs: splitPaths(value)}
}

func splitPaths(s string) []string {
	var result []string
	for _, p := range strings.Split(s, ":") {
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
