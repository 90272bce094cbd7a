package mibprofile

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangsnmp/mibprofile/internal/testutil"
)

func TestDirNonExistentPath(t *testing.T) {
	_, err := Dir("/this/path/does/not/exist/at/all")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestDirNotADirectory(t *testing.T) {
	path := testutil.TouchMIB(t, t.TempDir(), "IF-MIB", ".my")
	_, err := Dir(path)
	require.Error(t, err)
}

func TestDirEmptyPath(t *testing.T) {
	_, err := Dir("")
	assert.True(t, errors.Is(err, ErrNoSource))
}

func TestDirListModules(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"IF-MIB.my", "ENTITY-MIB.my", "SNMPv2-MIB.my", "IF-MIB.json", "README.txt", "NOEXT"} {
		testutil.WriteFile(t, dir, name, "")
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.my"), 0o755))

	src, err := Dir(dir)
	require.NoError(t, err)

	names, err := src.ListModules()
	require.NoError(t, err)
	assert.Equal(t, []string{"ENTITY-MIB", "IF-MIB", "SNMPv2-MIB"}, names)
}

func TestDirListModulesExtensions(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"IF-MIB.mib", "IP-MIB.txt", "HOST-RESOURCES-MIB", "OTHER.my"} {
		testutil.WriteFile(t, dir, name, "")
	}

	src, err := Dir(dir, SourceExtensions("", ".mib", ".txt"))
	require.NoError(t, err)

	names, err := src.ListModules()
	require.NoError(t, err)
	assert.Equal(t, []string{"HOST-RESOURCES-MIB", "IF-MIB", "IP-MIB"}, names)
}

func TestDirFind(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "IF-MIB.mib", "IF-MIB DEFINITIONS ::= BEGIN END")

	src, err := Dir(dir, SourceExtensions(".my", ".mib"))
	require.NoError(t, err)

	r, path, err := src.Find("IF-MIB")
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	assert.Equal(t, filepath.Join(dir, "IF-MIB.mib"), path)

	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(content), "DEFINITIONS")

	_, _, err = src.Find("IP-MIB")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestDirTreeFirstMatchWins(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "a/IF-MIB.my", "first")
	testutil.WriteFile(t, root, "b/IF-MIB.my", "second")
	testutil.WriteFile(t, root, "b/deeper/IP-MIB.my", "")

	src, err := DirTree(root)
	require.NoError(t, err)

	names, err := src.ListModules()
	require.NoError(t, err)
	assert.Equal(t, []string{"IF-MIB", "IP-MIB"}, names)

	r, path, err := src.Find("IF-MIB")
	require.NoError(t, err)
	_ = r.Close()
	assert.Equal(t, filepath.Join(root, "a", "IF-MIB.my"), path)
}

func TestMultiSource(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	testutil.WriteFile(t, first, "IF-MIB.my", "")
	testutil.WriteFile(t, second, "IF-MIB.my", "")
	testutil.WriteFile(t, second, "IP-MIB.my", "")

	a, err := Dir(first)
	require.NoError(t, err)
	b, err := Dir(second)
	require.NoError(t, err)
	src := Multi(a, b)

	names, err := src.ListModules()
	require.NoError(t, err)
	assert.Equal(t, []string{"IF-MIB", "IP-MIB"}, names)

	r, path, err := src.Find("IF-MIB")
	require.NoError(t, err)
	_ = r.Close()
	assert.Equal(t, filepath.Join(first, "IF-MIB.my"), path)

	r, path, err = src.Find("IP-MIB")
	require.NoError(t, err)
	_ = r.Close()
	assert.Equal(t, filepath.Join(second, "IP-MIB.my"), path)

	_, _, err = src.Find("ENTITY-MIB")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
