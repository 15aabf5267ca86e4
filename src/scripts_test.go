package hedges

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// pflag (not unreasonably) assumes it only ever gets called once, but
// these tests run one command after another, so the flag set is reset
// between invocations.
func setupPflag(args []string) {
	os.Args = args
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
}

func TestGenStrandsRoundTrip(t *testing.T) {
	var tmpdir = t.TempDir()
	var file = filepath.Join(tmpdir, "clean.strands")

	setupPflag([]string{"gen-strands", "-n", "5", "-b", "64", "-s", "3", "-P", "09",
		"-c", "../data/profiles.yaml", "-o", file})
	GenStrandsMain()

	// Everything is clean, so every strand must decode without repair.
	setupPflag([]string{"strandtest", "-P", "09", "-c", "../data/profiles.yaml",
		"--no-repair", "-L", "5", file})
	StrandTestMain()
}

func TestGenStrandsCorrupted(t *testing.T) {
	var tmpdir = t.TempDir()
	var file = filepath.Join(tmpdir, "dirty.strands")

	setupPflag([]string{"gen-strands", "-n", "3", "-b", "48", "-s", "11", "-P", "09",
		"-c", "../data/profiles.yaml", "-D", "1", "-o", file})
	GenStrandsMain()

	// Corrupted strands exercise the repair fallback. Recovery is not
	// guaranteed per strand, so no lower threshold here; the run just
	// has to complete within the frontier bound.
	setupPflag([]string{"strandtest", "-P", "09", "-c", "../data/profiles.yaml",
		"-H", "20000", file})
	StrandTestMain()
}

func TestGenStrandsDeterministic(t *testing.T) {
	var tmpdir = t.TempDir()
	var a = filepath.Join(tmpdir, "a.strands")
	var b = filepath.Join(tmpdir, "b.strands")

	setupPflag([]string{"gen-strands", "-n", "4", "-b", "32", "-s", "9", "-P", "10",
		"-c", "../data/profiles.yaml", "-S", "1", "-o", a})
	GenStrandsMain()

	setupPflag([]string{"gen-strands", "-n", "4", "-b", "32", "-s", "9", "-P", "10",
		"-c", "../data/profiles.yaml", "-S", "1", "-o", b})
	GenStrandsMain()

	var contentA, errA = os.ReadFile(a)
	require.NoError(t, errA)
	var contentB, errB = os.ReadFile(b)
	require.NoError(t, errB)
	require.Equal(t, contentA, contentB)
}
