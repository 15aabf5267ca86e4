package hedges

/*------------------------------------------------------------------
 *
 * Purpose:   	Decode test utility.
 *
 * Description:	Reads a strand file, decodes each strand (falling back
 *		to the repair search when a clean decode does not
 *		reproduce the recorded message), and reports how many
 *		strands were recovered.
 *
 * Usage:	strandtest [ options ] file
 *
 *		Use -L and -G to fail the run when the recovered count
 *		falls outside expectations, which is how the scripted
 *		regression tests consume this tool.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"
)

func StrandTestMain() {
	var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "strandtest"})

	var profileName = pflag.StringP("profile", "P", "09", "Constraint profile name.")
	var profilesPath = pflag.StringP("profiles-file", "c", "", "Profile YAML file. Default searches the usual locations.")
	var heapLimit = pflag.IntP("heap-limit", "H", 1000000, "Frontier bound for the repair search.")
	var noRepair = pflag.Bool("no-repair", false, "Only try a clean decode; never fall back to repair.")
	var errorIfLessThan = pflag.IntP("error-if-less-than", "L", -1, "Error if fewer than this many strands recovered.")
	var errorIfGreaterThan = pflag.IntP("error-if-greater-than", "G", -1, "Error if more than this many strands recovered.")
	var timestampFormat = pflag.StringP("timestamp-format", "T", "", "Precede per-strand results with 'strftime' format time stamp.")
	var verbose = pflag.BoolP("verbose", "v", false, "Report repair progress.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Verify a strand file decodes back to its messages.\n\n", os.Args[0])
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}
	if len(pflag.Args()) != 1 {
		pflag.Usage()
		os.Exit(1)
	}

	var stamper *strftime.Strftime
	if *timestampFormat != "" {
		var stampErr error
		stamper, stampErr = strftime.New(*timestampFormat)
		if stampErr != nil {
			logger.Fatal("Bad timestamp format", "format", *timestampFormat, "error", stampErr)
		}
	}

	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	var filters map[string]*LocalBioFilter
	var loadErr error
	if *profilesPath != "" {
		filters, loadErr = LoadProfiles(*profilesPath)
	} else {
		filters, loadErr = FindProfiles()
	}
	if loadErr != nil {
		logger.Fatal("Can't load constraint profiles", "error", loadErr)
	}
	var filter, found = filters[*profileName]
	if !found {
		logger.Fatal("Unknown constraint profile", "profile", *profileName)
	}

	var f, openErr = os.Open(pflag.Args()[0])
	if openErr != nil {
		logger.Fatal("Can't open strand file", "error", openErr)
	}
	defer f.Close()

	var records, readErr = ReadStrandFile(f)
	if readErr != nil {
		logger.Fatal("Can't read strand file", "error", readErr)
	}

	var mapping = DefaultMapping()
	var params = DefaultParams()
	var penalties = DefaultPenalties()

	var recovered = 0
	for _, r := range records {
		var ok, how = recover_strand(r, mapping, filter, params, penalties, *heapLimit, *noRepair, logger, *verbose)
		if ok {
			recovered++
		}

		var prefix = ""
		if stamper != nil {
			prefix = "[" + stamper.FormatString(time.Now()) + "] "
		}
		if ok {
			logger.Info(fmt.Sprintf("%sstrand %d recovered (%s)", prefix, r.Index, how))
		} else {
			logger.Warn(fmt.Sprintf("%sstrand %d NOT recovered (%s)", prefix, r.Index, how))
		}
	}

	logger.Info("Done", "recovered", recovered, "total", len(records))

	if *errorIfLessThan >= 0 && recovered < *errorIfLessThan {
		logger.Error("Recovered fewer strands than expected", "recovered", recovered, "want at least", *errorIfLessThan)
		os.Exit(1)
	}
	if *errorIfGreaterThan >= 0 && recovered > *errorIfGreaterThan {
		logger.Error("Recovered more strands than expected", "recovered", recovered, "want at most", *errorIfGreaterThan)
		os.Exit(1)
	}
}

// recover_strand tries a clean decode first, then the repair search.
// A strand counts as recovered when some decode reproduces the
// recorded message bits exactly.
func recover_strand(r StrandRecord, mapping Mapping, filter *LocalBioFilter, params Params,
	penalties Penalties, heapLimit int, noRepair bool, logger *log.Logger, verbose bool) (bool, string) {

	var decoded, decodeErr = Decode(r.DNA, r.Index, len(r.Bits), mapping, filter, params)
	if decodeErr == nil && bits_equal(decoded, r.Bits) {
		return true, "clean decode"
	}
	if noRepair {
		return false, "clean decode failed"
	}

	var monitor Monitor
	if verbose {
		monitor = LogMonitor(logger, 10000)
	}

	var candidates, size, repairErr = Repair(r.DNA, r.Index, 0, len(r.Bits),
		mapping, filter, params, heapLimit, penalties, monitor)
	if repairErr != nil {
		return false, repairErr.Error()
	}

	for _, c := range candidates {
		var bits, err = Decode(c, r.Index, len(r.Bits), mapping, filter, params)
		if err == nil && bits_equal(bits, r.Bits) {
			return true, fmt.Sprintf("repair (%d candidates, frontier %d)", len(candidates), size)
		}
	}
	return false, fmt.Sprintf("repair found no matching candidate (%d candidates, frontier %d)", len(candidates), size)
}

func bits_equal(a []byte, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i]&1 != b[i]&1 {
			return false
		}
	}
	return true
}
