package hedges

/*------------------------------------------------------------------
 *
 * Purpose:   	Utility for generating test strand files.
 *
 * Description:	Encodes a batch of random binary messages under a
 *		chosen constraint profile and writes them to a strand
 *		file, optionally injecting substitution, insertion and
 *		deletion errors into the nucleotide column so that
 *		strandtest has something to chew on.
 *
 * Usage:	gen-strands [ options ]
 *
 *		The recorded message bits are always the clean ground
 *		truth; only the dna column is corrupted.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

var gen_strands_rand_seed int32

// Self-contained generator so output is reproducible everywhere
// regardless of library changes.
func gen_strands_rand() int32 {
	gen_strands_rand_seed = int32((uint32(gen_strands_rand_seed)*1103515245 + 12345) & 0x7fffffff)
	return gen_strands_rand_seed
}

func gen_strands_rand_range(n int) int {
	return int(gen_strands_rand()) % n
}

func GenStrandsMain() {
	var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "gen-strands"})

	var strandCount = pflag.IntP("strand-count", "n", 10, "Number of strands to generate.")
	var bitCount = pflag.IntP("bit-count", "b", 100, "Message bits per strand.")
	var seed = pflag.IntP("seed", "s", 1, "Seed for the message and error generator.")
	var indexBase = pflag.IntP("index-base", "i", 0, "Strand index of the first strand.")
	var profileName = pflag.StringP("profile", "P", "09", "Constraint profile name.")
	var profilesPath = pflag.StringP("profiles-file", "c", "", "Profile YAML file. Default searches the usual locations.")
	var substitutions = pflag.IntP("substitutions", "S", 0, "Substitutions to inject per strand.")
	var insertions = pflag.IntP("insertions", "I", 0, "Insertions to inject per strand.")
	var deletions = pflag.IntP("deletions", "D", 0, "Deletions to inject per strand.")
	var outputFile = pflag.StringP("output-file", "o", "", "Write the strand file here rather than stdout.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Generate test strand files.\n\n", os.Args[0])
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}
	if *strandCount < 1 || *bitCount < 1 {
		pflag.Usage()
		os.Exit(1)
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

	gen_strands_rand_seed = int32(*seed)

	var mapping = DefaultMapping()
	var params = DefaultParams()
	var records []StrandRecord

	for s := 0; s < *strandCount; s++ {
		var index = *indexBase + s
		var bits = make([]byte, *bitCount)
		for i := range bits {
			bits[i] = byte(gen_strands_rand() & 1)
		}

		var dna, encodeErr = Encode(bits, index, mapping, filter, params)
		if encodeErr != nil {
			logger.Error("Encode failed, skipping strand", "index", index, "error", encodeErr)
			continue
		}

		dna = inject_errors(dna, mapping, *substitutions, *insertions, *deletions)

		records = append(records, StrandRecord{Index: index, Bits: bits, DNA: dna})
	}

	var out = os.Stdout
	if *outputFile != "" {
		var f, openErr = os.Create(*outputFile)
		if openErr != nil {
			logger.Fatal("Can't create output file", "file", *outputFile, "error", openErr)
		}
		defer f.Close()
		out = f
	}

	if err := WriteStrandFile(out, records); err != nil {
		logger.Fatal("Write failed", "error", err)
	}

	logger.Info("Generated strands", "count", len(records), "profile", *profileName,
		"substitutions", *substitutions, "insertions", *insertions, "deletions", *deletions)
}

// inject_errors corrupts a nucleotide string in place-ish: first the
// substitutions, then the insertions, then the deletions.
func inject_errors(dna string, mapping Mapping, substitutions int, insertions int, deletions int) string {
	var s = []byte(dna)

	for i := 0; i < substitutions && len(s) > 0; i++ {
		var pos = gen_strands_rand_range(len(s))
		var replacement = s[pos]
		for replacement == s[pos] {
			replacement = mapping[gen_strands_rand_range(len(mapping))]
		}
		s[pos] = replacement
	}

	for i := 0; i < insertions; i++ {
		var pos = gen_strands_rand_range(len(s) + 1)
		var n = mapping[gen_strands_rand_range(len(mapping))]
		s = append(s[:pos], append([]byte{n}, s[pos:]...)...)
	}

	for i := 0; i < deletions && len(s) > 0; i++ {
		var pos = gen_strands_rand_range(len(s))
		s = append(s[:pos], s[pos+1:]...)
	}

	return string(s)
}
