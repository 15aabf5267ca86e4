package hedges

/*-------------------------------------------------------------
 *
 * Purpose:	Named constraint profiles loaded from a YAML file.
 *
 * Description:	Synthesis vendors and sequencing platforms each impose
 *		their own local rules, so the usual twelve profiles are
 *		shipped as data rather than compiled in. The file lives
 *		in data/profiles.yaml; callers may point at their own.
 *
 *--------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type profile_config struct {
	ObservedLength     int       `yaml:"observed_length"`
	MaxHomopolymerRuns int       `yaml:"max_homopolymer_runs"`
	GCRange            []float64 `yaml:"gc_range"`
	UndesiredMotifs    []string  `yaml:"undesired_motifs"`
}

type profiles_file struct {
	Profiles map[string]profile_config `yaml:"profiles"`
}

// Locations tried in order when no explicit path is given, matching
// how the other data files in this project are found.
var profile_search_locations = []string{
	"profiles.yaml",
	"data/profiles.yaml",
	"../data/profiles.yaml",
	"/usr/local/share/hedges/profiles.yaml",
	"/usr/share/hedges/profiles.yaml",
}

// LoadProfiles parses a profile YAML file into named filters.
func LoadProfiles(path string) (map[string]*LocalBioFilter, error) {
	var raw, readErr = os.ReadFile(path)
	if readErr != nil {
		return nil, readErr
	}

	var parsed profiles_file
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(parsed.Profiles) == 0 {
		return nil, fmt.Errorf("%s defines no profiles", path)
	}

	var filters = make(map[string]*LocalBioFilter, len(parsed.Profiles))
	for name, cfg := range parsed.Profiles {
		var f, err = NewLocalBioFilter(cfg.ObservedLength, cfg.MaxHomopolymerRuns, cfg.GCRange, cfg.UndesiredMotifs)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		filters[name] = f
	}
	return filters, nil
}

// FindProfiles loads the first profile file present in the search
// locations.
func FindProfiles() (map[string]*LocalBioFilter, error) {
	for _, path := range profile_search_locations {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadProfiles(path)
		}
	}
	return nil, fmt.Errorf("no profiles.yaml found in %v", profile_search_locations)
}
