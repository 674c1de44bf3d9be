package config

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/spachava753/howmanytries/internal/models"
	"github.com/spachava753/howmanytries/internal/util"
)

// LoadSuite loads and parses a scenario suite file from the given filesystem.
//
//	name = "loot drops"
//	trials = 5
//
//	[[scenario]]
//	name = "rare drop"
//	success_rate = 2.5
//	max_attempts = "10k"
func LoadSuite(fsys fs.FS, name string) (models.Suite, error) {
	var suite models.Suite

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return suite, fmt.Errorf("reading %s: %w", name, err)
	}

	md, err := toml.Decode(string(data), &suite)
	if err != nil {
		return suite, fmt.Errorf("parsing %s: %w", name, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return suite, fmt.Errorf("parsing %s: unknown keys: %s", name, strings.Join(keys, ", "))
	}

	if suite.Name == "" {
		suite.Name = strings.TrimSuffix(name, ".toml")
	}
	suite.Path = name

	if len(suite.Scenarios) == 0 {
		return suite, fmt.Errorf("%s: no scenarios defined", name)
	}

	for i := range suite.Scenarios {
		sc := &suite.Scenarios[i]
		if sc.Name == "" {
			sc.Name = fmt.Sprintf("scenario-%d", i+1)
		}

		// An omitted max_attempts leaves the cap nil so the simulator default applies.
		if sc.MaxRaw == nil {
			continue
		}
		maxAttempts, err := parseMaxAttempts(sc.MaxRaw)
		if err != nil {
			return suite, fmt.Errorf("%s: scenario %q: %w", name, sc.Name, err)
		}
		sc.MaxAttempts = &maxAttempts
	}

	return suite, nil
}

func parseMaxAttempts(raw any) (float64, error) {
	switch v := raw.(type) {
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case string:
		n, err := util.ParseQuantity(v)
		if err != nil {
			return 0, fmt.Errorf("parsing max_attempts %q: %w", v, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("max_attempts: unsupported value %v (%T)", raw, raw)
	}
}
