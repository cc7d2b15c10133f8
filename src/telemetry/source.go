package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/Brod8362/upowerchart/src/monitor"
	"github.com/Brod8362/upowerchart/src/types"
)

// DefaultDir is where upowerd keeps its history files.
const DefaultDir = "/var/lib/upower"

const (
	chargePrefix = "history-charge-"
	ratePrefix   = "history-rate-"
)

// Source locates the charge and rate logs for a device model.
type Source interface {
	Open(model string) (charge, rate io.ReadCloser, err error)
}

// DirSource finds history files by scanning a single directory.
type DirSource struct {
	Dir string
}

// NewDirSource returns a DirSource for dir, falling back to DefaultDir when dir is empty.
func NewDirSource(dir string) *DirSource {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultDir
	}
	return &DirSource{Dir: dir}
}

// Find returns the paths of the charge and rate logs for model. The first directory
// entry whose name starts with the pattern wins.
func (s *DirSource) Find(model string) (chargePath, ratePath string, err error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	chargePattern := chargePrefix + model
	ratePattern := ratePrefix + model
	var chargeName, rateName string
	for _, e := range entries {
		name := e.Name()
		if chargeName == "" && strings.HasPrefix(name, chargePattern) {
			chargeName = name
		} else if rateName == "" && strings.HasPrefix(name, ratePattern) {
			rateName = name
		}
	}
	if chargeName == "" {
		return "", "", errors.Wrapf(types.ErrLookup, "no %s* in %s", chargePattern, s.Dir)
	}
	if rateName == "" {
		return "", "", errors.Wrapf(types.ErrLookup, "no %s* in %s", ratePattern, s.Dir)
	}
	return filepath.Join(s.Dir, chargeName), filepath.Join(s.Dir, rateName), nil
}

// Open implements Source.
func (s *DirSource) Open(model string) (io.ReadCloser, io.ReadCloser, error) {
	chargePath, ratePath, err := s.Find(model)
	if err != nil {
		return nil, nil, err
	}
	monitor.Debugf("device %s: charge=%s rate=%s", model, chargePath, ratePath)
	charge, err := os.Open(chargePath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	rate, err := os.Open(ratePath)
	if err != nil {
		charge.Close()
		return nil, nil, fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	return charge, rate, nil
}

// Load opens both logs for model through src and parses them.
func Load(src Source, model string) (charge, rate types.HistorySeries, err error) {
	cr, rr, err := src.Open(model)
	if err != nil {
		return nil, nil, err
	}
	defer cr.Close()
	defer rr.Close()
	charge, err = Parse(cr)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "charge log for %s", model)
	}
	rate, err = Parse(rr)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "rate log for %s", model)
	}
	monitor.Debugf("device %s: %d charge entries, %d rate entries", model, len(charge), len(rate))
	return charge, rate, nil
}

// ListDevices returns the sorted, distinct device models that have a charge log in dir.
// upowerd names its files history-<kind>-<model>-<serial>.dat, so the model is the text
// between the prefix and the next '-' or '.'.
func ListDevices(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	seen := map[string]bool{}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, chargePrefix) {
			continue
		}
		model := strings.TrimPrefix(name, chargePrefix)
		if i := strings.IndexAny(model, "-."); i >= 0 {
			model = model[:i]
		}
		if model == "" || seen[model] {
			continue
		}
		seen[model] = true
		out = append(out, model)
	}
	sort.Strings(out)
	return out, nil
}
