// Package telemetry reads upower history logs.
//
// A history log has one record per line with three tab-separated fields:
//
//	<unix-seconds>\t<value>\t<state>
//
// The charge log carries percentages, the rate log carries watts. Only the literal
// state "charging" counts as charging.
package telemetry

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Brod8362/upowerchart/src/monitor"
	"github.com/Brod8362/upowerchart/src/types"
)

// StateCharging is the only state token that maps to HistoryEntry.Charging == true.
const StateCharging = "charging"

// MaxLineLength bounds a single log record; longer lines are malformed.
const MaxLineLength = 1 << 20

// Parse reads a whole history log. Blank lines are skipped; any malformed line fails the
// whole read with a *types.ParseError.
func Parse(r io.Reader) (types.HistorySeries, error) {
	var out types.HistorySeries
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := parseLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &types.ParseError{Line: lineNo + 1, Field: "record", Err: err}
		}
		return nil, fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	return out, nil
}

var errNotFinite = errors.New("value is not a finite number")

func parseLine(line string, lineNo int) (types.HistoryEntry, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		return types.HistoryEntry{}, &types.ParseError{Line: lineNo, Text: line}
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return types.HistoryEntry{}, &types.ParseError{Line: lineNo, Field: "time", Text: line, Err: err}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return types.HistoryEntry{}, &types.ParseError{Line: lineNo, Field: "value", Text: line, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return types.HistoryEntry{}, &types.ParseError{Line: lineNo, Field: "value", Text: line, Err: errNotFinite}
	}
	return types.HistoryEntry{
		Time:     ts,
		Value:    v,
		Charging: strings.TrimSpace(fields[2]) == StateCharging,
	}, nil
}

// ParseFile opens and parses one history log. Open/read failures wrap types.ErrIO.
func ParseFile(path string) (types.HistorySeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	defer f.Close()
	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	monitor.Debugf("parsed %d entries from %s", len(s), path)
	return s, nil
}
