package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/napolitain/solver-foundry/internal/models"
)

var (
	// ErrMalformedBlueprint is returned for input that does not describe a full blueprint
	ErrMalformedBlueprint = errors.New("malformed blueprint")
	// ErrDuplicateBlueprint is returned when two blueprints share an id
	ErrDuplicateBlueprint = errors.New("duplicate blueprint id")
)

// Precompiled regex for the one-line blueprint format
var blueprintRegex = regexp.MustCompile(`^Blueprint (\d+):\s+` +
	`Each ore robot costs (\d+) ore\.\s+` +
	`Each clay robot costs (\d+) ore\.\s+` +
	`Each obsidian robot costs (\d+) ore and (\d+) clay\.\s+` +
	`Each geode robot costs (\d+) ore and (\d+) obsidian\.$`)

// LoadBlueprints reads blueprints from a file. Files ending in .json are read as JSON,
// anything else as the line-based text format.
func LoadBlueprints(path string) ([]*models.Blueprint, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
		}
		blueprints, err := ParseBlueprintsJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		return blueprints, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	blueprints, err := ParseBlueprints(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return blueprints, nil
}

// ParseBlueprints reads one blueprint per line. Blank lines are skipped.
func ParseBlueprints(r io.Reader) ([]*models.Blueprint, error) {
	var blueprints []*models.Blueprint
	seen := make(map[int]bool)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		bp, err := ParseBlueprint(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if seen[bp.ID] {
			return nil, fmt.Errorf("line %d: %w: %d", lineNum, ErrDuplicateBlueprint, bp.ID)
		}
		seen[bp.ID] = true

		blueprints = append(blueprints, bp)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return blueprints, nil
}

// ParseBlueprint parses a single line of the text format
func ParseBlueprint(line string) (*models.Blueprint, error) {
	caps := blueprintRegex.FindStringSubmatch(strings.TrimSpace(line))
	if caps == nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedBlueprint, line)
	}

	id, err := strconv.Atoi(caps[1])
	if err != nil {
		return nil, fmt.Errorf("%w: bad id %q", ErrMalformedBlueprint, caps[1])
	}

	var nums [6]int32
	for i := range nums {
		n, err := strconv.ParseInt(caps[i+2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: bad cost %q", ErrMalformedBlueprint, caps[i+2])
		}
		nums[i] = int32(n)
	}

	return models.NewStandardBlueprint(id, nums[0], nums[1], nums[2], nums[3], nums[4], nums[5]), nil
}
