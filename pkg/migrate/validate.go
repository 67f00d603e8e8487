package migrate

import (
	"bufio"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
)

var sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// Validate checks every .sql file in fsys: the timestamped name, a unique
// version, and Up and Down sections each holding a statement.
func Validate(fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	seen := map[string]string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
		}
		if prev, ok := seen[m[1]]; ok {
			return fmt.Errorf("duplicate migration version %s in %q and %q", m[1], prev, name)
		}
		seen[m[1]] = name

		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read %q: %w", name, err)
		}
		if err := checkSections(string(b)); err != nil {
			return fmt.Errorf("migration %q: %w", name, err)
		}
	}
	return nil
}

// checkSections requires "-- +goose Up" before "-- +goose Down" and some SQL
// under each marker.
func checkSections(txt string) error {
	var (
		section string
		body    = map[string]bool{}
		order   []string
	)
	sc := bufio.NewScanner(strings.NewReader(txt))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "-- +goose Up":
			section = "up"
			order = append(order, section)
		case line == "-- +goose Down":
			section = "down"
			order = append(order, section)
		case line == "", strings.HasPrefix(line, "--"):
		default:
			if section != "" {
				body[section] = true
			}
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if len(order) != 2 || order[0] != "up" || order[1] != "down" {
		return fmt.Errorf(`expected "-- +goose Up" followed by "-- +goose Down"`)
	}
	if !body["up"] {
		return fmt.Errorf("empty Up section")
	}
	if !body["down"] {
		return fmt.Errorf("empty Down section")
	}
	return nil
}
