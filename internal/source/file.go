package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/five82/pick/internal/window"
)

// ReadFile loads newline separated items from path. A missing file yields no
// items and no error. See ReadLines for limit and tail.
func ReadFile(path string, limit int, tail bool) ([]window.Item[string], error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open list: %w", err)
	}
	defer file.Close()

	items, err := ReadLines(file, limit, tail)
	if err != nil {
		return nil, fmt.Errorf("read list %s: %w", path, err)
	}
	return items, nil
}

// ReadLines parses one item per line, skipping blank lines. When limit is
// positive at most limit items are kept: the first ones, or the last ones when
// tail is set.
func ReadLines(r io.Reader, limit int, tail bool) ([]window.Item[string], error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if limit > 0 && tail {
		return readTail(scanner, limit)
	}

	var items []window.Item[string]
	for scanner.Scan() {
		it, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		items = append(items, it)
		if limit > 0 && len(items) == limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func readTail(scanner *bufio.Scanner, limit int) ([]window.Item[string], error) {
	ring := make([]window.Item[string], limit)
	count := 0
	idx := 0
	for scanner.Scan() {
		it, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		ring[idx] = it
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	items := make([]window.Item[string], count)
	if count == limit {
		for i := 0; i < count; i++ {
			items[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(items, ring[:count])
	}
	return items, nil
}

// ParseLine turns one input line into an item. "label<TAB>value" splits on the
// first tab; any other line is both label and value. Blank lines are rejected.
func ParseLine(line string) (window.Item[string], bool) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return window.Item[string]{}, false
	}
	label, value, found := strings.Cut(line, "\t")
	if !found {
		return window.Item[string]{Label: line, Value: line}, true
	}
	label = strings.TrimSpace(label)
	value = strings.TrimSpace(value)
	switch {
	case label == "":
		label = value
	case value == "":
		value = label
	}
	return window.Item[string]{Label: label, Value: value}, true
}
