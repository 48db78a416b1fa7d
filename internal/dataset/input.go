package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadURLFile reads dataset input URLs from a plain text or CSV file.
// Each non-empty line is either "url" or "url,label"; lines starting
// with '#' and a leading "url,label" header are skipped. Lines without
// a label get defaultLabel.
func ReadURLFile(path string, defaultLabel int) ([]LabeledURL, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url file: %w", err)
	}
	defer f.Close()

	var inputs []LabeledURL
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if first {
			first = false
			if isHeaderLine(line) {
				continue
			}
		}

		url, label := line, defaultLabel
		if i := strings.LastIndex(line, ","); i >= 0 {
			// Only a binary trailing field is a label; anything else is
			// part of the URL (query strings may contain commas).
			if v, err := strconv.Atoi(strings.TrimSpace(line[i+1:])); err == nil && (v == 0 || v == 1) {
				url, label = strings.TrimSpace(line[:i]), v
			}
		}
		if url == "" {
			continue
		}
		inputs = append(inputs, LabeledURL{URL: url, Label: label})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read url file: %w", err)
	}
	if len(inputs) == 0 {
		return nil, ErrNoInput
	}
	return inputs, nil
}

// isHeaderLine recognizes a CSV header row like "url,label".
func isHeaderLine(line string) bool {
	fields := strings.Split(strings.ToLower(line), ",")
	return strings.TrimSpace(fields[0]) == "url"
}
