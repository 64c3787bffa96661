package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// batchSize bounds how many lines go into one request.
const batchSize = 1000

// readTexts returns the texts to process: the joined args when given,
// otherwise every line of stdin.
func readTexts(args []string) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}
	if !isStdinPipe() {
		return nil, fmt.Errorf("no text given\n  → pass it as arguments or pipe it on stdin")
	}
	return readLines(os.Stdin)
}

// readLines splits r on '\n'. The '\n' is dropped but a preceding '\r' is
// kept, so CRLF input comes back out of replace as CRLF.
func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	scanner.Split(scanRawLines)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return lines, nil
}

// scanRawLines is bufio.ScanLines without the carriage-return stripping.
func scanRawLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// batches splits texts into chunks of at most batchSize.
func batches(texts []string) [][]string {
	var out [][]string
	for len(texts) > batchSize {
		out = append(out, texts[:batchSize])
		texts = texts[batchSize:]
	}
	if len(texts) > 0 {
		out = append(out, texts)
	}
	return out
}
