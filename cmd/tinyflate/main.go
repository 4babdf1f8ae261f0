// Command tinyflate is the CLI front end for the tinydeflate package,
// generalizing JoshVarga-blast's cmd/blast and cmd/implode into the three
// subcommands the wire format needs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/coreos/pkg/capnslog"
	"golang.org/x/sync/errgroup"

	deflate "tinydeflate"
)

var log = capnslog.NewPackageLogger("tinydeflate", "cmd")

func main() {
	flag.Usage = usage
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	outputFile := fs.String("o", "", "output file (defaults to stdout; the test subcommand writes no output file)")
	verbose := fs.Bool("v", false, "enable debug logging")
	fs.Parse(args)

	if *verbose {
		capnslog.SetGlobalLogLevel(capnslog.DEBUG)
	} else {
		capnslog.SetGlobalLogLevel(capnslog.NOTICE)
	}

	if fs.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	path := fs.Arg(0)

	var err error
	switch cmd {
	case "compress":
		err = runCompress(path, *outputFile)
	case "decompress":
		err = runDecompress(path, *outputFile)
	case "test":
		err = runTest(path)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: tinyflate <compress|decompress|test> [-o output] [-v] <path>")
}

func runCompress(path, outputFile string) error {
	input, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	compressed := deflate.Compress(input)
	log.Infof("compressed %s: %d -> %d bytes", path, len(input), len(compressed))
	return writeOutput(compressed, outputFile)
}

func runDecompress(path, outputFile string) error {
	input, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	decompressed, err := deflate.Decompress(input)
	if err != nil {
		return fmt.Errorf("decompressing %s: %w", path, err)
	}
	log.Infof("decompressed %s: %d -> %d bytes", path, len(input), len(decompressed))
	return writeOutput(decompressed, outputFile)
}

func writeOutput(data []byte, outputFile string) error {
	if outputFile == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outputFile, data, 0o644)
}

// runTest restores original_source/main.py's dropped sample-directory
// behavior: path is matched as a doublestar glob (a bare directory is
// widened to <dir>/**/*), and every matched file is compressed,
// decompressed, and checked for an exact round trip concurrently.
func runTest(path string) error {
	pattern := path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		pattern = filepath.Join(path, "**", "*")
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return fmt.Errorf("expanding %q: %w", pattern, err)
	}

	g, _ := errgroup.WithContext(context.Background())
	results := make([]string, len(matches))
	for i, m := range matches {
		i, m := i, m
		g.Go(func() error {
			line, err := verifyRoundTrip(m)
			results[i] = line
			return err
		})
	}
	runErr := g.Wait()
	for _, line := range results {
		if line != "" {
			fmt.Println(line)
		}
	}
	return runErr
}

func verifyRoundTrip(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", nil
	}

	input, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	compressed := deflate.Compress(input)
	decompressed, err := deflate.Decompress(compressed)
	if err != nil {
		return "", fmt.Errorf("%s: round trip failed to decompress: %w", path, err)
	}
	if len(decompressed) != len(input) || xxhash.Sum64(decompressed) != xxhash.Sum64(input) {
		return "", fmt.Errorf("%s: round trip mismatch (original %d bytes, recovered %d bytes)", path, len(input), len(decompressed))
	}

	log.Debugf("%s: ok (%d -> %d bytes)", path, len(input), len(compressed))
	return fmt.Sprintf("%s: ok  original=%d compressed=%d hash=%016x", path, len(input), len(compressed), xxhash.Sum64(input)), nil
}
