// hdrcheck reads "Name: value" header lines from stdin or files, decodes the
// values it knows through the header codec table and prints the canonical
// re-encoding of each decodable field.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/httpwire/httphdr/header"
	"github.com/httpwire/httphdr/headers"
	"github.com/httpwire/httphdr/log"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "hdrcheck: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("hdrcheck", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "path to a TOML config file")
	dev := fs.Bool("dev", false, "use the developer log handler")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := defaultConfig()
	if *cfgPath != "" {
		var err error
		if cfg, err = loadConfig(*cfgPath); err != nil {
			return err
		}
	}
	if *dev {
		cfg.Dev = true
	}
	level, err := cfg.level()
	if err != nil {
		return err
	}
	logger := log.New(os.Stderr, level, cfg.Dev)

	if fs.NArg() > 0 {
		for _, path := range fs.Args() {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			err = check(f, out, cfg, logger)
			f.Close()
			if err != nil {
				return err
			}
		}
		return nil
	}
	return check(in, out, cfg, logger)
}

// check collects header lines from in, then reports every collected name:
// the canonical re-encoding when the raw fields decode, a warning otherwise.
func check(in io.Reader, out io.Writer, cfg config, logger *slog.Logger) error {
	h := headers.New()

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok || !header.Name(name).IsValid() {
			logger.Warn("not a header line", "line", line)
			continue
		}
		h.AddRaw(header.Name(name), []byte(strings.TrimSpace(value)))
	}
	if err := sc.Err(); err != nil {
		return err
	}

	var malformed int
	for _, name := range h.Names() {
		if !cfg.checks(string(name)) {
			continue
		}
		if !header.Known(name) {
			logger.Debug("no codec for header", "name", string(name))
			continue
		}

		hdr, ok := header.Decode(name, h.GetRaw(name))
		if !ok {
			malformed++
			logger.Warn("malformed header",
				"name", string(name), "fields", len(h.GetRaw(name)))
			continue
		}

		logger.Debug("decoded header", "header", hdr)
		if _, err := fmt.Fprintf(out, "%s: %s\n", name.ToCanonic(), hdr.RenderValue()); err != nil {
			return err
		}
	}

	if malformed > 0 {
		return fmt.Errorf("%d malformed header field(s)", malformed)
	}
	return nil
}
