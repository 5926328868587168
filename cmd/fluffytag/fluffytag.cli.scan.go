package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	fluffytag "github.com/itsatony/go-fluffytag"
)

// scanConfig holds parsed scan command configuration
type scanConfig struct {
	inputPath    string
	tagsCSV      string
	manifestPath string
	format       string
	threshold    int
}

// scanEvent is one line of scan output.
type scanEvent struct {
	Event      string               `json:"event"`
	Tag        string               `json:"tag,omitempty"`
	Attributes fluffytag.Attributes `json:"attributes,omitempty"`
	Content    string               `json:"content,omitempty"`
	Error      string               `json:"error,omitempty"`
}

// Scan event names
const (
	EventTag      = "tag"
	EventUntagged = "untagged"
	EventErr      = "error"
	EventPending  = "pending"
)

func runScan(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseScanFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	input, err := readInput(cfg.inputPath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadInputFailed, err)
		return ExitCodeInputError
	}

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	emit := func(ev scanEvent) {
		if cfg.format == OutputFormatJSON {
			data, _ := json.Marshal(ev)
			fmt.Fprintln(out, string(data))
			return
		}
		switch ev.Event {
		case EventTag:
			fmt.Fprintf(out, "<%s %s> (%d bytes)\n", ev.Tag, ev.Attributes, len(ev.Content))
		case EventUntagged:
			fmt.Fprintf(out, "... %s\n", ev.Content)
		case EventPending:
			fmt.Fprintf(out, "unclosed: <%s>\n", ev.Tag)
		default:
			fmt.Fprintf(out, "error: %s\n", ev.Error)
		}
	}

	p := fluffytag.NewProcessor(
		fluffytag.WithErrorHandler(func(err error) {
			emit(scanEvent{Event: EventErr, Error: err.Error()})
		}),
		fluffytag.WithAutoProcessThreshold(cfg.threshold),
	)
	p.SetUntaggedContentHandler(func(content string) error {
		emit(scanEvent{Event: EventUntagged, Content: content})
		return nil
	})

	tagHandler := func(tagName string) fluffytag.HandlerFunc {
		return func(attrs fluffytag.Attributes, content string) error {
			emit(scanEvent{Event: EventTag, Tag: tagName, Attributes: attrs, Content: content})
			return nil
		}
	}

	if err := registerScanTags(p, cfg, tagHandler); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	p.ProcessString(string(input))
	p.Flush()
	for _, pending := range p.PendingTags() {
		emit(scanEvent{Event: EventPending, Tag: pending.Name})
	}

	return ExitCodeSuccess
}

// registerScanTags registers either the --tags list or the manifest's tag
// vocabulary, every tag bound to the printing handler.
func registerScanTags(p *fluffytag.Processor, cfg *scanConfig, handlerFor func(string) fluffytag.HandlerFunc) error {
	if cfg.manifestPath != "" {
		m, err := fluffytag.ParseManifestFile(cfg.manifestPath)
		if err != nil {
			return err
		}
		handlers := fluffytag.HandlerSet{}
		for _, tag := range m.Tags {
			handlers[tag.Handler] = handlerFor(tag.Name)
		}
		return p.LoadManifestFile(cfg.manifestPath, handlers)
	}

	for _, tagName := range strings.Split(cfg.tagsCSV, ",") {
		tagName = strings.TrimSpace(tagName)
		if tagName == "" {
			continue
		}
		if err := p.RegisterHandler(tagName, handlerFor(tagName)); err != nil {
			return err
		}
	}
	return nil
}

func parseScanFlags(args []string) (*scanConfig, error) {
	fs := flag.NewFlagSet(CmdNameScan, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &scanConfig{}

	fs.StringVar(&cfg.inputPath, FlagInput, "", "")
	fs.StringVar(&cfg.inputPath, FlagInputShort, "", "")
	fs.StringVar(&cfg.tagsCSV, FlagTags, "", "")
	fs.StringVar(&cfg.tagsCSV, FlagTagsShort, "", "")
	fs.StringVar(&cfg.manifestPath, FlagManifest, "", "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")
	fs.IntVar(&cfg.threshold, FlagThreshold, fluffytag.DefaultAutoProcessThreshold, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Validation
	if cfg.tagsCSV == "" && cfg.manifestPath == "" {
		return nil, errors.New(ErrMsgMissingTags)
	}
	if cfg.threshold < 1 {
		return nil, errors.New(ErrMsgInvalidThreshold)
	}

	return cfg, nil
}

// readInput reads from a file path or, when empty, from stdin.
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
