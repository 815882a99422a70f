// Command notegrid is the thin, non-core CLI wrapper around the
// notegrid pipeline (§6): it never carries parsing logic of its own, only
// argument handling, I/O, and dispatch to the pipeline/render/display
// packages.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"notegrid/display"
	"notegrid/pipeline"
	"notegrid/render"
)

// outputFormat can be set via --format/-f; defaults to "text".
var outputFormat string

func main() {
	args := parseArgs(os.Args[1:])

	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]

	switch command {
	case "parse":
		if len(args) < 2 {
			fmt.Println("Error: parse requires a notation file")
			printUsage()
			os.Exit(1)
		}
		runParse(args[1])
	case "render":
		if len(args) < 2 {
			fmt.Println("Error: render requires a notation file")
			printUsage()
			os.Exit(1)
		}
		outputPath := ""
		if len(args) >= 3 {
			outputPath = args[2]
		}
		runRender(args[1], outputPath)
	case "tui":
		if len(args) < 2 {
			fmt.Println("Error: tui requires a notation file")
			printUsage()
			os.Exit(1)
		}
		runTUI(args[1])
	default:
		printUsage()
		os.Exit(1)
	}
}

// parseArgs extracts flags and returns remaining positional args, in the
// same manual loop-over-os.Args idiom the teacher's main.go uses rather
// than the flag package.
func parseArgs(args []string) []string {
	var remaining []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--format" || arg == "-f" {
			if i+1 < len(args) {
				outputFormat = args[i+1]
				i++
			} else {
				fmt.Println("Error: --format requires a value (text|json|midi)")
				os.Exit(1)
			}
		} else if strings.HasPrefix(arg, "--format=") {
			outputFormat = strings.TrimPrefix(arg, "--format=")
		} else if strings.HasPrefix(arg, "-f=") {
			outputFormat = strings.TrimPrefix(arg, "-f=")
		} else if arg == "--help" || arg == "-h" {
			printUsage()
			os.Exit(0)
		} else {
			remaining = append(remaining, arg)
		}
	}

	if outputFormat == "" {
		outputFormat = os.Getenv("NOTEGRID_FORMAT")
	}
	if outputFormat == "" {
		outputFormat = "text"
	}

	return remaining
}

func loadDoc(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

// runParse parses the file and prints the engraved score plus any
// diagnostics, exiting 1 if the file cannot be read or parsed.
func runParse(filename string) {
	data, err := loadDoc(filename)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	doc, staves, err := pipeline.Run(string(data))
	if err != nil {
		fmt.Printf("Error parsing: %v\n", err)
		os.Exit(1)
	}

	display.ShowDocument(doc, staves)
}

// runRender parses the file and writes the rendered output (text, JSON,
// or a MIDI preview, per --format) to outputPath, defaulting to the
// input's basename with an extension matching the format.
func runRender(filename, outputPath string) {
	data, err := loadDoc(filename)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	doc, staves, err := pipeline.Run(string(data))
	if err != nil {
		fmt.Printf("Error parsing: %v\n", err)
		os.Exit(1)
	}

	var out []byte
	var ext string

	switch outputFormat {
	case "text":
		out = []byte(render.Engrave(doc.Metadata, staves))
		ext = ".txt"
	case "json":
		payload := render.ToPayload(doc.Metadata, staves)
		out, err = render.Marshal(payload)
		if err != nil {
			fmt.Printf("Error rendering JSON: %v\n", err)
			os.Exit(2)
		}
		ext = ".json"
	case "midi":
		smf := render.MIDIPreview(doc.Metadata.Tempo, staves)
		var buf strings.Builder
		if _, err := smf.WriteTo(&buf); err != nil {
			fmt.Printf("Error encoding MIDI: %v\n", err)
			os.Exit(2)
		}
		out = []byte(buf.String())
		ext = ".mid"
	default:
		fmt.Printf("Error: unknown format %q (want text|json|midi)\n", outputFormat)
		os.Exit(1)
	}

	if outputPath == "" {
		base := filepath.Base(filename)
		outputPath = strings.TrimSuffix(base, filepath.Ext(base)) + ext
	}

	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		fmt.Printf("Error writing output: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("Wrote %s\n", outputPath)
}

// runTUI launches the interactive stave browser.
func runTUI(filename string) {
	data, err := loadDoc(filename)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	doc, staves, err := pipeline.Run(string(data))
	if err != nil {
		fmt.Printf("Error parsing: %v\n", err)
		os.Exit(1)
	}

	if err := display.Run(doc.Metadata, staves, doc.Diagnostics); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Println("notegrid — parse and render folk-notation scores")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  notegrid parse <file>             Parse and print to the terminal")
	fmt.Println("  notegrid render <file> [out]       Render to text/JSON/MIDI")
	fmt.Println("  notegrid tui <file>                Browse staves interactively")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --format, -f <text|json|midi>   Render format (default text)")
	fmt.Println("  --help, -h                       Show this help")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  NOTEGRID_FORMAT                  Default render format")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  notegrid parse examples/bhairavi.ng")
	fmt.Println("  notegrid render examples/bhairavi.ng --format json")
	fmt.Println("  notegrid tui examples/bhairavi.ng")
}
