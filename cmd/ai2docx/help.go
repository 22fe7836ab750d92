package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: ai2docx <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert AI chat answers with math to .docx")
	fmt.Fprintln(w, "  serve      Run the HTTP conversion service")
	fmt.Fprintln(w, "  doctor     Check the rendering environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'ai2docx help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: ai2docx convert [input...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert copied AI answers (Markdown with LaTeX math) to Word documents.")
	fmt.Fprintln(w, "Reads standard input when no input is given or input is \"-\".")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (- = stdout)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Conversion timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --html                Write an HTML preview alongside the .docx")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>           Title (\"\" = first heading)")
	fmt.Fprintln(w, "      --author <s>          Author")
	fmt.Fprintln(w, "      --image-width <n>     Equation image box width in pixels")
	fmt.Fprintln(w, "      --image-height <n>    Equation image box height in pixels")
	fmt.Fprintln(w, "      --keep-aspect         Fit equations inside the image box")
	fmt.Fprintln(w, "      --max-heading <n>     Deepest heading level kept (1-9)")
	fmt.Fprintln(w, "      --code-theme <s>      Code block highlighting theme")
	fmt.Fprintln(w, "      --styles <s>          Word styles part name")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Equations:")
	fmt.Fprintln(w, "      --pixel-ratio <f>     Capture pixel ratio (>= 3)")
	fmt.Fprintln(w, "      --font-size <n>       Equation font size in CSS pixels")
	fmt.Fprintln(w, "      --padding <n>         Padding around equations in CSS pixels")
	fmt.Fprintln(w, "      --max-width <n>       Clamp captured images to this pixel width")
	fmt.Fprintln(w, "      --render-timeout <d>  Per-equation capture timeout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show progress and debug logs")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: ai2docx serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the HTTP service. Endpoints:")
	fmt.Fprintln(w, "  POST /api/v1/convert    JSON {text,title,author} or text/plain body")
	fmt.Fprintln(w, "  POST /api/v1/preview    Same input, returns HTML")
	fmt.Fprintln(w, "  GET  /healthz")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --addr <addr>         Listen address (default :8080)")
	fmt.Fprintln(w, "  -w, --workers <n>         Converter pool size (0 = auto)")
	fmt.Fprintln(w, "      --max-body <n>        Maximum request body in bytes")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log every request at debug level")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: ai2docx doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that a browser is available for equation rendering.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Output in JSON format")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: ai2docx version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: ai2docx help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
