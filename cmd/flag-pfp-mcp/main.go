package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/flag-pfp-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("flag-pfp-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("flag-pfp-mcp - MCP server that renders flag profile pictures")
			fmt.Println()
			fmt.Println("Usage: flag-pfp-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  FLAG_PFP_LOG_LEVEL=debug     Enable debug logging")
			fmt.Println("  FLAG_PFP_CANVAS_SIZE=512     Default render width and height")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	opts, err := server.OptionsFromEnv()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if opts.Debug {
		log.Printf("Flag PFP MCP Server v%s (built %s, commit %s), canvas %dx%d",
			Version, BuildTime, GitCommit, opts.CanvasWidth, opts.CanvasHeight)
	}

	srv := server.NewWithOptions(opts)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
