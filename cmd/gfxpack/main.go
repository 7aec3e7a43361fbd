package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rendevio/gfxpack/internal/installtree"
	"github.com/rendevio/gfxpack/pkg/descriptor"
	"github.com/rendevio/gfxpack/pkg/logging"
)

const version = "0.4.0"

var (
	osName      string
	arch        string
	hostArch    string
	compiler    string
	buildType   string
	crossBuild  bool
	optionFlags []string
	profileName string
	profileFile string
	sourceDir   string
	installRoot string
	generator   string
	archiveFmt  string
	dryRun      bool
	logLevel    string
	rootCmd     *cobra.Command
	versionFlag bool
)

func getBuildTimestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func defaultOS() string {
	if runtime.GOOS == "darwin" {
		return "macos"
	}
	return runtime.GOOS
}

func defaultArch() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	case "386":
		return "x86"
	default:
		return runtime.GOARCH
	}
}

func init() {
	rootCmd = &cobra.Command{
		Use:   "gfxpack",
		Short: "Resolve and install the graphics engine package descriptor",
		Long:  `Resolve and install the graphics engine package descriptor`,
		Run:   resolvePackage,
	}

	rootCmd.Flags().StringVar(&osName, "os", defaultOS(), "Target OS (windows, linux, macos, freebsd)")
	rootCmd.Flags().StringVar(&arch, "arch", defaultArch(), "Target architecture")
	rootCmd.Flags().StringVar(&hostArch, "host-arch", "", "Host architecture when cross-building")
	rootCmd.Flags().StringVar(&compiler, "compiler", "", "Compiler id (informational)")
	rootCmd.Flags().StringVar(&buildType, "build-type", "Release", "Build type (Debug or Release)")
	rootCmd.Flags().BoolVar(&crossBuild, "cross-build", false, "Mark this resolution as a cross build")
	rootCmd.Flags().StringArrayVarP(&optionFlags, "option", "o", nil, "Package option name=value (repeatable)")
	rootCmd.Flags().StringVar(&profileName, "profile", descriptor.DefaultProfile, "Dependency profile name")
	rootCmd.Flags().StringVar(&profileFile, "profile-file", "", "Path to an external profile YAML")
	rootCmd.Flags().StringVar(&sourceDir, "source-dir", ".", "Engine source tree")
	rootCmd.Flags().StringVar(&installRoot, "install-root", installtree.DefaultRoot(), "Install tree root")
	rootCmd.Flags().StringVar(&generator, "generator", "", "Build generator passed to cmake -G")
	rootCmd.Flags().StringVar(&archiveFmt, "archive", "", "Archive the install tree (tar.gz or tar.bz2)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Stop after resolution, skip the external build")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		fmt.Printf("gfxpack %s\n", version)
		fmt.Printf("Built: %s\n", getBuildTimestamp())
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseOptions(entries []string) (map[string]bool, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	options := make(map[string]bool, len(entries))
	for _, entry := range entries {
		name, value, found := strings.Cut(entry, "=")
		if !found {
			return nil, fmt.Errorf("option %q: want name=value", entry)
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", entry, err)
		}
		options[name] = b
	}
	return options, nil
}

func resolvePackage(cmd *cobra.Command, args []string) {
	if versionFlag {
		fmt.Printf("gfxpack %s\n", version)
		fmt.Printf("Built: %s\n", getBuildTimestamp())
		return
	}

	logger := logging.NewCLILogger("gfxpack", logLevel)
	logger.Info("🎨🎨🎨 Hello from gfxpack 🎨🎨🎨")

	options, err := parseOptions(optionFlags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	report, err := descriptor.Run(logger, descriptor.RunConfig{
		OS:          osName,
		Arch:        arch,
		HostArch:    hostArch,
		Compiler:    compiler,
		BuildType:   buildType,
		CrossBuild:  crossBuild,
		Options:     options,
		Profile:     profileName,
		ProfileFile: profileFile,
		SourceDir:   sourceDir,
		InstallRoot: installRoot,
		Generator:   generator,
		Archive:     archiveFmt,
		DryRun:      dryRun,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	printReport(report)
}

func printReport(report *descriptor.Report) {
	heading := color.New(color.FgCyan, color.Bold)
	item := color.New(color.FgGreen)

	heading.Printf("Platform:  ")
	fmt.Println(report.Platform.String())
	heading.Printf("Profile:   ")
	fmt.Println(report.Profile)

	heading.Println("Options:")
	for _, name := range report.Options.Names() {
		item.Printf("  %s", name)
		fmt.Printf(" = %s\n", report.Options.Value(name))
	}

	heading.Println("Requires:")
	for _, dep := range report.Dependencies.Sorted() {
		item.Printf("  %s", dep.Name)
		fmt.Printf("/%s\n", dep.Version)
	}

	heading.Println("Plan:")
	for _, arg := range report.Plan.Args() {
		fmt.Printf("  %s\n", arg)
	}

	if report.Manifest != nil {
		heading.Println("Exports:")
		fmt.Printf("  libs:       %s\n", strings.Join(report.Manifest.Libs, " "))
		fmt.Printf("  includes:   %s\n", strings.Join(report.Manifest.IncludeDirs, " "))
		fmt.Printf("  defines:    %s\n", strings.Join(report.Manifest.Defines, " "))
		if len(report.Manifest.SystemLibs) > 0 {
			fmt.Printf("  system:     %s\n", strings.Join(report.Manifest.SystemLibs, " "))
		}
		if len(report.Manifest.Frameworks) > 0 {
			fmt.Printf("  frameworks: %s\n", strings.Join(report.Manifest.Frameworks, " "))
		}
	}

	if report.ArchivePath != "" {
		heading.Printf("Archive:   ")
		fmt.Println(report.ArchivePath)
	}
}
