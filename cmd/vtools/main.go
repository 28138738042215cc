package main

import (
	"fmt"
	"os"

	"github.com/acerge/velocity-tools/pkg/tools"
	"github.com/acerge/velocity-tools/pkg/tools/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		fmt.Println("velocity-tools - Managed iteration and toolbox configuration")
		fmt.Printf("Version: %s\n", version)
		fmt.Println("\nUsage: vtools <command> [arguments]")
		fmt.Println("\nCommands:")
		fmt.Println("  validate <file>...    Check configuration files against the registered tools")
		fmt.Println("  show <file>...        Print the merged toolboxes and converted data")
		fmt.Println("  version               Show version information")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version":
		fmt.Printf("velocity-tools version %s\n", version)
	case "validate":
		if err := runValidate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "show":
		if err := runShow(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

// loadMerged reads every named file and folds them into one
// configuration, later files overriding data keys from earlier ones.
func loadMerged(paths []string) (*config.FactoryConfig, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no configuration files given")
	}

	merged := &config.FactoryConfig{}
	for _, path := range paths {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		merged.Merge(cfg)
	}
	return merged, nil
}

func runValidate(paths []string) error {
	cfg, err := loadMerged(paths)
	if err != nil {
		return err
	}

	factory := tools.NewToolboxFactory()
	if err := factory.Configure(cfg); err != nil {
		return err
	}

	fmt.Printf("OK: %d toolbox blocks, %d data entries\n", len(cfg.Toolboxes), len(cfg.Data))
	return nil
}

func runShow(paths []string) error {
	cfg, err := loadMerged(paths)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	for _, tb := range cfg.Toolboxes {
		scope := tb.Scope
		if scope == "" {
			scope = tools.GetGlobalSettings().DefaultScope
		}
		fmt.Printf("toolbox [%s]\n", scope)
		for _, tc := range tb.Tools {
			if tc.Key != "" {
				fmt.Printf("  %s as %q\n", tc.Tool, tc.Key)
			} else {
				fmt.Printf("  %s\n", tc.Tool)
			}
		}
	}

	if len(cfg.Data) > 0 {
		config.SortData(cfg.Data)
		fmt.Println("data")
		for _, d := range cfg.Data {
			value, err := d.Convert()
			if err != nil {
				return err
			}
			fmt.Printf("  %s = %v (%T)\n", d.Key, value, value)
		}
	}
	return nil
}
