// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/promptdump/internal/commands"
	"github.com/temirov/promptdump/internal/config"
	"github.com/temirov/promptdump/internal/output"
	"github.com/temirov/promptdump/internal/services/clipboard"
	"github.com/temirov/promptdump/internal/tokenizer"
	"github.com/temirov/promptdump/internal/types"
	"github.com/temirov/promptdump/internal/utils"
)

const (
	filesFlagName          = "files"
	directoryFlagName      = "directory"
	outputFlagName         = "output"
	excludeFlagName        = "exclude"
	excludePatternFlagName = "exclude-pattern"
	verboseFlagName        = "verbose"
	tokensFlagName         = "tokens"
	modelFlagName          = "model"
	configFlagName         = "config"
	versionFlagName        = "version"
	globalFlagName         = "global"
	forceFlagName          = "force"

	versionTemplate      = "promptdump version: %s\n"
	rootUse              = "promptdump [extensions...]"
	rootShortDescription = "dump a project tree and its sources into one prompt document"
	rootLongDescription  = `promptdump scans a directory, renders its tree, and concatenates the content of
selected files into a single document for pasting into a prompt.
Files are selected by name (--files) first and then by extension (positional arguments).
The document is copied to the clipboard unless --output names a file or "-" for stdout.`
	rootUsageExample = `  # Copy Go and Markdown sources of the current project to the clipboard
  promptdump .go .md

  # Write a Python project to stdout, excluding tests
  promptdump .py -d ./service -x tests/ -o -

  # Every file in the tree, README.md first
  promptdump --files README.md -o prompt.md -- ""`
	initUse              = "init"
	initShortDescription = "write a default configuration file"

	filesFlagDescription          = "file names to include before the extension pass"
	directoryFlagDescription      = "directory to scan"
	outputFlagDescription         = `output file ("-" for stdout, default: clipboard)`
	excludeFlagDescription        = "file containing exclusion patterns"
	excludePatternFlagDescription = "additional exclusion pattern"
	verboseFlagDescription        = "print progress messages to stderr"
	tokensFlagDescription         = "report the estimated token count of the document"
	modelFlagDescription          = "tokenizer model used for token estimation"
	configFlagDescription         = "configuration file to load instead of " + utils.ConfigFileName
	versionFlagDescription        = "display application version"
	globalFlagDescription         = "write the configuration into the home directory"
	forceFlagDescription          = "overwrite an existing configuration file"

	tokenReportFormat       = "Estimated tokens: %s (%s)"
	warningTokenCountFormat = "Warning: failed to count tokens: %v"
	configurationWritten    = "Configuration written to %s\n"
)

// runtimeDependencies are the process-level collaborators of the CLI.
type runtimeDependencies struct {
	stdout     io.Writer
	copier     clipboard.Copier
	newLogger  func(verbose bool) (*zap.Logger, error)
	newCounter func(model string) (tokenizer.Counter, string, error)
}

func defaultDependencies() runtimeDependencies {
	return runtimeDependencies{
		stdout:     os.Stdout,
		copier:     clipboard.NewService(),
		newLogger:  utils.NewApplicationLogger,
		newCounter: tokenizer.NewCounter,
	}
}

// Execute runs the promptdump application.
func Execute() error {
	return createRootCommand(defaultDependencies()).Execute()
}

// promptOptions stores the raw flag values of the root command.
type promptOptions struct {
	files          []string
	directory      string
	output         string
	exclusionFile  string
	extraPatterns  []string
	verbose        bool
	tokens         bool
	model          string
	configPath     string
	showVersion    bool
	outputExplicit bool
}

// createRootCommand builds the root Cobra command.
func createRootCommand(dependencies runtimeDependencies) *cobra.Command {
	var options promptOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, err := fmt.Fprintf(dependencies.stdout, versionTemplate, utils.GetApplicationVersion())
				return err
			}
			options.outputExplicit = command.Flags().Changed(outputFlagName)
			return runPrompt(command, arguments, options, dependencies)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.StringSliceVarP(&options.files, filesFlagName, "f", types.DefaultFiles, filesFlagDescription)
	flagSet.StringVarP(&options.directory, directoryFlagName, "d", types.DefaultDirectory, directoryFlagDescription)
	flagSet.StringVarP(&options.output, outputFlagName, "o", "", outputFlagDescription)
	flagSet.StringVarP(&options.exclusionFile, excludeFlagName, "e", types.DefaultExclusionFile, excludeFlagDescription)
	flagSet.StringArrayVarP(&options.extraPatterns, excludePatternFlagName, "x", nil, excludePatternFlagDescription)
	registerBooleanFlag(flagSet, &options.verbose, verboseFlagName, "v", false, verboseFlagDescription)
	registerBooleanFlag(flagSet, &options.tokens, tokensFlagName, "", false, tokensFlagDescription)
	flagSet.StringVar(&options.model, modelFlagName, types.DefaultTokenModel, modelFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	flagSet.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand(dependencies))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(dependencies runtimeDependencies) *cobra.Command {
	var global bool
	var force bool
	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, err := config.InitializeConfiguration(config.InitOptions{Target: target, Force: force})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(dependencies.stdout, configurationWritten, writtenPath)
			return err
		},
	}
	initCommand.Flags().BoolVar(&global, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// runPrompt assembles the document and hands it to the selected sink.
func runPrompt(command *cobra.Command, arguments []string, options promptOptions, dependencies runtimeDependencies) error {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: options.configPath})
	if configurationError != nil {
		return configurationError
	}
	settings := resolveSettings(command, arguments, options, applicationConfiguration)

	logger, loggerError := dependencies.newLogger(settings.verbose)
	if loggerError != nil {
		return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
	}
	defer func() { _ = logger.Sync() }()

	settings.scan.Logger = logger
	document, assembleError := commands.AssemblePrompt(settings.scan)
	if assembleError != nil {
		return assembleError
	}

	if settings.tokens {
		reportTokens(logger, dependencies, settings.model, document)
	}

	sink := output.NewSink(settings.output, dependencies.stdout, dependencies.copier, logger)
	return sink.Write(document)
}

// resolvedSettings is the outcome of merging flags, configuration, and defaults.
type resolvedSettings struct {
	scan    types.ScanOptions
	output  string
	verbose bool
	tokens  bool
	model   string
}

// resolveSettings applies precedence: flags set on the command line, then
// configuration values, then built-in defaults.
func resolveSettings(command *cobra.Command, arguments []string, options promptOptions, applicationConfiguration config.ApplicationConfiguration) resolvedSettings {
	flagChanged := command.Flags().Changed

	extensions := types.DefaultExtensions
	switch {
	case len(arguments) > 0:
		extensions = arguments
	case applicationConfiguration.Extensions != nil:
		extensions = applicationConfiguration.Extensions
	}

	files := options.files
	if !flagChanged(filesFlagName) && applicationConfiguration.Files != nil {
		files = applicationConfiguration.Files
	}

	settings := resolvedSettings{
		scan: types.ScanOptions{
			Directory:     pickString(flagChanged(directoryFlagName), options.directory, applicationConfiguration.Directory),
			Extensions:    extensions,
			Files:         nonEmpty(files),
			ExclusionFile: pickString(flagChanged(excludeFlagName), options.exclusionFile, applicationConfiguration.ExcludeFile),
			ExtraPatterns: append(append([]string{}, applicationConfiguration.ExcludePatterns...), options.extraPatterns...),
		},
		output:  pickString(options.outputExplicit, options.output, applicationConfiguration.Output),
		verbose: pickBool(flagChanged(verboseFlagName), options.verbose, applicationConfiguration.Verbose),
		tokens:  pickBool(flagChanged(tokensFlagName), options.tokens, applicationConfiguration.Tokens.Enabled),
		model:   pickString(flagChanged(modelFlagName), options.model, applicationConfiguration.Tokens.Model),
	}
	return settings
}

func reportTokens(logger *zap.Logger, dependencies runtimeDependencies, model string, document string) {
	counter, resolvedModel, counterError := dependencies.newCounter(model)
	if counterError != nil {
		logger.Warn(fmt.Sprintf(warningTokenCountFormat, counterError))
		return
	}
	tokens, countError := tokenizer.CountDocument(counter, document)
	if countError != nil {
		logger.Warn(fmt.Sprintf(warningTokenCountFormat, countError))
		return
	}
	logger.Info(fmt.Sprintf(tokenReportFormat, utils.FormatCount(int64(tokens)), resolvedModel))
}

// pickString returns the flag value when the flag was set or nothing is configured.
func pickString(flagSet bool, flagValue string, configuredValue string) string {
	if flagSet || configuredValue == "" {
		return flagValue
	}
	return configuredValue
}

func pickBool(flagSet bool, flagValue bool, configuredValue *bool) bool {
	if flagSet || configuredValue == nil {
		return flagValue
	}
	return *configuredValue
}

func nonEmpty(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
