package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/temirov/promptdump/internal/cli"
	"github.com/temirov/promptdump/internal/utils"
)

// main is the entry point for the promptdump command.
func main() {
	signal.Ignore(syscall.SIGPIPE)
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(false)
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer func() { _ = loggerInstance.Sync() }()
	if applicationExecutionError := cli.Execute(); applicationExecutionError != nil {
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
	}
}
