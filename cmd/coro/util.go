package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/cloudcmds/coroutine/object"
	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
)

var red = color.New(color.FgRed).SprintfFunc()

func fatal(msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = msg
	case error:
		s = msg.Error()
	default:
		s = fmt.Sprintf("%v", msg)
	}
	fmt.Fprintf(os.Stderr, "%s\n", red(s))
	os.Exit(1)
}

func isTerminalIO() bool {
	stdin := os.Stdin.Fd()
	stdout := os.Stdout.Fd()
	inTerm := isatty.IsTerminal(stdin) || isatty.IsCygwinTerminal(stdin)
	outTerm := isatty.IsTerminal(stdout) || isatty.IsCygwinTerminal(stdout)
	return inTerm && outTerm
}

func getOutput(values []object.Object, format string) (string, error) {
	switch strings.ToLower(format) {
	case "":
		// With an unspecified format, we'll try to do the most helpful thing:
		//  1. If no values were produced, we want to print nothing
		//  2. If the values marshal to JSON, we'll print that
		//  3. Otherwise, we'll print their string representations
		if len(values) == 0 {
			return "", nil
		}
		output, err := getOutputJSON(values)
		if err != nil {
			return getOutputText(values), nil
		}
		return string(output), nil
	case "json":
		output, err := getOutputJSON(values)
		if err != nil {
			return "", err
		}
		return string(output), nil
	case "text":
		return getOutputText(values), nil
	default:
		return "", fmt.Errorf("unknown output format: %s", format)
	}
}

func getOutputText(values []object.Object) string {
	lines := make([]string, 0, len(values))
	for _, v := range values {
		lines = append(lines, v.Inspect())
	}
	return strings.Join(lines, "\n")
}

func getOutputJSON(values []object.Object) ([]byte, error) {
	items := make([]interface{}, 0, len(values))
	for _, v := range values {
		items = append(items, v.Interface())
	}
	if viper.GetBool("no-color") {
		return json.MarshalIndent(items, "", "  ")
	} else {
		return prettyjson.Marshal(items)
	}
}
