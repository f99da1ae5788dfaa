package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatYAML formats the response as YAML
func formatYAML(resp interface{}) (string, error) {
	data, err := yaml.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	var out string
	var err error
	switch v := resp.(type) {
	case *FlagsResponseCLI:
		out, err = formatFlagsHuman(v)
	case *LocateResponseCLI:
		out, err = formatLocateHuman(v)
	case *EntriesResponseCLI:
		out, err = formatEntriesHuman(v)
	case *DatabasesResponseCLI:
		out, err = formatDatabasesHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

func formatFlagsHuman(resp *FlagsResponseCLI) (string, error) {
	var b strings.Builder

	if len(resp.Candidates) == 0 {
		b.WriteString("No compile flags found")
		if resp.Database != "" {
			b.WriteString(fmt.Sprintf(" in %s", resp.Database))
		}
		b.WriteString("\n")
		return b.String(), nil
	}

	b.WriteString(fmt.Sprintf("File: %s\n", resp.File))
	b.WriteString(fmt.Sprintf("Database: %s\n", resp.Database))
	b.WriteString(fmt.Sprintf("Source: %s\n\n", resp.Source))

	if len(resp.Candidates) == 1 {
		b.WriteString(strings.Join(resp.Candidates[0], " "))
		b.WriteString("\n")
		return b.String(), nil
	}

	for i, candidate := range resp.Candidates {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, strings.Join(candidate, " ")))
	}
	return b.String(), nil
}

func formatLocateHuman(resp *LocateResponseCLI) (string, error) {
	if resp.Database == "" {
		return "No compilation database found\n", nil
	}
	return fmt.Sprintf("%s (%s)\n", resp.Database, resp.Origin), nil
}

func formatEntriesHuman(resp *EntriesResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Database: %s\n", resp.Database))
	b.WriteString(fmt.Sprintf("Entries: %d\n\n", len(resp.Entries)))

	for i, entry := range resp.Entries {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, entry.File))
		b.WriteString(fmt.Sprintf("   Directory: %s\n", entry.Dir))
		b.WriteString(fmt.Sprintf("   Options: %s\n", strings.Join(entry.Options, " ")))
	}
	return b.String(), nil
}

func formatDatabasesHuman(resp *DatabasesResponseCLI) (string, error) {
	var b strings.Builder

	if len(resp.Databases) == 0 {
		b.WriteString("No databases registered.\n")
		b.WriteString("\n")
		b.WriteString("Register one with:\n")
		b.WriteString("  $ cdb select <path/to/compile_commands.json>\n")
		return b.String(), nil
	}

	b.WriteString(fmt.Sprintf("Registered databases: %d\n\n", len(resp.Databases)))
	for _, assoc := range resp.Databases {
		b.WriteString(fmt.Sprintf("  %s\n", assoc.Project))
		b.WriteString(fmt.Sprintf("    -> %s\n", assoc.Database))
	}
	return b.String(), nil
}
