package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/codescope/codescope/constants/lipgloss"
)

// InputPrompt prompts the user for a line of input.
func InputPrompt(message string, reader *bufio.Reader) (string, error) {
	fmt.Print(lipgloss.BlueSky.Render(message + " "))

	userInput, err := reader.ReadString('\n')
	if userInput == "" {
		return "", nil
	}

	if err != nil {
		if err == io.EOF {
			return "", nil
		}
		return "", fmt.Errorf("error reading input: %w", err)
	}

	return strings.TrimSpace(userInput), nil
}

// ConfirmPrompt asks the user to confirm an action on the given path.
func ConfirmPrompt(path string, reader *bufio.Reader) (bool, error) {
	fmt.Print(lipgloss.BlueSky.Render(fmt.Sprintf("%s already exists, overwrite? (y/N): ", path)))

	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("error reading input: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
