package console

import (
	"strings"

	"github.com/chzyer/readline"
)

const (
	Yes = "y"
	No  = "n"
)

// YesOrNo asks a yes/no question on the terminal. The answer defaults to
// yes on empty or unrecognized input.
func YesOrNo(question string) (string, error) {
	rl, err := readline.New(question + " [Y/n]:")
	if err != nil {
		return "", err
	}
	response, err := rl.Readline()
	if err != nil {
		return "", err
	}
	if strings.ToLower(response) == No {
		return No, nil
	}
	return Yes, nil
}
