package cmdutil

import (
	"bufio"
	"fmt"
	"io"

	"github.com/agentstation/usersweep/internal/console"
	"github.com/agentstation/usersweep/pkg/errors"
)

// Confirm prints question and reads one answer from in. Only word, in any
// case, confirms. End of input cancels.
func Confirm(in io.Reader, out io.Writer, question, word string) (bool, error) {
	fmt.Fprintf(out, "%s\nType %q to confirm: ", question, word)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}

	if !console.Confirm(answer, word) {
		fmt.Fprintln(out, "Cancelled, nothing was deleted")
		return false, nil
	}
	return true, nil
}
