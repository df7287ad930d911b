package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// LineReader delivers whole lines of user input. One implementation must
// back every consumer of the same stream: a second buffered reader over the
// same file would read ahead and swallow lines the other consumers expect.
type LineReader interface {
	// ReadLine blocks for the next line; ok is false once input is exhausted.
	ReadLine() (line string, ok bool)

	// Lines exposes the line channel so a caller can race a read against a
	// timeout. When the timeout wins no line has been consumed and the next
	// reader still gets it.
	Lines() <-chan string
}

// lineReader pumps an io.Reader into a channel, one line per receive, with
// the trailing newline removed. The channel closes on EOF, after delivering
// any final unterminated line.
type lineReader struct {
	lines chan string
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{lines: make(chan string)}
	go func() {
		defer close(lr.lines)
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if err != nil {
				if line != "" {
					lr.lines <- strings.TrimRight(line, "\r\n")
				}
				return
			}
			lr.lines <- strings.TrimRight(line, "\r\n")
		}
	}()
	return lr
}

func (lr *lineReader) ReadLine() (string, bool) {
	line, ok := <-lr.lines
	return line, ok
}

func (lr *lineReader) Lines() <-chan string {
	return lr.lines
}

// GetSimpleText prints a prompt to w and reads a single line of input,
// trimmed of surrounding whitespace.
func GetSimpleText(in LineReader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, ok := in.ReadLine()
	if !ok {
		return "", io.EOF
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password from the
// user's terminal without echo. A newline is printed after the read to keep
// the UI tidy.
func GetPassword(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// GetMultiline prints a prompt to w and reads lines until an empty line is
// entered. The collected text is joined with '\n'. Used for pasting the OCR
// text of a prescription.
func GetMultiline(in LineReader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(ligne vide pour terminer)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, ok := in.ReadLine()
		if !ok || line == "" {
			break
		}
		lines = append(lines, line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
