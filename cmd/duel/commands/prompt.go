package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// linePrompt asks for each name missing from defaults on its own line.
// Blank answers are asked again.
type linePrompt struct {
	in       *bufio.Reader
	out      io.Writer
	defaults [2]string
}

func (p *linePrompt) PlayerNames(ctx context.Context) (string, string, error) {
	var names [2]string
	for i := range names {
		names[i] = strings.TrimSpace(p.defaults[i])
		for names[i] == "" {
			if err := ctx.Err(); err != nil {
				return "", "", err
			}
			fmt.Fprintf(p.out, "Player %d name: ", i+1)
			line, err := p.in.ReadString('\n')
			names[i] = strings.TrimSpace(line)
			if err == io.EOF && names[i] == "" {
				return "", "", errors.Errorf("no name given for player %d", i+1)
			}
			if err != nil && err != io.EOF {
				return "", "", errors.Wrap(err, "unable to read name")
			}
		}
	}
	return names[0], names[1], nil
}
